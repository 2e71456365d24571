/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/eslsoft/atservices/internal/app"
)

func newDBCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "db-create",
		Short: "Create the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				status(cmd, "Creating database")
				return c.Schema.Create(ctx)
			})
		},
	}
}

func newDBDropCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "db-drop",
		Short: "Drop the database tables and all their rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				status(cmd, "Dropping database")
				return c.Schema.Drop(ctx)
			})
		},
	}
}

func newDBRecreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "db-recreate",
		Short: "Drop and create the database tables in one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				status(cmd, "Recreating the database")
				return c.Schema.Recreate(ctx)
			})
		},
	}
}
