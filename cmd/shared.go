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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/eslsoft/atservices/internal/app"
	"github.com/eslsoft/atservices/internal/infrastructure/config"
)

func loadConfig(opts *rootOptions) (*config.Config, error) {
	var files []string
	if path := strings.TrimSpace(opts.configFile); path != "" {
		files = append(files, path)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runWithContainer loads configuration, builds the container and hands it to fn.
func runWithContainer(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	container, cleanup, err := app.Initialize(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := fn(ctx, container); err != nil {
		container.Logger.WithError(err).WithField("command", cmd.Name()).Error("command failed")
		return err
	}
	return nil
}

// flagOr returns the flag value when it was set on the command line, else fallback.
func flagOr(flag *pflag.Flag, fallback string) string {
	if flag == nil || !flag.Changed {
		return fallback
	}
	return strings.TrimSpace(flag.Value.String())
}

func status(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
