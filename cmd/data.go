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

func newDataDownloadCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "data-download",
		Short: "Download the lexical corpus unless it is already present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				status(cmd, "Downloading corpus %s", c.Corpus.Name)
				fetched, err := c.Acquirer.Acquire(ctx, c.Corpus, force)
				if err != nil {
					return err
				}
				if !fetched {
					status(cmd, "Corpus %s already available at %s", c.Corpus.Name, c.Corpus.Path)
					return nil
				}
				status(cmd, "Corpus %s saved to %s", c.Corpus.Name, c.Corpus.Path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "download even if the corpus is already available")
	return cmd
}

func newDataIngestCmd(opts *rootOptions) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "data-ingest",
		Short: "Load corpus translations into the database",
		Long: `Load the translations of the downloaded corpus into the database.

Translations already stored are skipped, so ingesting twice is harmless. Use
--source to ingest from another zip archive or an extracted directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				path := c.Corpus.Path
				if source != "" {
					path = source
				}
				status(cmd, "Ingesting corpus %s from %s", c.Corpus.Name, path)
				res, err := c.Ingestor.IngestPath(ctx, c.Corpus, path)
				if err != nil {
					return err
				}
				total, err := c.Translations.Count(ctx)
				if err != nil {
					return err
				}
				status(cmd, "Ingested %d translations from %d documents, skipped %d (%d stored)", res.Inserted, res.Documents, res.Skipped, total)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "zip archive or directory to ingest instead of the downloaded corpus")
	return cmd
}
