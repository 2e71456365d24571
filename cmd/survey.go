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
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/atservices/internal/app"
	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/usecase/survey"
)

func newSurveyDumpCmd(opts *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "survey-dump",
		Short: "Export recorded misses as tab separated values",
		Long: `Export recorded misses ordered by time as tab separated values.

--dest - writes to standard output. --filter takes a CEL conjunction over
client, lemma, lemma_lang, translation_lang and at, for example:

  survey-dump --filter "client == 'Bocuse' && at >= timestamp('2018-01-01T00:00:00Z')"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := survey.ParseFilter(filter)
			if err != nil {
				return err
			}
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				dest := flagOr(cmd.Flags().Lookup("dest"), c.Config.Survey.Dest)
				if dest == "-" {
					_, err := c.Exporter.Export(ctx, cmd.OutOrStdout(), query)
					return err
				}
				status(cmd, "Dumping misses to %s", dest)
				n, err := exportToFile(dest, func(w io.Writer) (int, error) {
					return c.Exporter.Export(ctx, w, query)
				})
				if err != nil {
					return err
				}
				status(cmd, "Dumped %d misses", n)
				return nil
			})
		},
	}
	cmd.Flags().String("dest", "misses.csv", "file to write, - for standard output")
	cmd.Flags().StringVar(&filter, "filter", "", "CEL filter expression")
	return cmd
}

// exportToFile writes through a temp file so an aborted export leaves dest untouched.
func exportToFile(dest string, write func(io.Writer) (int, error)) (n int, err error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if n, err = write(tmp); err != nil {
		return 0, err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return 0, err
	}
	if err = tmp.Close(); err != nil {
		return 0, err
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("write %s: %w", dest, err)
	}
	return n, nil
}

func newSurveyClearCmd(opts *rootOptions) *cobra.Command {
	var until string
	cmd := &cobra.Command{
		Use:   "survey-clear",
		Short: "Delete recorded misses",
		Long: `Delete recorded misses. With --until only misses recorded at or before the
given time are deleted. Accepted forms are "YYYY-MM-DD HH:MM:SS", "YYYY-MM-DD HH:MM",
"YYYY-MM-DD" and RFC 3339. Times without a zone are UTC.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cutoff *time.Time
			if cmd.Flags().Changed("until") {
				t, err := entity.ParseTimestamp(until)
				if err != nil {
					return fmt.Errorf("--until: %w", err)
				}
				cutoff = &t
			}
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if cutoff != nil {
					status(cmd, "Clearing misses until %s", cutoff.Format(entity.TimestampLayout))
				} else {
					status(cmd, "Clearing all misses")
				}
				n, err := c.Purger.Clear(ctx, cutoff)
				if err != nil {
					return err
				}
				status(cmd, "Cleared %d misses", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&until, "until", "", "delete misses recorded at or before this time")
	return cmd
}
