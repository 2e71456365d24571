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
	"errors"

	"github.com/spf13/cobra"

	"github.com/eslsoft/atservices/internal/app"
	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/usecase"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var lemmaLang, translationLang, client string
	cmd := &cobra.Command{
		Use:   "lookup LEMMA",
		Short: "Look up the translations of a lemma, recording a miss when there are none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, opts, func(ctx context.Context, c *app.Container) error {
				found, err := c.Translator.Lookup(ctx, usecase.LookupRequest{
					Lemma:           args[0],
					LemmaLang:       entity.Language(lemmaLang),
					TranslationLang: entity.Language(translationLang),
					Client:          client,
				})
				if errors.Is(err, entity.ErrTranslationNotFound) {
					status(cmd, "No translation for %s, miss recorded", args[0])
					return nil
				}
				if err != nil {
					return err
				}
				for _, t := range found {
					status(cmd, "%s", t.Translation)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lemmaLang, "lemma-lang", entity.LanguageLatin.Code(), "language of the lemma")
	cmd.Flags().StringVar(&translationLang, "translation-lang", entity.LanguageFrench.Code(), "language to translate into")
	cmd.Flags().StringVar(&client, "client", "atservices-cli", "client name recorded with misses")
	return cmd
}
