package survey

import (
	"bufio"
	"context"
	"io"
	"iter"
	"strings"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/repository"
)

// Header is the first line of every survey export.
const Header = "at\tlemma\tlemma_lang\ttranslation_lang\tclient"

// Exporter reads the miss log in chronological order.
type Exporter struct {
	repo repository.MissRepository
}

func NewExporter(repo repository.MissRepository) *Exporter {
	return &Exporter{repo: repo}
}

// Dump returns the misses matching query ordered by at, ties in insertion order.
// Rows are fetched as the sequence is consumed.
func (e *Exporter) Dump(ctx context.Context, query repository.MissQuery) iter.Seq2[entity.Miss, error] {
	return e.repo.Scan(ctx, query)
}

// Export writes the header and one tab separated row per miss to w. Lines are
// joined with '\n' and the last line has no terminator. It returns the number of
// rows written.
func (e *Exporter) Export(ctx context.Context, w io.Writer, query repository.MissQuery) (int, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header); err != nil {
		return 0, err
	}
	n := 0
	for miss, err := range e.Dump(ctx, query) {
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		if _, err := bw.WriteString(FormatRow(miss)); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

var fieldSanitizer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// FormatRow renders a miss as one export line without terminator.
func FormatRow(m entity.Miss) string {
	return strings.Join([]string{
		m.At.UTC().Format(entity.TimestampLayout),
		fieldSanitizer.Replace(m.Lemma),
		fieldSanitizer.Replace(m.LemmaLang.Code()),
		fieldSanitizer.Replace(m.TranslationLang.Code()),
		fieldSanitizer.Replace(m.Client),
	}, "\t")
}
