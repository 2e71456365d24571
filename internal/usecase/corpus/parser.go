package corpus

import (
	"bufio"
	"io"
	"strings"

	"github.com/eslsoft/atservices/internal/entity"
)

const maxLineSize = 1 << 20

// parseDocument reads Collatinus "lemma:translation" lines from r and yields one
// Translation per line. Blank lines and lines starting with '!' are comments.
// It returns false when yield asked to stop.
func parseDocument(document string, lemmaLang, translationLang entity.Language, r io.Reader, yield func(entity.Translation, error) bool) bool {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		t, reason := parseLine(line)
		if reason != "" {
			yield(entity.Translation{}, &entity.CorpusFormatError{
				Document: document,
				Line:     lineNo,
				Record:   raw,
				Reason:   reason,
			})
			return false
		}
		t.LemmaLang = lemmaLang
		t.TranslationLang = translationLang
		if !yield(t, nil) {
			return false
		}
	}
	if err := sc.Err(); err != nil {
		yield(entity.Translation{}, &entity.CorpusFormatError{
			Document: document,
			Line:     lineNo + 1,
			Reason:   err.Error(),
		})
		return false
	}
	return true
}

func parseLine(line string) (entity.Translation, string) {
	lemma, translation, found := strings.Cut(line, ":")
	if !found {
		return entity.Translation{}, "missing ':' separator"
	}
	lemma = strings.TrimSpace(lemma)
	translation = strings.TrimSpace(translation)
	switch {
	case lemma == "":
		return entity.Translation{}, "empty lemma"
	case translation == "":
		return entity.Translation{}, "empty translation"
	}
	return entity.Translation{Lemma: lemma, Translation: translation}, ""
}
