// Package corpus downloads the Collatinus lexical corpus and loads its translations.
package corpus

import (
	"path"
	"strings"

	"github.com/eslsoft/atservices/internal/entity"
)

// Corpus identifies a downloadable lexical corpus and its local artifact.
type Corpus struct {
	Name string
	URL  string
	// Path is the local zip archive the corpus is stored in.
	Path string
	// LemmaLang is the language every lemma of the corpus is written in.
	LemmaLang entity.Language
}

const documentPrefix = "lemmes."

// documentLanguage reports the translation language of a corpus document, based on
// its lemmes.<suffix> name. ok is false when name is not a translation document.
func documentLanguage(name string) (lang entity.Language, suffix string, ok bool) {
	base := path.Base(name)
	if !strings.HasPrefix(base, documentPrefix) {
		return "", "", false
	}
	suffix = strings.TrimPrefix(base, documentPrefix)
	if suffix == "" || strings.ContainsAny(suffix, ".~") {
		return "", suffix, false
	}
	lang, known := entity.LanguageFromSuffix(suffix)
	return lang, suffix, known
}

func isDocumentName(name string) bool {
	base := path.Base(name)
	return strings.HasPrefix(base, documentPrefix) && len(base) > len(documentPrefix)
}
