package entity

// Translation is one (lemma, translation) pair between two languages.
// The four fields together are unique in the store.
type Translation struct {
	Lemma           string
	LemmaLang       Language
	Translation     string
	TranslationLang Language
}

// Key returns the uniqueness tuple as a single comparable value.
func (t Translation) Key() [4]string {
	return [4]string{t.Lemma, t.LemmaLang.Code(), t.Translation, t.TranslationLang.Code()}
}
