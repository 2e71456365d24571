package entity

import (
	"strings"

	"github.com/samber/lo"
)

// Language is an ISO 639-2/B language code as stored in the translation tables.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageLatin       Language = "lat"
	LanguageFrench      Language = "fre"
	LanguageEnglish     Language = "eng"
	LanguageGerman      Language = "ger"
	LanguageSpanish     Language = "spa"
	LanguageItalian     Language = "ita"
	LanguagePortuguese  Language = "por"
	LanguageCatalan     Language = "cat"
	LanguageGalician    Language = "glg"
	LanguageDutch       Language = "dut"
	LanguagePolish      Language = "pol"
)

// shortCodes maps ISO 639-1 codes, as used in corpus file suffixes, to stored codes.
var shortCodes = map[string]Language{
	"la": LanguageLatin,
	"fr": LanguageFrench,
	"en": LanguageEnglish,
	"de": LanguageGerman,
	"es": LanguageSpanish,
	"it": LanguageItalian,
	"pt": LanguagePortuguese,
	"ca": LanguageCatalan,
	"gl": LanguageGalician,
	"nl": LanguageDutch,
	"pl": LanguagePolish,
}

var knownLanguages = lo.Values(shortCodes)

// Code returns the trimmed language code.
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// Known reports whether l is one of the supported codes.
func (l Language) Known() bool {
	return lo.Contains(knownLanguages, l)
}

// ParseLanguage accepts either a stored three-letter code or a two-letter alias.
// Unknown codes are returned lowercased so callers can still record them.
func ParseLanguage(code string) Language {
	norm := strings.ToLower(strings.TrimSpace(code))
	if norm == "" {
		return LanguageUnspecified
	}
	if lang, ok := shortCodes[norm]; ok {
		return lang
	}
	return Language(norm)
}

// LanguageFromSuffix resolves a two-letter corpus suffix. ok is false for unknown suffixes.
func LanguageFromSuffix(suffix string) (Language, bool) {
	lang, ok := shortCodes[strings.ToLower(strings.TrimSpace(suffix))]
	return lang, ok
}

func NormalizeLemma(lemma string) string {
	return strings.TrimSpace(lemma)
}
