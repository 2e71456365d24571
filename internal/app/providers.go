package app

import (
	"path/filepath"
	"strings"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/infrastructure/config"
	"github.com/eslsoft/atservices/internal/usecase/corpus"
)

// NewCorpus describes the configured corpus and where its archive lives.
func NewCorpus(cfg *config.Config) (corpus.Corpus, error) {
	name := strings.TrimSpace(cfg.Corpus.Name)
	if name == "" {
		return corpus.Corpus{}, entity.ErrUnknownCorpus
	}
	lemmaLang := entity.ParseLanguage(cfg.Corpus.LemmaLang)
	if !lemmaLang.Known() {
		return corpus.Corpus{}, entity.ErrInvalidLanguage
	}
	return corpus.Corpus{
		Name:      name,
		URL:       cfg.Corpus.URL,
		Path:      filepath.Join(cfg.Corpus.DataDir, name+".zip"),
		LemmaLang: lemmaLang,
	}, nil
}

// NewFetcher returns the HTTP fetcher used to download corpora.
func NewFetcher(cfg *config.Config) *corpus.HTTPFetcher {
	return corpus.NewHTTPFetcher(cfg.Corpus.Timeout)
}
