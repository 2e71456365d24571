package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/repository"
)

// LookupRequest identifies the translations a client is asking for.
type LookupRequest struct {
	Lemma           string
	LemmaLang       entity.Language
	TranslationLang entity.Language
	Client          string
}

// MissRecorder appends a failed lookup to the survey log.
type MissRecorder interface {
	Record(ctx context.Context, lemma string, lemmaLang, translationLang entity.Language, client string, at time.Time) (*entity.Miss, error)
}

// TranslationUsecase defines business logic for translation lookups.
type TranslationUsecase interface {
	Lookup(ctx context.Context, req LookupRequest) ([]entity.Translation, error)
}

const _defaultLemmaLanguage = entity.LanguageLatin

type translationUsecase struct {
	repo     repository.TranslationRepository
	recorder MissRecorder
}

func NewTranslationUsecase(repo repository.TranslationRepository, recorder MissRecorder) TranslationUsecase {
	return &translationUsecase{repo: repo, recorder: recorder}
}

// Lookup returns the stored translations of a lemma. When there are none the miss
// is recorded and entity.ErrTranslationNotFound is returned.
func (u *translationUsecase) Lookup(ctx context.Context, req LookupRequest) ([]entity.Translation, error) {
	lemma := entity.NormalizeLemma(req.Lemma)
	if lemma == "" {
		return nil, entity.ErrInvalidLemma
	}
	lemmaLang := entity.ParseLanguage(req.LemmaLang.Code())
	if lemmaLang == "" {
		lemmaLang = _defaultLemmaLanguage
	}
	translationLang := entity.ParseLanguage(req.TranslationLang.Code())
	if !lemmaLang.Known() || !translationLang.Known() {
		return nil, fmt.Errorf("%w: %q -> %q", entity.ErrInvalidLanguage, req.LemmaLang, req.TranslationLang)
	}

	found, err := u.repo.Find(ctx, lemma, lemmaLang, translationLang)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return found, nil
	}
	if _, err := u.recorder.Record(ctx, lemma, lemmaLang, translationLang, req.Client, time.Time{}); err != nil {
		return nil, fmt.Errorf("record miss: %w", err)
	}
	return nil, entity.ErrTranslationNotFound
}
