// Package survey records failed lookups and exports or purges the resulting miss log.
package survey

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/repository"
)

// Recorder appends misses to the survey log.
type Recorder struct {
	repo   repository.MissRepository
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewRecorder(repo repository.MissRepository, logger logrus.FieldLogger) *Recorder {
	return &Recorder{repo: repo, logger: logger, now: time.Now}
}

// Record appends one miss. A zero at means now. Identical misses are all kept.
func (r *Recorder) Record(ctx context.Context, lemma string, lemmaLang, translationLang entity.Language, client string, at time.Time) (*entity.Miss, error) {
	if at.IsZero() {
		at = r.now()
	}
	miss := &entity.Miss{
		At:              entity.NormalizeTimestamp(at),
		Lemma:           entity.NormalizeLemma(lemma),
		LemmaLang:       lemmaLang,
		TranslationLang: translationLang,
		Client:          client,
	}
	if err := r.repo.Append(ctx, miss); err != nil {
		return nil, err
	}
	r.logger.WithFields(logrus.Fields{
		"lemma":            miss.Lemma,
		"lemma_lang":       miss.LemmaLang,
		"translation_lang": miss.TranslationLang,
		"client":           miss.Client,
	}).Debug("miss recorded")
	return miss, nil
}
