package survey

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/repository"
)

// Purger deletes misses from the survey log.
type Purger struct {
	repo   repository.MissRepository
	logger logrus.FieldLogger
}

func NewPurger(repo repository.MissRepository, logger logrus.FieldLogger) *Purger {
	return &Purger{repo: repo, logger: logger}
}

// Clear deletes every miss recorded at or before until, or all misses when until
// is nil, and returns how many were removed.
func (p *Purger) Clear(ctx context.Context, until *time.Time) (int64, error) {
	if until != nil {
		cutoff := entity.NormalizeTimestamp(*until)
		until = &cutoff
	}
	n, err := p.repo.DeleteUntil(ctx, until)
	if err != nil {
		return 0, err
	}
	fields := logrus.Fields{"deleted": n}
	if until != nil {
		fields["until"] = until.Format(entity.TimestampLayout)
	}
	p.logger.WithFields(fields).Info("misses cleared")
	return n, nil
}
