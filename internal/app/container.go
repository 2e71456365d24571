package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/atservices/internal/infrastructure/config"
	"github.com/eslsoft/atservices/internal/repository"
	"github.com/eslsoft/atservices/internal/usecase"
	"github.com/eslsoft/atservices/internal/usecase/corpus"
	"github.com/eslsoft/atservices/internal/usecase/survey"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config       *config.Config
	Logger       *logrus.Logger
	Schema       repository.SchemaRepository
	Translations repository.TranslationRepository
	Misses       repository.MissRepository
	Corpus       corpus.Corpus
	Acquirer     *corpus.Acquirer
	Ingestor     *corpus.Ingestor
	Recorder     *survey.Recorder
	Exporter     *survey.Exporter
	Purger       *survey.Purger
	Translator   usecase.TranslationUsecase
}
