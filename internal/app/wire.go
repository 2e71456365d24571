//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/atservices/internal/adapter/repository"
	"github.com/eslsoft/atservices/internal/infrastructure/config"
	"github.com/eslsoft/atservices/internal/infrastructure/database"
	"github.com/eslsoft/atservices/internal/infrastructure/logging"
	"github.com/eslsoft/atservices/internal/usecase"
	"github.com/eslsoft/atservices/internal/usecase/corpus"
	"github.com/eslsoft/atservices/internal/usecase/survey"
)

var loggingSet = wire.NewSet(
	logging.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var databaseSet = wire.NewSet(
	database.NewStore,
)

var repositorySet = wire.NewSet(
	repository.NewSchemaRepository,
	repository.NewTranslationRepository,
	repository.NewMissRepository,
)

var corpusSet = wire.NewSet(
	NewCorpus,
	NewFetcher,
	corpus.NewAvailability,
	corpus.NewAcquirer,
	corpus.NewIngestor,
	wire.Bind(new(corpus.AvailabilityChecker), new(*corpus.Availability)),
	wire.Bind(new(corpus.Fetcher), new(*corpus.HTTPFetcher)),
)

var surveySet = wire.NewSet(
	survey.NewRecorder,
	survey.NewExporter,
	survey.NewPurger,
	wire.Bind(new(usecase.MissRecorder), new(*survey.Recorder)),
)

var usecaseSet = wire.NewSet(
	usecase.NewTranslationUsecase,
)

// Initialize builds the application container using Wire.
func Initialize(cfg *config.Config) (*Container, func(), error) {
	wire.Build(
		loggingSet,
		databaseSet,
		repositorySet,
		corpusSet,
		surveySet,
		usecaseSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
