package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/repository"
)

// IngestResult summarises one ingestion run.
type IngestResult struct {
	Documents int
	Inserted  int
	Skipped   int
}

// Ingestor loads the translation documents of a corpus into the translation store.
type Ingestor struct {
	repo   repository.TranslationRepository
	logger logrus.FieldLogger
}

func NewIngestor(repo repository.TranslationRepository, logger logrus.FieldLogger) *Ingestor {
	return &Ingestor{repo: repo, logger: logger}
}

// IngestArchive ingests the local archive of c.
func (i *Ingestor) IngestArchive(ctx context.Context, c Corpus) (IngestResult, error) {
	return i.IngestPath(ctx, c, c.Path)
}

// IngestPath ingests c from a zip archive or directory at path.
func (i *Ingestor) IngestPath(ctx context.Context, c Corpus, path string) (IngestResult, error) {
	fsys, closeFn, err := OpenSource(path)
	if err != nil {
		return IngestResult{}, err
	}
	defer closeFn()
	return i.Ingest(ctx, c, fsys)
}

// Ingest parses every lemmes.<suffix> document of fsys and inserts the translations
// not yet stored. The run is all or nothing: a malformed line or a storage error
// leaves the store as it was.
func (i *Ingestor) Ingest(ctx context.Context, c Corpus, fsys fs.FS) (IngestResult, error) {
	log := i.logger.WithField("corpus", c.Name)

	names, err := listDocuments(fsys)
	if err != nil {
		return IngestResult{}, err
	}

	type document struct {
		name string
		lang entity.Language
	}
	var docs []document
	for _, name := range names {
		lang, suffix, ok := documentLanguage(name)
		if !ok {
			log.WithFields(logrus.Fields{"document": name, "suffix": suffix}).Warn("skipping document with unknown language suffix")
			continue
		}
		if lang == c.LemmaLang {
			// The lemma-language document holds morphology, not translations.
			log.WithField("document", name).Debug("skipping lemma language document")
			continue
		}
		docs = append(docs, document{name: name, lang: lang})
	}
	if len(docs) == 0 {
		return IngestResult{}, &entity.CorpusFormatError{Document: c.Name, Reason: "no translation documents found"}
	}

	var rows iter.Seq2[entity.Translation, error] = func(yield func(entity.Translation, error) bool) {
		for _, doc := range docs {
			f, err := fsys.Open(doc.name)
			if err != nil {
				yield(entity.Translation{}, fmt.Errorf("open %s: %w", doc.name, err))
				return
			}
			cont := parseDocument(doc.name, c.LemmaLang, doc.lang, f, yield)
			_ = f.Close()
			if !cont {
				return
			}
			log.WithFields(logrus.Fields{"document": doc.name, "language": doc.lang}).Debug("document parsed")
		}
	}

	stats, err := i.repo.InsertMissing(ctx, rows)
	if err != nil {
		return IngestResult{}, err
	}
	result := IngestResult{Documents: len(docs), Inserted: stats.Inserted, Skipped: stats.Skipped}
	log.WithFields(logrus.Fields{
		"documents": result.Documents,
		"inserted":  result.Inserted,
		"skipped":   result.Skipped,
	}).Info("corpus ingested")
	return result, nil
}
