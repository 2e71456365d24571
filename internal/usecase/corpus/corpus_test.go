package corpus

import (
	"archive/zip"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/repository"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testCorpus(dir string) Corpus {
	return Corpus{
		Name:      "collatinus",
		URL:       "http://corpus.invalid/collatinus.zip",
		Path:      filepath.Join(dir, "collatinus.zip"),
		LemmaLang: entity.LanguageLatin,
	}
}

// writeZip writes files into a new zip archive at path.
func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry %s: %v", name, err)
		}
		if _, err := io.WriteString(w, files[name]); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.zip")
	writeZip(t, path, files)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	return data
}

// memTranslationRepo stores translations in memory. InsertMissing stages rows and
// commits only when the whole sequence was consumed without error.
type memTranslationRepo struct {
	mu   sync.Mutex
	rows map[[4]string]entity.Translation
	err  error
}

var _ repository.TranslationRepository = (*memTranslationRepo)(nil)

func newMemTranslationRepo() *memTranslationRepo {
	return &memTranslationRepo{rows: make(map[[4]string]entity.Translation)}
}

func (r *memTranslationRepo) Create(_ context.Context, t entity.Translation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rows[t.Key()]; ok {
		return entity.ErrIntegrityViolation
	}
	r.rows[t.Key()] = t
	return nil
}

func (r *memTranslationRepo) InsertMissing(_ context.Context, rows iter.Seq2[entity.Translation, error]) (repository.IngestStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return repository.IngestStats{}, r.err
	}
	staged := make(map[[4]string]entity.Translation)
	var stats repository.IngestStats
	for t, err := range rows {
		if err != nil {
			return repository.IngestStats{}, err
		}
		key := t.Key()
		if _, ok := r.rows[key]; ok {
			stats.Skipped++
			continue
		}
		if _, ok := staged[key]; ok {
			stats.Skipped++
			continue
		}
		staged[key] = t
		stats.Inserted++
	}
	for k, v := range staged {
		r.rows[k] = v
	}
	return stats, nil
}

func (r *memTranslationRepo) Find(_ context.Context, lemma string, lemmaLang, translationLang entity.Language) ([]entity.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Translation
	for _, t := range r.rows {
		if t.Lemma == lemma && t.LemmaLang == lemmaLang && t.TranslationLang == translationLang {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTranslationRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.rows)), nil
}
