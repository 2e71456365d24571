package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/eslsoft/atservices/internal/entity"
)

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestIngestIsIdempotent(t *testing.T) {
	repo := newMemTranslationRepo()
	ing := NewIngestor(repo, testLogger())
	c := testCorpus(t.TempDir())
	fsys := mapFS(map[string]string{
		"data/lemmes.fr": "! Collatinus\n\nrosa:rose\namo:aimer\n",
		"data/lemmes.en": "rosa:rose\n",
	})

	first, err := ing.Ingest(context.Background(), c, fsys)
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if first.Documents != 2 || first.Inserted != 3 || first.Skipped != 0 {
		t.Fatalf("unexpected first result: %+v", first)
	}

	second, err := ing.Ingest(context.Background(), c, fsys)
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if second.Inserted != 0 || second.Skipped != 3 {
		t.Fatalf("unexpected second result: %+v", second)
	}
	if n, _ := repo.Count(context.Background()); n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}

	got, err := repo.Find(context.Background(), "rosa", entity.LanguageLatin, entity.LanguageFrench)
	if err != nil || len(got) != 1 || got[0].Translation != "rose" {
		t.Fatalf("unexpected lookup result %v, err %v", got, err)
	}
}

func TestIngestMalformedLineRollsBack(t *testing.T) {
	repo := newMemTranslationRepo()
	ing := NewIngestor(repo, testLogger())
	fsys := mapFS(map[string]string{
		"lemmes.fr": "rosa:rose\nbroken line\n",
	})

	_, err := ing.Ingest(context.Background(), testCorpus(t.TempDir()), fsys)
	if !errors.Is(err, entity.ErrCorpusFormat) {
		t.Fatalf("expected corpus format error, got %v", err)
	}
	var ferr *entity.CorpusFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *CorpusFormatError, got %T", err)
	}
	if ferr.Document != "lemmes.fr" || ferr.Line != 2 || ferr.Record != "broken line" {
		t.Fatalf("unexpected locator: %+v", ferr)
	}
	if n, _ := repo.Count(context.Background()); n != 0 {
		t.Fatalf("expected nothing persisted, got %d rows", n)
	}
}

func TestIngestSkipsUnknownAndLemmaDocuments(t *testing.T) {
	repo := newMemTranslationRepo()
	ing := NewIngestor(repo, testLogger())
	fsys := mapFS(map[string]string{
		"lemmes.fr": "rosa:rose\n",
		"lemmes.xx": "not parsed at all\n",
		"lemmes.la": "rosa=rosa|uita||ae, f.|1\n",
		"README":    "ignored\n",
	})

	res, err := ing.Ingest(context.Background(), testCorpus(t.TempDir()), fsys)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Documents != 1 || res.Inserted != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestIngestWithoutDocuments(t *testing.T) {
	ing := NewIngestor(newMemTranslationRepo(), testLogger())
	_, err := ing.Ingest(context.Background(), testCorpus(t.TempDir()), mapFS(map[string]string{"README": "x"}))
	if !errors.Is(err, entity.ErrCorpusFormat) {
		t.Fatalf("expected corpus format error, got %v", err)
	}
}

func TestIngestPropagatesSchemaUnavailable(t *testing.T) {
	repo := newMemTranslationRepo()
	repo.err = entity.ErrSchemaUnavailable
	ing := NewIngestor(repo, testLogger())
	_, err := ing.Ingest(context.Background(), testCorpus(t.TempDir()), mapFS(map[string]string{"lemmes.fr": "rosa:rose\n"}))
	if !errors.Is(err, entity.ErrSchemaUnavailable) {
		t.Fatalf("expected schema unavailable, got %v", err)
	}
}

func TestIngestPathZipAndDirectory(t *testing.T) {
	dir := t.TempDir()
	c := testCorpus(dir)
	writeZip(t, c.Path, map[string]string{"collatinus-master/bin/data/lemmes.de": "rosa:Rose\n"})

	repo := newMemTranslationRepo()
	ing := NewIngestor(repo, testLogger())
	if _, err := ing.IngestArchive(context.Background(), c); err != nil {
		t.Fatalf("ingest archive: %v", err)
	}

	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "lemmes.it"), []byte("rosa:rosa\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ing.IngestPath(context.Background(), c, srcDir)
	if err != nil {
		t.Fatalf("ingest directory: %v", err)
	}
	if res.Inserted != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if n, _ := repo.Count(context.Background()); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}

	if _, err := ing.IngestPath(context.Background(), c, filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for a missing source")
	}
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		line, lemma, translation, reason string
	}{
		{line: "rosa:rose", lemma: "rosa", translation: "rose"},
		{line: "a, ab : de, par", lemma: "a, ab", translation: "de, par"},
		{line: "uia:route: chemin", lemma: "uia", translation: "route: chemin"},
		{line: "rosa", reason: "missing"},
		{line: ":rose", reason: "empty lemma"},
		{line: "rosa:  ", reason: "empty translation"},
	}
	for _, tc := range cases {
		got, reason := parseLine(tc.line)
		if tc.reason != "" {
			if !strings.Contains(reason, tc.reason) {
				t.Errorf("%q: expected reason %q, got %q", tc.line, tc.reason, reason)
			}
			continue
		}
		if reason != "" || got.Lemma != tc.lemma || got.Translation != tc.translation {
			t.Errorf("%q: got %+v (%q)", tc.line, got, reason)
		}
	}
}
