package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAvailability(t *testing.T) {
	dir := t.TempDir()
	c := testCorpus(dir)
	av := NewAvailability()

	if av.IsAvailable(c) {
		t.Fatal("missing archive reported available")
	}

	if err := os.WriteFile(c.Path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if av.IsAvailable(c) {
		t.Fatal("empty archive reported available")
	}

	if err := os.WriteFile(c.Path, []byte("<html>not found</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if av.IsAvailable(c) {
		t.Fatal("non-zip archive reported available")
	}

	writeZip(t, c.Path, map[string]string{"collatinus-master/README.md": "readme"})
	if av.IsAvailable(c) {
		t.Fatal("archive without documents reported available")
	}

	writeZip(t, c.Path, map[string]string{"collatinus-master/bin/data/lemmes.fr": "rosa:rose\n"})
	if !av.IsAvailable(c) {
		t.Fatal("valid archive reported unavailable")
	}
}

func TestAvailabilityDirectoryIsNotAnArchive(t *testing.T) {
	dir := t.TempDir()
	c := testCorpus(dir)
	if err := os.MkdirAll(c.Path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(c.Path, "lemmes.fr"), []byte("rosa:rose\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if NewAvailability().IsAvailable(c) {
		t.Fatal("directory reported available")
	}
}
