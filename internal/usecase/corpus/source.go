package corpus

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// OpenSource opens a corpus source at path: either a zip archive or a directory.
// The returned close function must be called once the source is no longer read.
func OpenSource(path string) (fs.FS, func() error, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus source: %w", err)
	}
	if st.IsDir() {
		return os.DirFS(path), func() error { return nil }, nil
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus archive %s: %w", path, err)
	}
	return zr, zr.Close, nil
}

// listDocuments returns every lemmes.* file of fsys in lexical path order.
func listDocuments(fsys fs.FS) ([]string, error) {
	var names []string
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDocumentName(name) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list corpus documents: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
