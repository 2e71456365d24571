package corpus

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
)

// AvailabilityChecker reports whether a corpus is already present locally.
type AvailabilityChecker interface {
	IsAvailable(c Corpus) bool
}

// Availability checks the local archive of a corpus. It never writes.
type Availability struct{}

func NewAvailability() *Availability { return &Availability{} }

// IsAvailable is true when the archive exists, is a readable zip and holds at least
// one lemmes.* document. Document contents are not validated.
func (Availability) IsAvailable(c Corpus) bool {
	return checkArchive(c.Path) == nil
}

var errNoDocuments = errors.New("archive holds no lemmes.* documents")

func checkArchive(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if st.Size() == 0 {
		return fmt.Errorf("%s is empty", path)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() && isDocumentName(f.Name) {
			return nil
		}
	}
	return errNoDocuments
}
