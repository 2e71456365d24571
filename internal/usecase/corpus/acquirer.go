package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/atservices/internal/entity"
)

// Fetcher streams the resource at url into w.
type Fetcher interface {
	Fetch(ctx context.Context, url string, w io.Writer) error
}

// HTTPFetcher downloads over HTTP(S) with a whole-request timeout.
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "atservices-cli")
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	return nil
}

// Acquirer puts a corpus archive on local storage.
type Acquirer struct {
	availability AvailabilityChecker
	fetcher      Fetcher
	logger       logrus.FieldLogger
}

func NewAcquirer(availability AvailabilityChecker, fetcher Fetcher, logger logrus.FieldLogger) *Acquirer {
	return &Acquirer{availability: availability, fetcher: fetcher, logger: logger}
}

// Acquire downloads c unless it is already available and force is false.
// It reports whether a download happened. The archive is written next to its final
// path and renamed into place only once it passes the structural check, so an
// interrupted download never replaces a good archive.
func (a *Acquirer) Acquire(ctx context.Context, c Corpus, force bool) (bool, error) {
	log := a.logger.WithField("corpus", c.Name)
	if !force && a.availability.IsAvailable(c) {
		log.WithField("path", c.Path).Info("corpus already available")
		return false, nil
	}

	log.WithFields(logrus.Fields{"url": c.URL, "force": force}).Info("downloading corpus")
	start := time.Now()
	if err := a.download(ctx, c); err != nil {
		return false, &entity.AcquisitionError{Corpus: c.Name, URL: c.URL, Err: err}
	}
	log.WithFields(logrus.Fields{"path": c.Path, "elapsed": time.Since(start)}).Info("corpus downloaded")
	return true, nil
}

func (a *Acquirer) download(ctx context.Context, c Corpus) (err error) {
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.Path)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := a.fetcher.Fetch(ctx, c.URL, tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := checkArchive(tmpPath); err != nil {
		if errors.Is(err, errNoDocuments) {
			return err
		}
		return fmt.Errorf("downloaded archive is invalid: %w", err)
	}
	if err := os.Rename(tmpPath, c.Path); err != nil {
		return fmt.Errorf("install archive: %w", err)
	}
	return nil
}
