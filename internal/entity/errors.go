package entity

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the store and the corpus/survey usecases.
var (
	ErrSchemaUnavailable   = errors.New("schema unavailable: run db-create first")
	ErrIntegrityViolation  = errors.New("integrity violation")
	ErrTranslationNotFound = errors.New("translation not found")
	ErrInvalidLemma        = errors.New("invalid lemma")
	ErrInvalidLanguage     = errors.New("invalid language code")
	ErrAcquisition         = errors.New("corpus acquisition failed")
	ErrCorpusFormat        = errors.New("malformed corpus entry")
	ErrUnknownCorpus       = errors.New("unknown corpus")
)

// AcquisitionError reports a failed corpus download. Callers may retry.
type AcquisitionError struct {
	Corpus string
	URL    string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire corpus %s from %s: %v", e.Corpus, e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

func (e *AcquisitionError) Is(target error) bool { return target == ErrAcquisition }

// CorpusFormatError locates a malformed record inside a corpus document.
type CorpusFormatError struct {
	Document string
	Line     int
	Record   string
	Reason   string
}

func (e *CorpusFormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Document, e.Line, e.Reason, e.Record)
}

func (e *CorpusFormatError) Is(target error) bool { return target == ErrCorpusFormat }
