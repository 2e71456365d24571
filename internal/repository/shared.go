package repository

import "time"

// MissQuery narrows a survey read. Nil or empty fields do not filter.
type MissQuery struct {
	Clients          []string
	LemmaLangs       []string
	TranslationLangs []string
	Lemma            *string
	LemmaPrefix      *string
	Since            *time.Time
	Until            *time.Time
}

// IngestStats reports the outcome of a bulk insert.
type IngestStats struct {
	Inserted int
	Skipped  int
}
