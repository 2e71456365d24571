package entity

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the rendering used for Miss.At in survey exports and cutoffs.
const TimestampLayout = "2006-01-02 15:04:05"

// Miss is a failed lookup recorded for corpus-gap analysis.
type Miss struct {
	ID              int64
	At              time.Time
	Lemma           string
	LemmaLang       Language
	TranslationLang Language
	Client          string
}

// NormalizeTimestamp truncates to whole seconds in UTC, the precision misses are stored at.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

var cutoffLayouts = []string{
	TimestampLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseTimestamp parses a user supplied timestamp. Surrounding quotes are removed
// and values without a zone are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	if v == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range cutoffLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return NormalizeTimestamp(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (want %q)", value, TimestampLayout)
}
