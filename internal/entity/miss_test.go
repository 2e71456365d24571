package entity

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2018, 1, 1, 19, 59, 0, 0, time.UTC)
	cases := []string{
		"2018-01-01 19:59:00",
		`"2018-01-01 19:59:00"`,
		"'2018-01-01 19:59'",
		"2018-01-01T19:59:00Z",
		"2018-01-01T20:59:00+01:00",
		" 2018-01-01 19:59:00.4 ",
	}
	for _, in := range cases {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v want %v", in, got, want)
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected free text to be rejected")
	}
	if _, err := ParseTimestamp(`""`); err == nil {
		t.Fatalf("expected empty quoted timestamp to fail")
	}

	day, err := ParseTimestamp("2018-01-01")
	if err != nil || !day.Equal(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date only: got %v %v", day, err)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	in := time.Date(2018, 1, 1, 20, 0, 0, 999_000_000, loc)
	got := NormalizeTimestamp(in)
	if got.Location() != time.UTC || got.Nanosecond() != 0 || got.Hour() != 19 {
		t.Fatalf("unexpected normalized value %v", got)
	}
}

func TestParseLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want Language
	}{
		{"fr", LanguageFrench},
		{"FRE", LanguageFrench},
		{" la ", LanguageLatin},
		{"xx", Language("xx")},
		{"", LanguageUnspecified},
	}
	for _, c := range cases {
		if got := ParseLanguage(c.in); got != c.want {
			t.Fatalf("%q -> %q want %q", c.in, got, c.want)
		}
	}
	if !LanguageGerman.Known() || Language("xx").Known() {
		t.Fatalf("Known mismatch")
	}
}
