package repository

import (
	"strings"

	"github.com/samber/lo"
)

// normalizeCodes trims, lowercases and dedupes language codes used as filters.
// It returns nil when nothing is left, so the caller skips the predicate.
func normalizeCodes(in []string) []string {
	out := lo.Uniq(lo.FilterMap(in, func(code string, _ int) (string, bool) {
		code = strings.ToLower(strings.TrimSpace(code))
		return code, code != ""
	}))
	if len(out) == 0 {
		return nil
	}
	return out
}
