package survey

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/eslsoft/atservices/internal/entity"
	"github.com/eslsoft/atservices/internal/repository"
	"github.com/eslsoft/atservices/pkg/filterexpr"
)

var missFilterSchema = filterexpr.Schema{
	"client": {
		Kind: filterexpr.KindString,
		Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Clients", filterexpr.OpIN: "Clients"},
	},
	"lemma": {
		Kind: filterexpr.KindString,
		Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Lemma", filterexpr.OpSW: "LemmaPrefix"},
	},
	"lemma_lang": {
		Kind: filterexpr.KindString,
		Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "LemmaLangs", filterexpr.OpIN: "LemmaLangs"},
	},
	"translation_lang": {
		Kind: filterexpr.KindString,
		Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "TranslationLangs", filterexpr.OpIN: "TranslationLangs"},
	},
	"at": {
		Kind: filterexpr.KindTimestamp,
		Ops:  map[filterexpr.Op]string{filterexpr.OpGTE: "Since", filterexpr.OpLTE: "Until"},
	},
}

// ParseFilter turns a CEL filter such as
//
//	client == 'Bocuse' && at >= timestamp('2018-01-01T00:00:00Z')
//
// into a miss query. Language codes may be given in their two-letter form.
func ParseFilter(expr string) (repository.MissQuery, error) {
	var q repository.MissQuery
	if err := filterexpr.Bind(expr, &q, missFilterSchema); err != nil {
		return repository.MissQuery{}, fmt.Errorf("survey filter: %w", err)
	}
	q.LemmaLangs = normalizeLanguages(q.LemmaLangs)
	q.TranslationLangs = normalizeLanguages(q.TranslationLangs)
	if q.Since != nil {
		since := entity.NormalizeTimestamp(*q.Since)
		q.Since = &since
	}
	if q.Until != nil {
		until := entity.NormalizeTimestamp(*q.Until)
		q.Until = &until
	}
	return q, nil
}

func normalizeLanguages(codes []string) []string {
	if len(codes) == 0 {
		return codes
	}
	return lo.Uniq(lo.Map(codes, func(code string, _ int) string {
		return entity.ParseLanguage(code).Code()
	}))
}
