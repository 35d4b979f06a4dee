package service

import (
	"sort"
	"strings"

	"core/internal/model"
)

// DefaultTopN is the number of matches returned when the caller does not
// specify a limit.
const DefaultTopN = 3

// PropertyMatcher filters and ranks catalog records against a
// requirement profile. All filters are conjunctive and optional: an
// absent bound imposes no constraint.
type PropertyMatcher struct{}

// NewPropertyMatcher creates a matcher
func NewPropertyMatcher() *PropertyMatcher {
	return &PropertyMatcher{}
}

// Match returns up to topN surviving records ranked by culture score
// descending. The sort is stable, so records with equal scores keep
// their catalog order and identical inputs always produce identical
// output. An empty surviving set returns an empty slice; any fallback
// to unfiltered listings is the caller's policy, not the matcher's.
func (m *PropertyMatcher) Match(catalog []model.PropertyRecord, req model.RequirementProfile, topN int) []model.PropertyMatch {
	if topN <= 0 {
		topN = DefaultTopN
	}

	matches := []model.PropertyMatch{}
	for _, rec := range catalog {
		if req.MinSizeSqFt != nil && rec.SizeSqFt < *req.MinSizeSqFt {
			continue
		}
		if req.MaxSizeSqFt != nil && rec.SizeSqFt > *req.MaxSizeSqFt {
			continue
		}
		if req.MaxRentPerSqFt != nil && rec.RentPerSqFtYear > *req.MaxRentPerSqFt {
			continue
		}
		if len(req.PreferredLocations) > 0 && !addressContainsAny(rec.Address, req.PreferredLocations) {
			continue
		}

		matches = append(matches, model.PropertyMatch{
			PropertyRecord: rec,
			CultureScore:   cultureScore(rec.Address, req.CultureKeywords),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CultureScore > matches[j].CultureScore
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// addressContainsAny reports whether the address contains at least one
// of the terms, case-insensitively.
func addressContainsAny(address string, terms []string) bool {
	lower := strings.ToLower(address)
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// cultureScore counts distinct culture keywords appearing in the address
// text. Matching against the address only is a known weak heuristic of
// this dataset and is preserved as-is.
func cultureScore(address string, keywords []string) int {
	lower := strings.ToLower(address)
	seen := make(map[string]struct{}, len(keywords))
	score := 0
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if strings.Contains(lower, k) {
			score++
		}
	}
	return score
}
