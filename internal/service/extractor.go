package service

import (
	"regexp"
	"strconv"
	"strings"

	"core/internal/model"
)

// PeopleRatio selects how headcount mentions convert to square footage.
// The point estimate (125 sqft per person) and the 100-200 range both
// shipped historically; both remain selectable.
type PeopleRatio int

const (
	// PeopleRatioPoint contributes n*125 per headcount mention.
	PeopleRatioPoint PeopleRatio = iota
	// PeopleRatioRange contributes n*100 and n*200 per headcount mention.
	PeopleRatioRange
)

// ParsePeopleRatio maps a config string to a strategy, defaulting to the
// point estimate.
func ParsePeopleRatio(s string) PeopleRatio {
	if strings.EqualFold(s, "range") {
		return PeopleRatioRange
	}
	return PeopleRatioPoint
}

const (
	sqFtPerPersonPoint = 125.0
	sqFtPerPersonMin   = 100.0
	sqFtPerPersonMax   = 200.0

	// When only one size value is found, the upper bound is derived from
	// the lower one.
	singleSizeSpread = 1.5

	// Monthly budgets convert to annual per-sqft against a reference size.
	monthlyBudgetReferenceSqFt = 2000.0
)

var (
	sizeSqFtPattern = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*(?:sq\.?\s*ft\.?|square\s*feet?|sf)`)

	peoplePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*people`),
		regexp.MustCompile(`team\s*of\s*(\d+)`),
		regexp.MustCompile(`(\d+)\s*employees`),
	}

	// Budget patterns tried in priority order; the first family with a
	// match wins and later mentions are ignored.
	budgetPerSqFtPattern = regexp.MustCompile(`\$(\d+(?:\.\d{2})?)\s*(?:per\s*)?(?:sq\.?\s*ft\.?|square\s*foot|sf)`)
	budgetMonthlyPattern = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*)\s*(?:per\s*)?month`)
	budgetGenericPattern = regexp.MustCompile(`budget.*?\$(\d{1,3}(?:,\d{3})*)`)

	locationVocabulary = []string{"downtown", "uptown", "midtown", "district", "center"}

	cultureVocabulary = []string{
		"collaborative", "modern", "traditional", "creative", "corporate",
		"startup", "professional", "casual", "innovative", "tech",
	}
)

// RequirementExtractor parses free-form conversation text into a
// structured requirement profile. It is a best-effort heuristic, not
// exact language understanding: every step degrades to "no constraint"
// rather than failing.
type RequirementExtractor struct {
	peopleRatio PeopleRatio
}

// NewRequirementExtractor creates an extractor with the given headcount
// conversion strategy
func NewRequirementExtractor(ratio PeopleRatio) *RequirementExtractor {
	return &RequirementExtractor{peopleRatio: ratio}
}

// Extract parses the lower-cased conversation text for size, budget,
// location, and culture signals, then applies emotion-based adjustments
// when a profile is supplied. The returned bounds always satisfy
// minSize <= maxSize.
func (e *RequirementExtractor) Extract(conversationText string, emotion *model.EmotionProfile) model.RequirementProfile {
	text := strings.ToLower(conversationText)
	req := model.RequirementProfile{}

	sizes := e.collectSizes(text)
	if len(sizes) > 0 {
		minSize, maxSize := sizeBounds(sizes)
		req.MinSizeSqFt = &minSize
		req.MaxSizeSqFt = &maxSize
	}

	if budget, ok := detectBudget(text); ok {
		req.MaxRentPerSqFt = &budget
	}

	for _, loc := range locationVocabulary {
		if strings.Contains(text, loc) {
			req.PreferredLocations = append(req.PreferredLocations, loc)
		}
	}

	for _, kw := range cultureVocabulary {
		if strings.Contains(text, kw) {
			req.CultureKeywords = append(req.CultureKeywords, kw)
		}
	}

	if emotion != nil {
		applyEmotionAdjustments(&req, emotion)
	}

	return req
}

// collectSizes gathers every size signal in the text: explicit square
// footage plus headcount mentions converted via the configured ratio.
// Non-positive values are dropped: the size pattern expects comma
// separators, so comma-less thousands like "3000 square feet" match
// only their trailing zeros and would otherwise poison the bounds.
func (e *RequirementExtractor) collectSizes(text string) []float64 {
	var sizes []float64

	for _, m := range sizeSqFtPattern.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil && v > 0 {
			sizes = append(sizes, v)
		}
	}

	for _, pattern := range peoplePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil || n <= 0 {
				continue
			}
			switch e.peopleRatio {
			case PeopleRatioRange:
				sizes = append(sizes, n*sqFtPerPersonMin, n*sqFtPerPersonMax)
			default:
				sizes = append(sizes, n*sqFtPerPersonPoint)
			}
		}
	}

	return sizes
}

// sizeBounds derives min/max from the collected values. A single
// distinct value widens upward by the fixed spread so the pair never
// inverts.
func sizeBounds(sizes []float64) (minSize, maxSize float64) {
	minSize, maxSize = sizes[0], sizes[0]
	distinct := map[float64]struct{}{sizes[0]: {}}
	for _, s := range sizes[1:] {
		if s < minSize {
			minSize = s
		}
		if s > maxSize {
			maxSize = s
		}
		distinct[s] = struct{}{}
	}
	if len(distinct) == 1 {
		maxSize = minSize * singleSizeSpread
	}
	return minSize, maxSize
}

// detectBudget tries the budget pattern families in priority order.
// Monthly amounts convert to annual per-sqft against the reference size.
func detectBudget(text string) (float64, bool) {
	if m := budgetPerSqFtPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}
	if m := budgetMonthlyPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			return v * 12 / monthlyBudgetReferenceSqFt, true
		}
	}
	if m := budgetGenericPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// applyEmotionAdjustments widens already-set bounds for enthusiastic
// clients and appends tone-implied culture keywords. Emotion alone never
// invents a bound.
func applyEmotionAdjustments(req *model.RequirementProfile, emotion *model.EmotionProfile) {
	if emotion.EnthusiasmLevel > 0.7 {
		if req.MaxRentPerSqFt != nil {
			v := *req.MaxRentPerSqFt * 1.2
			req.MaxRentPerSqFt = &v
		}
		if req.MaxSizeSqFt != nil {
			v := *req.MaxSizeSqFt * 1.1
			req.MaxSizeSqFt = &v
		}
	}

	if emotion.Tone.Excited > 0.6 {
		req.CultureKeywords = append(req.CultureKeywords, "modern", "innovative", "tech")
	}
	if emotion.Tone.Professional > 0.7 {
		req.CultureKeywords = append(req.CultureKeywords, "professional", "corporate")
	}
}
