package service

import (
	"strings"

	"core/internal/model"
)

// EmotionFormula selects the composite emotion score calculation. Two
// formulas shipped in different code paths historically; both remain
// available so callers can pick explicitly.
type EmotionFormula int

const (
	// FormulaComposite: clamp(0.5 + (enthusiasm + confidence - uncertainty) * 0.3, 0, 1)
	FormulaComposite EmotionFormula = iota
	// FormulaLegacy: 0.5 + (enthusiasm - uncertainty) * 0.5
	FormulaLegacy
)

// ParseEmotionFormula maps a config string to a formula, defaulting to
// the composite form.
func ParseEmotionFormula(s string) EmotionFormula {
	if strings.EqualFold(s, "legacy") {
		return FormulaLegacy
	}
	return FormulaComposite
}

// Keyword vocabularies and their normalization scale factors. The scale
// factors differ per vocabulary and are part of the tuned behavior; do
// not unify them.
var (
	enthusiasmKeywords   = []string{"excited", "love", "amazing", "perfect", "great", "fantastic", "wow", "awesome"}
	professionalKeywords = []string{"need", "require", "business", "professional", "office", "company", "corporate"}
	uncertaintyKeywords  = []string{"maybe", "perhaps", "not sure", "uncertain", "think", "might", "possibly"}
	confidenceKeywords   = []string{"definitely", "certainly", "absolutely", "sure", "confident", "know", "clear"}
)

const (
	enthusiasmScale   = 8.0
	professionalScale = 5.0
	uncertaintyScale  = 8.0
	confidenceScale   = 8.0
)

// EmotionAnalyzer derives a coarse affect vector from keyword density in
// text. Analyze is a pure function: same text, same profile.
type EmotionAnalyzer struct {
	formula EmotionFormula
}

// NewEmotionAnalyzer creates an analyzer using the given score formula
func NewEmotionAnalyzer(formula EmotionFormula) *EmotionAnalyzer {
	return &EmotionAnalyzer{formula: formula}
}

// Analyze scores the text against the four tone vocabularies. Each
// keyword counts at most once regardless of repetition; levels are
// normalized by the whitespace token count (floored at 1) and capped
// at 1.0. Empty text yields all-zero levels and a neutral 0.5 score.
func (a *EmotionAnalyzer) Analyze(text string) model.EmotionProfile {
	lower := strings.ToLower(text)

	wordCount := len(strings.Fields(lower))
	if wordCount < 1 {
		wordCount = 1
	}

	enthusiasm := vocabularyLevel(lower, enthusiasmKeywords, enthusiasmScale, wordCount)
	professional := vocabularyLevel(lower, professionalKeywords, professionalScale, wordCount)
	uncertainty := vocabularyLevel(lower, uncertaintyKeywords, uncertaintyScale, wordCount)
	confidence := vocabularyLevel(lower, confidenceKeywords, confidenceScale, wordCount)

	var score float64
	switch a.formula {
	case FormulaLegacy:
		score = 0.5 + (enthusiasm-uncertainty)*0.5
	default:
		score = clamp01(0.5 + (enthusiasm+confidence-uncertainty)*0.3)
	}

	return model.EmotionProfile{
		EmotionScore:      score,
		EnthusiasmLevel:   enthusiasm,
		ProfessionalLevel: professional,
		ConfidenceLevel:   confidence,
		UncertaintyLevel:  uncertainty,
		VoicePace:         1.0 + (enthusiasm-0.5)*0.4,
		Tone: model.ToneAnalysis{
			Professional: professional,
			Excited:      enthusiasm,
			Confident:    confidence,
			Uncertain:    uncertainty,
		},
	}
}

// vocabularyLevel counts distinct keywords present as substrings and
// normalizes by word count and the vocabulary's scale factor.
func vocabularyLevel(text string, keywords []string, scale float64, wordCount int) float64 {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	level := float64(hits) / float64(wordCount) * scale
	if level > 1.0 {
		level = 1.0
	}
	return level
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
