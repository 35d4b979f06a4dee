package service

import (
	"math"
	"reflect"
	"testing"
)

func TestAnalyzeEmptyText(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)
	p := a.Analyze("")

	if p.EnthusiasmLevel != 0 || p.ProfessionalLevel != 0 || p.ConfidenceLevel != 0 || p.UncertaintyLevel != 0 {
		t.Errorf("levels = %+v, want all zero", p)
	}
	if !floatEq(p.EmotionScore, 0.5) {
		t.Errorf("score = %v, want neutral 0.5", p.EmotionScore)
	}
	if !floatEq(p.VoicePace, 0.8) {
		t.Errorf("voice pace = %v, want 0.8", p.VoicePace)
	}
}

func TestAnalyzeEnthusiasticText(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)
	p := a.Analyze("This is amazing, I love it! Absolutely perfect!")

	if p.EnthusiasmLevel <= 0.5 {
		t.Errorf("enthusiasm = %v, want > 0.5", p.EnthusiasmLevel)
	}
	if p.EmotionScore <= 0.5 {
		t.Errorf("score = %v, want > 0.5", p.EmotionScore)
	}
	if p.VoicePace <= 1.0 {
		t.Errorf("voice pace = %v, want > 1.0", p.VoicePace)
	}
}

func TestAnalyzeUncertainText(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)
	p := a.Analyze("maybe, perhaps, I think we might wait")

	if p.UncertaintyLevel <= 0.5 {
		t.Errorf("uncertainty = %v, want > 0.5", p.UncertaintyLevel)
	}
	if p.EmotionScore >= 0.5 {
		t.Errorf("score = %v, want < 0.5", p.EmotionScore)
	}
}

func TestAnalyzeLevelNormalization(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)

	// 16 words, one enthusiasm keyword: 1/16 * 8 = 0.5 exactly.
	text := "the quick brown fox jumps over the lazy dog near the old mill by great river"
	p := a.Analyze(text)
	if !floatEq(p.EnthusiasmLevel, 0.5) {
		t.Errorf("enthusiasm = %v, want 0.5", p.EnthusiasmLevel)
	}
	if !floatEq(p.VoicePace, 1.0) {
		t.Errorf("voice pace = %v, want 1.0", p.VoicePace)
	}
	if !floatEq(p.EmotionScore, 0.65) {
		t.Errorf("score = %v, want 0.65", p.EmotionScore)
	}
}

func TestAnalyzeKeywordCountedOnce(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)

	// "great" appears twice in 16 words but counts once: 1/16 * 8 = 0.5.
	text := "great things come to those who wait for the great day to arrive in due time"
	p := a.Analyze(text)
	if !floatEq(p.EnthusiasmLevel, 0.5) {
		t.Errorf("enthusiasm = %v, want 0.5 (distinct keyword counting)", p.EnthusiasmLevel)
	}
}

func TestScoreFormulas(t *testing.T) {
	// 16 words, one uncertainty keyword: 1/16 * 8 = 0.5.
	text := "maybe we should take a bit more time to look at all of the other options"

	composite := NewEmotionAnalyzer(FormulaComposite).Analyze(text)
	legacy := NewEmotionAnalyzer(FormulaLegacy).Analyze(text)

	// composite: clamp(0.5 + (0 + 0 - 0.5)*0.3) = 0.35
	if !floatEq(composite.EmotionScore, 0.35) {
		t.Errorf("composite score = %v, want 0.35", composite.EmotionScore)
	}
	// legacy: 0.5 + (0 - 0.5)*0.5 = 0.25
	if !floatEq(legacy.EmotionScore, 0.25) {
		t.Errorf("legacy score = %v, want 0.25", legacy.EmotionScore)
	}

	// formula choice only affects the composite score
	if !floatEq(composite.UncertaintyLevel, legacy.UncertaintyLevel) {
		t.Errorf("levels differ across formulas: %v vs %v", composite.UncertaintyLevel, legacy.UncertaintyLevel)
	}
}

func TestCompositeScoreClamped(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)
	p := a.Analyze("amazing fantastic awesome definitely absolutely certainly")

	if p.EmotionScore < 0 || p.EmotionScore > 1 {
		t.Errorf("score = %v, want within [0, 1]", p.EmotionScore)
	}
	if math.Abs(p.EmotionScore-1.0) > 1e-9 {
		t.Errorf("score = %v, want clamped to 1.0", p.EmotionScore)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)
	text := "We definitely need a professional office space, maybe downtown"

	first := a.Analyze(text)
	second := a.Analyze(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis differs: %+v vs %+v", first, second)
	}
}

func TestToneMirrorsLevels(t *testing.T) {
	a := NewEmotionAnalyzer(FormulaComposite)
	p := a.Analyze("I'm excited but not sure about the corporate office")

	if !floatEq(p.Tone.Excited, p.EnthusiasmLevel) ||
		!floatEq(p.Tone.Professional, p.ProfessionalLevel) ||
		!floatEq(p.Tone.Confident, p.ConfidenceLevel) ||
		!floatEq(p.Tone.Uncertain, p.UncertaintyLevel) {
		t.Errorf("tone %+v does not mirror levels %+v", p.Tone, p)
	}
}

func TestParseEmotionFormula(t *testing.T) {
	tests := []struct {
		in   string
		want EmotionFormula
	}{
		{"legacy", FormulaLegacy},
		{"LEGACY", FormulaLegacy},
		{"composite", FormulaComposite},
		{"", FormulaComposite},
		{"unknown", FormulaComposite},
	}
	for _, tt := range tests {
		if got := ParseEmotionFormula(tt.in); got != tt.want {
			t.Errorf("ParseEmotionFormula(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
