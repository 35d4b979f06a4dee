package model

// ToneAnalysis is the per-tone breakdown exposed alongside the composite
// emotion score. Excited mirrors the enthusiasm level and Confident the
// confidence level; both are kept for response-tone selection downstream.
type ToneAnalysis struct {
	Professional float64 `json:"professional"`
	Excited      float64 `json:"excited"`
	Confident    float64 `json:"confident"`
	Uncertain    float64 `json:"uncertain"`
}

// EmotionProfile is a coarse affect vector derived from keyword density in
// an utterance. All levels are in [0,1].
type EmotionProfile struct {
	EmotionScore      float64      `json:"emotion_score"`
	EnthusiasmLevel   float64      `json:"enthusiasm_level"`
	ProfessionalLevel float64      `json:"professional_level"`
	ConfidenceLevel   float64      `json:"confidence_level"`
	UncertaintyLevel  float64      `json:"uncertainty_level"`
	VoicePace         float64      `json:"voice_pace"`
	Tone              ToneAnalysis `json:"tone_analysis"`
}
