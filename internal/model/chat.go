package model

// ChatTurn is a single message in the conversation history supplied by the
// caller. The core keeps no conversation state of its own.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents an incoming chat message
type ChatRequest struct {
	Message             string          `json:"message" binding:"required"`
	ConversationHistory []ChatTurn      `json:"conversation_history,omitempty"`
	RAGContext          string          `json:"rag_context,omitempty"`
	EmotionData         *EmotionProfile `json:"emotion_data,omitempty"`
}

// ChatResponse represents the generated answer plus the structured state
// that produced it
type ChatResponse struct {
	Response        string              `json:"response"`
	ProcessingTime  float64             `json:"processing_time"`
	TokensUsed      int                 `json:"tokens_used"`
	Model           string              `json:"model"`
	RAGSourcesUsed  bool                `json:"rag_sources_used"`
	Requirements    *RequirementProfile `json:"requirements,omitempty"`
	Matches         []PropertyMatch     `json:"matches,omitempty"`
	EmotionAnalysis *EmotionProfile     `json:"emotion_analysis,omitempty"`
}

// SpeechRequest represents a text-to-speech request
type SpeechRequest struct {
	Text           string          `json:"text" binding:"required"`
	Provider       string          `json:"provider,omitempty"`
	VoiceID        string          `json:"voice_id,omitempty"`
	EmotionContext *EmotionProfile `json:"emotion_context,omitempty"`
}

// SpeechResponse represents synthesized audio (base64)
type SpeechResponse struct {
	AudioData      string  `json:"audio_data"`
	GenerationTime float64 `json:"generation_time"`
	Provider       string  `json:"provider"`
	VoiceID        string  `json:"voice_id"`
	TextLength     int     `json:"text_length"`
}

// TranscriptionResponse represents a transcription result with the emotion
// profile derived from the transcript
type TranscriptionResponse struct {
	Transcript        string          `json:"transcript"`
	Confidence        float64         `json:"confidence"`
	TranscriptionTime float64         `json:"transcription_time"`
	Provider          string          `json:"provider"`
	EmotionAnalysis   *EmotionProfile `json:"emotion_analysis"`
}

// ConverseTimings breaks down the full voice pipeline latency
type ConverseTimings struct {
	TranscriptionTime float64 `json:"transcription_time"`
	LLMProcessingTime float64 `json:"llm_processing_time"`
	TTSGenerationTime float64 `json:"tts_generation_time"`
	TotalTime         float64 `json:"total_time"`
}

// ConverseResponse is the result of the full voice pipeline:
// transcription, chat, and optional speech synthesis
type ConverseResponse struct {
	Transcript      string          `json:"transcript"`
	Response        string          `json:"response"`
	AudioResponse   string          `json:"audio_response,omitempty"`
	EmotionAnalysis *EmotionProfile `json:"emotion_analysis"`
	ProcessingTimes ConverseTimings `json:"processing_times"`
	SessionID       string          `json:"session_id"`
}
