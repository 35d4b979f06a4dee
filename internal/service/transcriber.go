package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"core/internal/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const mockProviderName = "smart_mock"

// mockTranscripts cover the common demo conversation beats. Selection is
// deterministic on the audio payload length so repeated uploads replay
// the same transcript.
var mockTranscripts = []string{
	"Hi, I'm looking for office space for my startup. We have about 25 people and need a modern, collaborative environment.",
	"We need around 3000 square feet of office space downtown with a budget of $30 per square foot.",
	"Our team is growing fast and we want a creative space that reflects our company culture.",
	"Can you show me properties with good natural light and modern amenities for a tech company?",
}

// TranscriptResult carries the recognized text plus provenance metadata.
type TranscriptResult struct {
	Transcript        string
	Confidence        float64
	TranscriptionTime float64
	Provider          string
}

// SpeechResult carries synthesized audio as base64.
type SpeechResult struct {
	AudioData      string
	GenerationTime float64
	Provider       string
	VoiceID        string
}

// Transcriber converts audio to text and text to audio. With an API key
// it uses Whisper for recognition; otherwise both directions run in
// deterministic mock mode so the voice pipeline stays demonstrable
// end to end.
type Transcriber struct {
	client *openai.Client
	cfg    *config.OpenAIConfig
	log    *zap.Logger
}

// NewTranscriber creates a transcriber. A missing API key selects mock
// mode for both transcription and synthesis.
func NewTranscriber(cfg *config.OpenAIConfig, log *zap.Logger) *Transcriber {
	var client *openai.Client
	if cfg.Enabled {
		client = openai.NewClient(cfg.APIKey)
	} else {
		log.Warn("OpenAI API key not provided - transcription will use mock mode")
	}

	return &Transcriber{client: client, cfg: cfg, log: log}
}

// Transcribe recognizes speech in the audio payload. The filename hints
// the container format to the API; it is ignored in mock mode.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (TranscriptResult, error) {
	start := time.Now()

	if t.client == nil {
		return t.mockTranscribe(start, audio), nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(t.cfg.Timeout)*time.Second)
	defer cancel()

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.cfg.WhisperModel,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
	})
	if err != nil {
		t.log.Warn("Whisper transcription failed, using mock transcript", zap.Error(err))
		return t.mockTranscribe(start, audio), nil
	}

	return TranscriptResult{
		Transcript:        resp.Text,
		Confidence:        0.95,
		TranscriptionTime: time.Since(start).Seconds(),
		Provider:          "openai_whisper",
	}, nil
}

func (t *Transcriber) mockTranscribe(start time.Time, audio []byte) TranscriptResult {
	transcript := mockTranscripts[len(audio)%len(mockTranscripts)]
	return TranscriptResult{
		Transcript:        transcript,
		Confidence:        0.95,
		TranscriptionTime: time.Since(start).Seconds(),
		Provider:          mockProviderName,
	}
}

// Synthesize produces base64 audio for the text. Only the mock provider
// is implemented; the payload embeds a text prefix so callers can verify
// round trips.
func (t *Transcriber) Synthesize(_ context.Context, text, voiceID string) (SpeechResult, error) {
	start := time.Now()

	if text == "" {
		return SpeechResult{}, fmt.Errorf("text is required for speech synthesis")
	}

	prefix := text
	if len(prefix) > 20 {
		prefix = prefix[:20]
	}
	audio := base64.StdEncoding.EncodeToString([]byte("mock_audio_" + prefix))

	if voiceID == "" {
		voiceID = "default"
	}

	return SpeechResult{
		AudioData:      audio,
		GenerationTime: time.Since(start).Seconds(),
		Provider:       mockProviderName,
		VoiceID:        voiceID,
	}, nil
}
