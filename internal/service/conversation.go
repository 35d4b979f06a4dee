package service

import (
	"context"
	"strings"
	"time"

	"core/internal/catalog"
	"core/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationService orchestrates the full pipeline: emotion analysis,
// requirement extraction, property matching, and response composition.
// The catalog is read-only after construction, so the service is safe
// for concurrent requests.
type ConversationService struct {
	catalog     *catalog.Catalog
	emotion     *EmotionAnalyzer
	extractor   *RequirementExtractor
	matcher     *PropertyMatcher
	composer    *ResponseComposer
	transcriber *Transcriber
	topN        int
	log         *zap.Logger
}

// NewConversationService wires the pipeline components together
func NewConversationService(
	cat *catalog.Catalog,
	emotion *EmotionAnalyzer,
	extractor *RequirementExtractor,
	matcher *PropertyMatcher,
	composer *ResponseComposer,
	transcriber *Transcriber,
	topN int,
	log *zap.Logger,
) *ConversationService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &ConversationService{
		catalog:     cat,
		emotion:     emotion,
		extractor:   extractor,
		matcher:     matcher,
		composer:    composer,
		transcriber: transcriber,
		topN:        topN,
		log:         log,
	}
}

// Chat runs one conversational turn. Requirements are extracted from the
// entire conversation so far, not just the latest message, because size
// and budget signals are usually spread across turns. A caller-supplied
// emotion profile (from the voice pipeline) takes precedence over
// re-analyzing the text.
func (s *ConversationService) Chat(ctx context.Context, req model.ChatRequest) model.ChatResponse {
	emotion := req.EmotionData
	if emotion == nil {
		e := s.emotion.Analyze(req.Message)
		emotion = &e
	}

	conversationText := joinConversation(req.ConversationHistory, req.Message)
	requirements := s.extractor.Extract(conversationText, emotion)
	matches := s.matcher.Match(s.catalog.Records(), requirements, s.topN)

	s.log.Debug("chat turn processed",
		zap.Int("matches", len(matches)),
		zap.Bool("has_size_bounds", requirements.HasSizeBounds()),
		zap.Float64("emotion_score", emotion.EmotionScore),
	)

	result := s.composer.Compose(ctx, req.Message, req.ConversationHistory, matches, requirements, emotion, req.RAGContext)

	return model.ChatResponse{
		Response:        result.Response,
		ProcessingTime:  result.ProcessingTime,
		TokensUsed:      result.TokensUsed,
		Model:           result.Model,
		RAGSourcesUsed:  req.RAGContext != "",
		Requirements:    &requirements,
		Matches:         matches,
		EmotionAnalysis: emotion,
	}
}

// Transcribe recognizes speech and attaches the emotion profile derived
// from the transcript.
func (s *ConversationService) Transcribe(ctx context.Context, audio []byte, filename string) (model.TranscriptionResponse, error) {
	result, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return model.TranscriptionResponse{}, err
	}

	emotion := s.emotion.Analyze(result.Transcript)

	return model.TranscriptionResponse{
		Transcript:        result.Transcript,
		Confidence:        result.Confidence,
		TranscriptionTime: result.TranscriptionTime,
		Provider:          result.Provider,
		EmotionAnalysis:   &emotion,
	}, nil
}

// Speak synthesizes audio for the text
func (s *ConversationService) Speak(ctx context.Context, req model.SpeechRequest) (model.SpeechResponse, error) {
	result, err := s.transcriber.Synthesize(ctx, req.Text, req.VoiceID)
	if err != nil {
		return model.SpeechResponse{}, err
	}

	return model.SpeechResponse{
		AudioData:      result.AudioData,
		GenerationTime: result.GenerationTime,
		Provider:       result.Provider,
		VoiceID:        result.VoiceID,
		TextLength:     len(req.Text),
	}, nil
}

// Converse runs the full voice pipeline: transcription, a chat turn on
// the transcript, and optional speech synthesis of the answer. A blank
// session ID gets a fresh UUID so clients can correlate follow-ups.
func (s *ConversationService) Converse(ctx context.Context, audio []byte, filename, sessionID string, history []model.ChatTurn, synthesize bool) (model.ConverseResponse, error) {
	start := time.Now()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	transcription, err := s.Transcribe(ctx, audio, filename)
	if err != nil {
		return model.ConverseResponse{}, err
	}

	chatResp := s.Chat(ctx, model.ChatRequest{
		Message:             transcription.Transcript,
		ConversationHistory: history,
		EmotionData:         transcription.EmotionAnalysis,
	})

	var audioResponse string
	var ttsTime float64
	if synthesize {
		speech, err := s.transcriber.Synthesize(ctx, chatResp.Response, "")
		if err != nil {
			s.log.Warn("speech synthesis failed, returning text only", zap.Error(err))
		} else {
			audioResponse = speech.AudioData
			ttsTime = speech.GenerationTime
		}
	}

	return model.ConverseResponse{
		Transcript:      transcription.Transcript,
		Response:        chatResp.Response,
		AudioResponse:   audioResponse,
		EmotionAnalysis: transcription.EmotionAnalysis,
		ProcessingTimes: model.ConverseTimings{
			TranscriptionTime: transcription.TranscriptionTime,
			LLMProcessingTime: chatResp.ProcessingTime,
			TTSGenerationTime: ttsTime,
			TotalTime:         time.Since(start).Seconds(),
		},
		SessionID: sessionID,
	}, nil
}

// joinConversation flattens history plus the latest message into one
// text blob for requirement extraction.
func joinConversation(history []model.ChatTurn, message string) string {
	if len(history) == 0 {
		return message
	}
	parts := make([]string, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role == "user" {
			parts = append(parts, turn.Content)
		}
	}
	parts = append(parts, message)
	return strings.Join(parts, " ")
}
