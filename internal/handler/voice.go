package handler

import (
	"io"
	"net/http"
	"strings"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// maxAudioUploadBytes caps the accepted audio payload (25 MB, the
// Whisper API limit).
const maxAudioUploadBytes = 25 << 20

// VoiceHandler handles the voice pipeline HTTP requests
type VoiceHandler struct {
	conversation *service.ConversationService
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(conversation *service.ConversationService) *VoiceHandler {
	return &VoiceHandler{conversation: conversation}
}

// Transcribe handles POST /api/v1/transcribe. Audio arrives as a
// multipart file field named "audio".
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	audio, filename, ok := h.readAudioUpload(c)
	if !ok {
		return
	}

	response, err := h.conversation.Transcribe(c.Request.Context(), audio, filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Speak handles POST /api/v1/speak
func (h *VoiceHandler) Speak(c *gin.Context) {
	var req model.SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.conversation.Speak(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Speech synthesis failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Converse handles POST /api/v1/converse: transcription, a chat turn,
// and optional speech synthesis in one round trip. Optional form fields:
// "session_id" correlates follow-up turns, "synthesize" defaults to on.
func (h *VoiceHandler) Converse(c *gin.Context) {
	audio, filename, ok := h.readAudioUpload(c)
	if !ok {
		return
	}

	sessionID := c.PostForm("session_id")
	synthesize := c.DefaultPostForm("synthesize", "true") != "false"

	response, err := h.conversation.Converse(c.Request.Context(), audio, filename, sessionID, nil, synthesize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Voice pipeline failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// readAudioUpload validates and reads the multipart "audio" field. On
// failure it writes the error response and returns ok=false.
func (h *VoiceHandler) readAudioUpload(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required (multipart field 'audio')"})
		return nil, "", false
	}

	if fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is empty"})
		return nil, "", false
	}
	if fileHeader.Size > maxAudioUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio file exceeds 25MB limit"})
		return nil, "", false
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "audio/") && contentType != "application/octet-stream" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported content type: " + contentType})
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audio file: " + err.Error()})
		return nil, "", false
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audio file: " + err.Error()})
		return nil, "", false
	}

	return audio, fileHeader.Filename, true
}
