package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"core/internal/config"
	"core/internal/model"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const fallbackModelName = "smart-property-matcher"

// ComposeResult carries the generated response text plus call metadata
type ComposeResult struct {
	Response       string
	ProcessingTime float64
	TokensUsed     int
	Model          string
}

// ResponseComposer turns ranked matches, requirements, and emotion into
// conversational text. With an API key it calls the chat model; without
// one, or when the call fails, it produces a templated response so the
// pipeline never depends on the LLM being reachable.
type ResponseComposer struct {
	client  *openai.Client
	cfg     *config.OpenAIConfig
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewResponseComposer creates a composer. A nil or empty API key leaves
// the client unset and routes every request to the templated fallback.
func NewResponseComposer(cfg *config.OpenAIConfig, log *zap.Logger) *ResponseComposer {
	var client *openai.Client
	if cfg.Enabled {
		client = openai.NewClient(cfg.APIKey)
	} else {
		log.Warn("OpenAI API key not provided - responses will use templated fallback")
	}

	return &ResponseComposer{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		log:     log,
	}
}

// Compose generates the answer for a chat turn. The structured inputs
// (matches, requirements, emotion) are its entire contract with the
// matching core.
func (c *ResponseComposer) Compose(
	ctx context.Context,
	message string,
	history []model.ChatTurn,
	matches []model.PropertyMatch,
	req model.RequirementProfile,
	emotion *model.EmotionProfile,
	ragContext string,
) ComposeResult {
	start := time.Now()

	if c.client == nil {
		return c.composeFallback(start, message, matches, emotion)
	}

	result, err := c.composeLLM(ctx, message, history, matches, req, emotion, ragContext)
	if err != nil {
		c.log.Warn("LLM generation failed, using templated fallback", zap.Error(err))
		return c.composeFallback(start, message, matches, emotion)
	}
	result.ProcessingTime = time.Since(start).Seconds()
	return result
}

func (c *ResponseComposer) composeLLM(
	ctx context.Context,
	message string,
	history []model.ChatTurn,
	matches []model.PropertyMatch,
	req model.RequirementProfile,
	emotion *model.EmotionProfile,
	ragContext string,
) (ComposeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Second)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return ComposeResult{}, fmt.Errorf("rate limiter: %w", err)
	}

	system := buildSystemPrompt(ragContext, FormatPropertyContext(matches, req), emotion)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.ChatModel,
		Messages:    messages,
		MaxTokens:   c.cfg.ChatMaxTokens,
		Temperature: float32(c.cfg.ChatTemperature),
		TopP:        float32(c.cfg.ChatTopP),
	})
	if err != nil {
		return ComposeResult{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ComposeResult{}, fmt.Errorf("chat completion returned no choices")
	}

	return ComposeResult{
		Response:   resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
		Model:      c.cfg.ChatModel,
	}, nil
}

// buildSystemPrompt assembles the assistant persona, emotion guidance,
// and property context for the chat model.
func buildSystemPrompt(ragContext, propertyContext string, emotion *model.EmotionProfile) string {
	var emotionContext string
	if emotion != nil {
		switch {
		case emotion.EnthusiasmLevel > 0.7:
			emotionContext = "The client sounds very excited and enthusiastic! Match their energy and be more detailed about exciting features."
		case emotion.EnthusiasmLevel < 0.3:
			emotionContext = "The client sounds more reserved. Be professional and focus on practical benefits."
		}
		if emotion.Tone.Professional > 0.7 {
			emotionContext += " Use a professional, business-focused tone."
		}
		if emotion.Tone.Uncertain > 0.5 {
			emotionContext += " The client seems uncertain - provide reassurance and clear information."
		}
	}

	if ragContext == "" {
		ragContext = "No additional context available."
	}

	return fmt.Sprintf(`You are a sophisticated Commercial Real Estate Voice AI assistant specializing in helping clients find their ideal commercial spaces.

Your personality:
- Warm, professional, and knowledgeable about commercial real estate
- Expert at understanding client needs and emotions
- Skilled at matching properties to company culture and practical needs
- Always helpful and enthusiastic about finding the perfect space

%s

Current property recommendations and context:
%s

Additional knowledge context:
%s

Guidelines:
- Always prioritize understanding the client's business needs and company culture
- Reference specific properties from the recommendations when relevant
- Ask follow-up questions to better understand their needs
- Be conversational and natural
- Focus on how spaces will help their business succeed
- Offer virtual tours when appropriate

Remember: You're not just finding space, you're finding the RIGHT space for their business to thrive.`,
		emotionContext, propertyContext, ragContext)
}

// FormatPropertyContext renders the ranked matches and detected
// requirements as plain text for the chat model's system prompt.
func FormatPropertyContext(matches []model.PropertyMatch, req model.RequirementProfile) string {
	if len(matches) == 0 {
		return "I don't have any properties that exactly match your criteria right now, but let me search for alternatives."
	}

	var b strings.Builder
	b.WriteString("Based on your conversation, here are my top property recommendations:\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "\nProperty: %s\n", m.Address)
		fmt.Fprintf(&b, "- Size: %.0f square feet\n", m.SizeSqFt)
		fmt.Fprintf(&b, "- Floor: %d, Suite: %s\n", m.Floor, m.Suite)
		fmt.Fprintf(&b, "- Rent: $%.2f/SF/year ($%.2f/month)\n", m.RentPerSqFtYear, m.MonthlyRent)
		fmt.Fprintf(&b, "- Annual Rent: $%.2f\n", m.AnnualRent)
		fmt.Fprintf(&b, "- Contact: %s (%s)\n", m.ContactName, m.ContactEmail)
		if m.CultureScore > 0 {
			b.WriteString("- Culture Match: High\n")
		}
	}

	b.WriteString("\nRequirements detected:\n")
	fmt.Fprintf(&b, "- Size range: %s - %s SF\n", boundLabel(req.MinSizeSqFt), boundLabel(req.MaxSizeSqFt))
	fmt.Fprintf(&b, "- Max rent: $%s/SF/year\n", boundLabel(req.MaxRentPerSqFt))
	fmt.Fprintf(&b, "- Culture keywords: %s\n", strings.Join(req.CultureKeywords, ", "))
	fmt.Fprintf(&b, "- Preferred locations: %s\n", strings.Join(req.PreferredLocations, ", "))

	return b.String()
}

func boundLabel(v *float64) string {
	if v == nil {
		return "Any"
	}
	return fmt.Sprintf("%g", *v)
}

// composeFallback produces the templated answer used when no LLM is
// available. With matches it formats recommendations with tone-aware
// phrasing; without matches it routes on simple message keywords.
func (c *ResponseComposer) composeFallback(start time.Time, message string, matches []model.PropertyMatch, emotion *model.EmotionProfile) ComposeResult {
	var response string
	if len(matches) > 0 {
		response = formatFallbackRecommendations(matches, emotion)
	} else {
		response = keywordFallbackResponse(message)
		if emotion != nil && emotion.EnthusiasmLevel > 0.7 {
			response = strings.ReplaceAll(response, "Great!", "That's fantastic!")
			response = strings.ReplaceAll(response, "Perfect!", "I love your enthusiasm!")
		}
	}

	return ComposeResult{
		Response:       response,
		ProcessingTime: time.Since(start).Seconds(),
		TokensUsed:     0,
		Model:          fallbackModelName,
	}
}

func formatFallbackRecommendations(matches []model.PropertyMatch, emotion *model.EmotionProfile) string {
	var b strings.Builder

	switch {
	case emotion != nil && emotion.EnthusiasmLevel > 0.6:
		b.WriteString("I'm excited to help you! I found some perfect properties that match your needs:\n")
	case emotion != nil && emotion.Tone.Professional > 0.7:
		b.WriteString("Excellent. I've identified several professional properties that meet your requirements:\n")
	default:
		b.WriteString("Great! I found some excellent properties that would be perfect for you:\n")
	}

	for _, m := range matches {
		fmt.Fprintf(&b, "\n%s\n", m.Address)
		fmt.Fprintf(&b, "- %.0f square feet on Floor %d, Suite %s\n", m.SizeSqFt, m.Floor, m.Suite)
		fmt.Fprintf(&b, "- $%.2f/sq ft/year ($%.2f/month)\n", m.RentPerSqFtYear, m.MonthlyRent)
		fmt.Fprintf(&b, "- Annual rent: $%.2f\n", m.AnnualRent)
		fmt.Fprintf(&b, "- Contact: %s (%s)\n", m.ContactName, m.ContactEmail)
	}

	if emotion != nil && emotion.EnthusiasmLevel > 0.7 {
		b.WriteString("\nThese spaces would be fantastic for your team! Would you like me to arrange virtual tours right away?")
	} else {
		b.WriteString("\nWould you like more details about any of these properties or help scheduling a tour?")
	}

	return b.String()
}

func keywordFallbackResponse(message string) string {
	lower := strings.ToLower(message)

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("hello", "hi", "hey"):
		return "Hello! I'm excited to help you find the perfect commercial space for your business. Tell me about your company and what you're looking for!"
	case containsAny("office", "space", "looking"):
		return "Great! I'd love to help you find the ideal office space. Can you tell me more about your team size and budget?"
	case containsAny("people", "employees", "team"):
		return "Perfect! Based on your team size I can narrow down properties that fit. What's your budget per square foot, and do you have a preferred area?"
	case containsAny("budget", "cost", "price", "$"):
		return "I understand budget is important! I have properties ranging from $25-$42 per square foot annually. What's your target budget per square foot?"
	case containsAny("virtual", "tour", "see", "show"):
		return "Absolutely! I'd love to give you a virtual tour. Which of the recommended properties would you like to walk through first?"
	default:
		return "That's great information! To give you the best recommendations, could you tell me how many people will work in the space, your budget per square foot, and any preferred location?"
	}
}
