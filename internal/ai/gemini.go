package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"tripforge/internal/backoff"
)

// MaxTransportAttempts bounds retries of the raw model call. Parse and
// validation retries are counted separately by the orchestrator.
const MaxTransportAttempts = 5

const DefaultModel = "gemini-2.0-flash"

var (
	ErrBlocked      = errors.New("gemini: prompt blocked by safety filter")
	ErrNoCandidates = errors.New("gemini: no response candidates")
	ErrEmptyText    = errors.New("gemini: response contains no text parts")
)

// GeminiClient implements TextGenerator against Google's Gemini models, with
// exponential backoff across transport failures, explicit content blocks, and
// malformed responses.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger

	// call performs one model invocation; tests replace it to script
	// responses. wait is backoff.Sleep in production.
	call func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
	wait func(ctx context.Context, d time.Duration) error
}

// NewGeminiClient initializes a Gemini client. apiKey comes from the
// environment; modelName falls back to DefaultModel when empty.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	model := client.GenerativeModel(modelName)

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Creative but structured output.
	model.SetTemperature(0.4)

	model.SafetySettings = []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockMediumAndAbove,
		},
	}

	c := &GeminiClient{client: client, model: model, log: log, wait: backoff.Sleep}
	c.call = func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		return c.model.GenerateContent(ctx, genai.Text(prompt))
	}
	return c, nil
}

// Close cleans up the underlying client resources.
func (c *GeminiClient) Close() {
	c.client.Close()
}

// Generate sends the prompt and returns the text of the first candidate.
// Transport errors, safety blocks, and empty responses are all retried with
// exponential backoff until MaxTransportAttempts, then returned to the
// caller as terminal.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < MaxTransportAttempts; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, backoff.Delay(attempt-1)); err != nil {
				return "", err
			}
		}

		text, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		lastErr = err
		c.log.Warn("gemini call failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", MaxTransportAttempts),
			zap.Error(err))
	}
	return "", fmt.Errorf("gemini: all %d attempts failed: %w", MaxTransportAttempts, lastErr)
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.call(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: %v", ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoCandidates
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyText
	}
	return sb.String(), nil
}
