// Package gateway speaks to the generative model. It owns the two prompts
// (deconstruct, remix), their response schemas, and the decode/validate layer
// that turns raw model JSON into domain records. The transport is hidden
// behind ModelClient so the contract logic can be tested against canned
// payloads.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"trendremix/internal/types"
)

// DefaultModel is the generation model used when the config names none.
const DefaultModel = "gemini-3-pro-preview"

// ModelClient issues one structured-output generation call: a prompt plus
// inline media parts in, schema-constrained JSON text out. Implementations
// must treat an empty response body as an error.
type ModelClient interface {
	GenerateJSON(ctx context.Context, prompt string, attachments []types.Attachment, schema *genai.Schema) (string, error)
}

// GeminiClient is the production ModelClient backed by the Gemini API.
// It is constructed once at startup and injected; it is never re-created
// per call.
type GeminiClient struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGeminiClient builds a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey, model string, log *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model, log: log}, nil
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string { return c.model }

// GenerateJSON sends a single generation request with the given response
// schema and returns the raw JSON text. Attachments travel as inline binary
// parts tagged with their media type. One attempt; no retry.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, attachments []types.Attachment, schema *genai.Schema) (string, error) {
	start := time.Now()

	parts := make([]*genai.Part, 0, len(attachments)+1)
	parts = append(parts, genai.NewPartFromText(prompt))
	for _, att := range attachments {
		parts = append(parts, genai.NewPartFromBytes(att.Data, att.MIMEType))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		c.log.Warn("generation request failed",
			zap.String("model", c.model),
			zap.Int("attachments", len(attachments)),
			zap.Error(err))
		return "", types.Transportf(err, "generation request failed")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", types.Schemaf("model returned an empty response")
	}

	c.log.Debug("generation completed",
		zap.String("model", c.model),
		zap.Int("attachments", len(attachments)),
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
