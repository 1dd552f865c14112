package gateway

import (
	"context"

	"google.golang.org/genai"

	"trendremix/internal/types"
)

// unconfiguredClient stands in when no API key is available, so the rest of
// the application (library browsing, trend board) still works and model
// calls fail with a clear message instead of a nil dereference.
type unconfiguredClient struct{}

// NewUnconfiguredClient returns a ModelClient that rejects every call.
func NewUnconfiguredClient() ModelClient { return unconfiguredClient{} }

func (unconfiguredClient) GenerateJSON(context.Context, string, []types.Attachment, *genai.Schema) (string, error) {
	return "", types.Validationf("no Gemini API key configured: set GEMINI_API_KEY or api_key in the config file")
}
