package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"trendremix/internal/types"
)

// stubClient returns a canned payload and records the last request.
type stubClient struct {
	payload     string
	err         error
	lastPrompt  string
	lastAttach  []types.Attachment
	lastSchema  *genai.Schema
	invocations int
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, attachments []types.Attachment, schema *genai.Schema) (string, error) {
	s.invocations++
	s.lastPrompt = prompt
	s.lastAttach = attachments
	s.lastSchema = schema
	return s.payload, s.err
}

func TestGatewayDeconstruct(t *testing.T) {
	t.Run("rejects empty input before calling the model", func(t *testing.T) {
		stub := &stubClient{}
		g := New(stub, nil)
		_, err := g.Deconstruct(context.Background(), "  \n ", nil)
		require.Error(t, err)
		assert.Equal(t, types.KindValidation, types.KindOf(err))
		assert.Zero(t, stub.invocations)
	})

	t.Run("text only produces a note with identity", func(t *testing.T) {
		stub := &stubClient{payload: validDeconstruction}
		g := New(stub, nil)

		note, err := g.Deconstruct(context.Background(), "参考文案", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, stub.invocations)
		assert.Contains(t, stub.lastPrompt, "参考文案")
		assert.NotEmpty(t, note.ID)
		assert.NotZero(t, note.Timestamp)
		assert.Equal(t, types.PlatformXiaohongshu, note.Platform)
		assert.Equal(t, types.NoteTypeImageText, note.Type)
		assert.Empty(t, note.OriginalMedia)
	})

	t.Run("attachments are forwarded", func(t *testing.T) {
		stub := &stubClient{payload: validDeconstruction}
		g := New(stub, nil)

		atts := []types.Attachment{{Name: "a.jpg", MIMEType: "image/jpeg", Data: []byte{1}}}
		_, err := g.Deconstruct(context.Background(), "", atts)
		require.NoError(t, err)
		require.Len(t, stub.lastAttach, 1)
		assert.Equal(t, "a.jpg", stub.lastAttach[0].Name)
		require.NotNil(t, stub.lastSchema)
		assert.Contains(t, stub.lastSchema.Required, "visualDescription")
	})

	t.Run("unknown platform string maps to the fallback", func(t *testing.T) {
		stub := &stubClient{payload: `{"platform":"B站","type":"图文","title":"t","contentBody":"b","titleSuggestions":["a"],"remixIdea":"r"}`}
		g := New(stub, nil)

		note, err := g.Deconstruct(context.Background(), "x", nil)
		require.NoError(t, err)
		assert.Equal(t, types.PlatformUnknown, note.Platform)
	})
}

func TestGatewayRemix(t *testing.T) {
	ref := &types.DeconstructedNote{
		ID:                "d_1",
		Platform:          types.PlatformDouyin,
		Type:              types.NoteTypeVideo,
		Title:             "三步搞定桌面收纳",
		VisualDescription: "快节奏剪辑",
	}

	t.Run("nil reference rejected", func(t *testing.T) {
		g := New(&stubClient{}, nil)
		_, err := g.Remix(context.Background(), nil, "新台灯")
		require.Error(t, err)
		assert.Equal(t, types.KindValidation, types.KindOf(err))
	})

	t.Run("blank topic rejected", func(t *testing.T) {
		g := New(&stubClient{}, nil)
		_, err := g.Remix(context.Background(), ref, "  ")
		require.Error(t, err)
		assert.Equal(t, types.KindValidation, types.KindOf(err))
	})

	t.Run("video reference asks for a script", func(t *testing.T) {
		stub := &stubClient{payload: `{"title":"t","content":"c","suggestedVisuals":"v"}`}
		g := New(stub, nil)

		_, err := g.Remix(context.Background(), ref, "推广我的新台灯")
		require.NoError(t, err)
		assert.Contains(t, stub.lastPrompt, "拍摄脚本")
		assert.Contains(t, stub.lastPrompt, ref.Title)
		assert.Contains(t, stub.lastPrompt, "推广我的新台灯")
	})

	t.Run("image reference omits the script clause", func(t *testing.T) {
		imgRef := *ref
		imgRef.Type = types.NoteTypeImageText
		stub := &stubClient{payload: `{"title":"t","content":"c","suggestedVisuals":"v"}`}
		g := New(stub, nil)

		_, err := g.Remix(context.Background(), &imgRef, "新主题")
		require.NoError(t, err)
		assert.NotContains(t, stub.lastPrompt, "以及一份拍摄脚本")
	})

	t.Run("transport failure surfaces unchanged", func(t *testing.T) {
		stub := &stubClient{err: types.Transportf(assert.AnError, "call failed")}
		g := New(stub, nil)

		_, err := g.Remix(context.Background(), ref, "主题")
		require.Error(t, err)
		assert.Equal(t, types.KindTransport, types.KindOf(err))
	})
}
