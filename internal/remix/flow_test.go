package remix

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"

	"trendremix/internal/gateway"
	"trendremix/internal/types"
)

var videoRef = &types.DeconstructedNote{
	ID:                "d_1",
	Platform:          types.PlatformDouyin,
	Type:              types.NoteTypeVideo,
	Title:             "三步搞定桌面收纳",
	VisualDescription: "快节奏剪辑，特写开场",
}

type cannedClient struct{ payload string }

func (c *cannedClient) GenerateJSON(context.Context, string, []types.Attachment, *genai.Schema) (string, error) {
	return c.payload, nil
}

func TestSplit(t *testing.T) {
	ts := time.UnixMilli(1756500000000)

	t.Run("video reference with script yields both records", func(t *testing.T) {
		rc := &types.RemixedContent{
			Title:            "新台灯开箱✨",
			Content:          "灯光一开氛围拉满",
			Tags:             []string{"台灯"},
			SuggestedVisuals: "暗房开灯慢镜头",
			Script: []types.ScriptScene{
				{SceneNo: 1, Visual: "暗房全景", Audio: "桌面少点什么"},
				{SceneNo: 2, Visual: "开灯特写", Audio: "一盏对的灯"},
			},
		}

		result := Split(videoRef, rc, ts)
		assert.Equal(t, "n_1756500000000", result.Note.ID)
		assert.Equal(t, "新台灯开箱✨", result.Note.Title)
		assert.Equal(t, types.PlatformDouyin, result.Note.FromPlatform)

		require.NotNil(t, result.Script)
		assert.Equal(t, "s_1756500000000", result.Script.ID)
		assert.Equal(t, result.Note.Timestamp, result.Script.Timestamp)
		assert.Equal(t, types.PlatformDouyin, result.Script.FromPlatform)
		assert.Len(t, result.Script.Scenes, 2)
	})

	t.Run("image reference never yields a script", func(t *testing.T) {
		imgRef := *videoRef
		imgRef.Type = types.NoteTypeImageText
		rc := &types.RemixedContent{
			Title:            "t",
			Content:          "c",
			SuggestedVisuals: "v",
			Script:           []types.ScriptScene{{SceneNo: 1}},
		}

		result := Split(&imgRef, rc, ts)
		assert.Nil(t, result.Script)
	})

	t.Run("video reference without scenes yields only a note", func(t *testing.T) {
		rc := &types.RemixedContent{Title: "t", Content: "c", SuggestedVisuals: "v"}
		result := Split(videoRef, rc, ts)
		assert.Nil(t, result.Script)
		assert.NotEmpty(t, result.Note.ID)
	})
}

func TestFlowRun(t *testing.T) {
	log := zaptest.NewLogger(t)

	t.Run("happy path", func(t *testing.T) {
		client := &cannedClient{payload: `{
			"title": "新台灯开箱✨",
			"content": "灯光一开氛围拉满",
			"tags": ["台灯"],
			"suggestedVisuals": "暗房开灯慢镜头",
			"script": [{"sceneNo": 1, "visual": "暗房全景", "audio": "桌面少点什么"}]
		}`}
		f := NewFlow(gateway.New(client, log), log)

		result, err := f.Run(context.Background(), videoRef, "推广我的新台灯")
		require.NoError(t, err)
		assert.Equal(t, "新台灯开箱✨", result.Note.Title)
		require.NotNil(t, result.Script)
		assert.Equal(t, result.Note.Timestamp, result.Script.Timestamp)
	})

	t.Run("blank topic rejected before the call", func(t *testing.T) {
		f := NewFlow(gateway.New(&cannedClient{}, log), log)
		_, err := f.Run(context.Background(), videoRef, "   ")
		require.Error(t, err)
		assert.Equal(t, types.KindValidation, types.KindOf(err))
	})
}
