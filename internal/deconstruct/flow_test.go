package deconstruct

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"

	"trendremix/internal/gateway"
	"trendremix/internal/store"
	"trendremix/internal/types"
)

const cannedBreakdown = `{
	"platform": "抖音",
	"type": "视频",
	"title": "三步搞定桌面收纳",
	"contentBody": "第一步清空\n第二步分类\n第三步留白",
	"visualDescription": "快节奏剪辑，特写开场",
	"tags": ["收纳"],
	"titleSuggestions": ["桌面乱到崩溃？", "收纳师三步法", "十分钟清爽桌面"],
	"remixIdea": "任意小空间整理都适用",
	"spokenContent": "你的桌面是不是也这样",
	"videoScript": [{"sceneNo": 1, "visual": "凌乱桌面", "audio": "你的桌面是不是也这样"}]
}`

type plannedClient struct {
	payload string
	err     error
	calls   int
}

func (c *plannedClient) GenerateJSON(context.Context, string, []types.Attachment, *genai.Schema) (string, error) {
	c.calls++
	return c.payload, c.err
}

func newTestFlow(t *testing.T, client gateway.ModelClient, mediaDir string) *Flow {
	t.Helper()
	log := zaptest.NewLogger(t)
	st, err := store.Open(filepath.Join(t.TempDir(), "trendremix.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	f, err := NewFlow(gateway.New(client, log), st, mediaDir, log)
	require.NoError(t, err)
	return f
}

func TestFlowAttachments(t *testing.T) {
	t.Run("oversize file rejects the whole batch", func(t *testing.T) {
		f := newTestFlow(t, &plannedClient{}, "")
		require.NoError(t, f.AddAttachments([]types.Attachment{
			{Name: "ok.jpg", Data: make([]byte, 16)},
		}))

		err := f.AddAttachments([]types.Attachment{
			{Name: "fine.png", Data: make([]byte, 16)},
			{Name: "huge.mp4", Data: make([]byte, MaxAttachmentBytes+1)},
		})
		require.Error(t, err)
		assert.Equal(t, types.KindValidation, types.KindOf(err))
		assert.Contains(t, err.Error(), "huge.mp4")
		require.Len(t, f.Attachments(), 1)
		assert.Equal(t, "ok.jpg", f.Attachments()[0].Name)
	})

	t.Run("overflow beyond the cap is dropped silently", func(t *testing.T) {
		f := newTestFlow(t, &plannedClient{}, "")
		batch := make([]types.Attachment, MaxAttachments+3)
		for i := range batch {
			batch[i] = types.Attachment{Name: "a.jpg", Data: []byte{1}}
		}
		require.NoError(t, f.AddAttachments(batch))
		assert.Len(t, f.Attachments(), MaxAttachments)
	})

	t.Run("remove by index", func(t *testing.T) {
		f := newTestFlow(t, &plannedClient{}, "")
		require.NoError(t, f.AddAttachments([]types.Attachment{
			{Name: "a.jpg"}, {Name: "b.jpg"},
		}))
		f.RemoveAttachment(0)
		require.Len(t, f.Attachments(), 1)
		assert.Equal(t, "b.jpg", f.Attachments()[0].Name)

		f.RemoveAttachment(9)
		assert.Len(t, f.Attachments(), 1)
	})
}

func TestFlowValidate(t *testing.T) {
	f := newTestFlow(t, &plannedClient{}, "")

	err := f.Validate()
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, types.KindOf(err))

	f.SetText("  \n ")
	assert.Error(t, f.Validate())

	f.SetText("一段参考文案")
	assert.NoError(t, f.Validate())

	f.SetText("")
	require.NoError(t, f.AddAttachments([]types.Attachment{{Name: "a.jpg", Data: []byte{1}}}))
	assert.NoError(t, f.Validate())
}

func TestFlowDetectedLink(t *testing.T) {
	f := newTestFlow(t, &plannedClient{}, "")
	assert.Empty(t, f.DetectedLink())

	f.SetText("看看这个 https://v.douyin.com/abc123/ 复制打开")
	assert.Equal(t, "https://v.douyin.com/abc123/", f.DetectedLink())
}

func TestFlowRun(t *testing.T) {
	t.Run("success prepends history and clears input", func(t *testing.T) {
		client := &plannedClient{payload: cannedBreakdown}
		f := newTestFlow(t, client, "")
		f.SetText("参考文案")

		note, err := f.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "三步搞定桌面收纳", note.Title)
		assert.True(t, note.IsVideo())

		require.Len(t, f.History(), 1)
		assert.Equal(t, note.ID, f.History()[0].ID)
		assert.Empty(t, f.Text())
		assert.Empty(t, f.Attachments())
	})

	t.Run("newest entry goes first", func(t *testing.T) {
		client := &plannedClient{payload: cannedBreakdown}
		f := newTestFlow(t, client, "")

		f.SetText("第一条")
		first, err := f.Run(context.Background())
		require.NoError(t, err)

		f.SetText("第二条")
		second, err := f.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, f.History(), 2)
		assert.Equal(t, second.ID, f.History()[0].ID)
		assert.Equal(t, first.ID, f.History()[1].ID)
	})

	t.Run("failure retains the input", func(t *testing.T) {
		client := &plannedClient{err: types.Transportf(assert.AnError, "call failed")}
		f := newTestFlow(t, client, "")
		f.SetText("要重试的文案")
		require.NoError(t, f.AddAttachments([]types.Attachment{{Name: "a.jpg", Data: []byte{1}}}))

		_, err := f.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, types.KindTransport, types.KindOf(err))
		assert.Equal(t, "要重试的文案", f.Text())
		assert.Len(t, f.Attachments(), 1)
		assert.Empty(t, f.History())
	})

	t.Run("media copies are written under the note id", func(t *testing.T) {
		mediaDir := t.TempDir()
		client := &plannedClient{payload: cannedBreakdown}
		f := newTestFlow(t, client, mediaDir)
		require.NoError(t, f.AddAttachments([]types.Attachment{
			{Name: "ref.jpg", MIMEType: "image/jpeg", Data: []byte("jpegdata")},
		}))

		note, err := f.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, note.OriginalMedia, 1)
		assert.Equal(t, filepath.Join(mediaDir, note.ID), filepath.Dir(note.OriginalMedia[0]))
		assert.Equal(t, ".jpg", filepath.Ext(note.OriginalMedia[0]))

		data, err := os.ReadFile(note.OriginalMedia[0])
		require.NoError(t, err)
		assert.Equal(t, []byte("jpegdata"), data)
	})
}

func TestFlowHistoryOps(t *testing.T) {
	client := &plannedClient{payload: cannedBreakdown}
	f := newTestFlow(t, client, "")

	f.SetText("a")
	first, err := f.Run(context.Background())
	require.NoError(t, err)
	f.SetText("b")
	second, err := f.Run(context.Background())
	require.NoError(t, err)

	t.Run("find", func(t *testing.T) {
		got, ok := f.FindHistory(first.ID)
		require.True(t, ok)
		assert.Equal(t, first.ID, got.ID)

		_, ok = f.FindHistory("d_missing")
		assert.False(t, ok)
	})

	t.Run("delete persists", func(t *testing.T) {
		require.NoError(t, f.DeleteHistory(second.ID))
		require.Len(t, f.History(), 1)

		require.NoError(t, f.DeleteHistory("d_missing"))
		assert.Len(t, f.History(), 1)
	})
}
