package studio

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"

	"trendremix/internal/deconstruct"
	"trendremix/internal/gateway"
	"trendremix/internal/library"
	"trendremix/internal/remix"
	"trendremix/internal/store"
	"trendremix/internal/trends"
	"trendremix/internal/types"
)

type fixedClient struct{ payload string }

func (c *fixedClient) GenerateJSON(context.Context, string, []types.Attachment, *genai.Schema) (string, error) {
	return c.payload, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	log := zaptest.NewLogger(t)
	st, err := store.Open(filepath.Join(t.TempDir(), "trendremix.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	gw := gateway.New(&fixedClient{}, log)
	flow, err := deconstruct.NewFlow(gw, st, "", log)
	require.NoError(t, err)
	src, err := trends.NewStaticSource()
	require.NoError(t, err)

	m := New(context.Background(), Deps{
		Deconstruct: flow,
		Remix:       remix.NewFlow(gw, log),
		Notes:       library.New(nil, st.SaveNotes),
		Scripts:     library.New(nil, st.SaveScripts),
		Trends:      src,
		Log:         log,
	})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func TestModelTabSwitching(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, TabTrends, m.tab)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	m = next.(Model)
	assert.Equal(t, TabNotes, m.tab)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, TabScripts, m.tab)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, TabTrends, m.tab)
}

func TestModelDeconstructionLifecycle(t *testing.T) {
	m := newTestModel(t)
	m.tab = TabStudio
	m.stage = StageSubmit

	t.Run("failure returns to collecting with the message", func(t *testing.T) {
		next, _ := m.Update(deconDoneMsg{err: types.Validationf("素材无效")})
		got := next.(Model)
		assert.Equal(t, StageCollect, got.stage)
		assert.Contains(t, got.errMsg, "素材无效")
	})

	t.Run("success moves to the remix stage", func(t *testing.T) {
		note := &types.DeconstructedNote{ID: "d_1", Title: "参考", Type: types.NoteTypeVideo}
		next, _ := m.Update(deconDoneMsg{note: note})
		got := next.(Model)
		assert.Equal(t, StageRemix, got.stage)
		require.NotNil(t, got.reference)
		assert.Equal(t, "d_1", got.reference.ID)
	})
}

func TestModelRemixPersistsAndJumps(t *testing.T) {
	m := newTestModel(t)
	m.tab = TabStudio
	m.stage = StageGenerate
	m.reference = &types.DeconstructedNote{ID: "d_1", Type: types.NoteTypeVideo, Platform: types.PlatformDouyin}

	result := &remix.Result{
		Note:   types.GeneratedNote{ID: "n_1", Title: "新笔记", FromPlatform: types.PlatformDouyin},
		Script: &types.GeneratedScript{ID: "s_1", Title: "新脚本", FromPlatform: types.PlatformDouyin},
	}
	next, _ := m.Update(remixDoneMsg{result: result})
	got := next.(Model)

	assert.Equal(t, TabNotes, got.tab)
	assert.Equal(t, StageCollect, got.stage)
	assert.Nil(t, got.reference)
	assert.Equal(t, 1, got.deps.Notes.Len())
	assert.Equal(t, 1, got.deps.Scripts.Len())
	assert.Equal(t, "n_1", got.deps.Notes.SelectedID())
}

func TestModelProgressStopsAfterFlight(t *testing.T) {
	m := newTestModel(t)
	m.tab = TabStudio

	m.stage = StageSubmit
	next, cmd := m.Update(progressTickMsg{})
	got := next.(Model)
	assert.Equal(t, 1, got.progressIdx)
	assert.NotNil(t, cmd)

	got.stage = StageCollect
	_, cmd = got.Update(progressTickMsg{})
	assert.Nil(t, cmd)
}

func TestModelViewRenders(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(trendsLoadedMsg{items: []types.TrendItem{
		{Rank: 1, Title: "热点", HotScore: 10000, Platform: types.PlatformDouyin, Summary: "摘要", SearchURL: "https://www.baidu.com/s?wd=x"},
	}})
	m = next.(Model)

	out := m.View()
	assert.Contains(t, out, "热点情报箱")
	assert.Contains(t, out, "热点")

	m.tab = TabStudio
	assert.Contains(t, m.View(), "拆解器")
}
