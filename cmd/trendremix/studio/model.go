// Package studio is the interactive TUI: four tabs covering the trend board,
// the deconstruct/remix workshop, and the notes and scripts libraries.
// The files split as:
//   - model.go: types, construction, Init
//   - update.go: the event loop
//   - view.go: rendering
package studio

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"trendremix/cmd/trendremix/ui"
	"trendremix/internal/deconstruct"
	"trendremix/internal/library"
	"trendremix/internal/remix"
	"trendremix/internal/trends"
	"trendremix/internal/types"
)

// Tab identifies the active section.
type Tab int

const (
	TabTrends Tab = iota
	TabStudio
	TabNotes
	TabScripts
)

// Stage is the studio tab's state machine.
type Stage int

const (
	StageCollect Stage = iota // editing text / attachments
	StageSubmit               // deconstruction call in flight
	StageRemix                // editing the remix topic
	StageGenerate             // remix call in flight
)

// ConnStatus models the simulated platform-connection panel. Pure UI state;
// no real authentication happens.
type ConnStatus int

const (
	ConnIdle ConnStatus = iota
	ConnVisiting
	ConnConnected
)

func (c ConnStatus) String() string {
	switch c {
	case ConnVisiting:
		return "待确认"
	case ConnConnected:
		return "已确认登录"
	default:
		return "未连接"
	}
}

// Deps carries the wired application components into the studio.
type Deps struct {
	Deconstruct *deconstruct.Flow
	Remix       *remix.Flow
	Notes       *library.Collection[types.GeneratedNote]
	Scripts     *library.Collection[types.GeneratedScript]
	Trends      trends.Source
	Log         *zap.Logger
}

// messages

type deconDoneMsg struct {
	note *types.DeconstructedNote
	err  error
}

type remixDoneMsg struct {
	result *remix.Result
	err    error
}

type progressTickMsg struct{}

type trendsLoadedMsg struct {
	items []types.TrendItem
	err   error
}

// noteItem adapts a GeneratedNote for bubbles/list.
type noteItem struct{ note types.GeneratedNote }

func (i noteItem) Title() string { return i.note.Title }
func (i noteItem) Description() string {
	return fmt.Sprintf("[%s] %s", i.note.FromPlatform, time.UnixMilli(i.note.Timestamp).Format("2006-01-02"))
}
func (i noteItem) FilterValue() string { return i.note.Title }

// scriptItem adapts a GeneratedScript for bubbles/list.
type scriptItem struct{ script types.GeneratedScript }

func (i scriptItem) Title() string { return i.script.Title }
func (i scriptItem) Description() string {
	return fmt.Sprintf("[%s] %d 个分镜", i.script.FromPlatform, len(i.script.Scenes))
}
func (i scriptItem) FilterValue() string { return i.script.Title }

// historyItem adapts a history entry for the reference picker.
type historyItem struct{ note types.DeconstructedNote }

func (i historyItem) Title() string { return i.note.Title }
func (i historyItem) Description() string {
	return fmt.Sprintf("[%s / %s] %s", i.note.Platform, i.note.Type,
		time.UnixMilli(i.note.Timestamp).Format("2006-01-02"))
}
func (i historyItem) FilterValue() string { return i.note.Title }

// Model is the top-level bubbletea model.
type Model struct {
	ctx  context.Context
	deps Deps

	tab   Tab
	stage Stage

	// studio tab
	input        textarea.Model
	topic        textarea.Model
	filePicker   filepicker.Model
	pickingFile  bool
	historyList  list.Model
	pickingRef   bool
	reference    *types.DeconstructedNote
	progressBar  progress.Model
	progressIdx  int
	spin         spinner.Model
	xhsStatus    ConnStatus
	douyinStatus ConnStatus

	// libraries
	noteList   list.Model
	scriptList list.Model
	detail     viewport.Model
	renderer   *glamour.TermRenderer

	// trend board
	trendItems []types.TrendItem

	styles ui.Styles
	status string
	errMsg string
	width  int
	height int
	ready  bool
}

// New builds the studio model.
func New(ctx context.Context, deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	input := textarea.New()
	input.Placeholder = "粘贴文案，或粘贴 抖音/小红书 分享链接..."
	input.CharLimit = 0
	input.Focus()

	topic := textarea.New()
	topic.Placeholder = "输入你的新主题，例如：推广我的新台灯"
	topic.CharLimit = 0

	fp := filepicker.New()
	fp.AllowedTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".mov", ".webm"}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	renderer, _ := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(76))

	m := Model{
		ctx:         ctx,
		deps:        deps,
		tab:         TabTrends,
		stage:       StageCollect,
		input:       input,
		topic:       topic,
		filePicker:  fp,
		progressBar: progress.New(progress.WithDefaultGradient()),
		spin:        sp,
		noteList:    newRecordList("笔记文案库"),
		scriptList:  newRecordList("创作拍摄脚本"),
		historyList: newRecordList("历史记录"),
		detail:      viewport.New(0, 0),
		renderer:    renderer,
		styles:      ui.DefaultStyles(),
	}
	m.reloadLists()
	return m
}

func newRecordList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	return l
}

// reloadLists rebuilds the list items from the collections.
func (m *Model) reloadLists() {
	notes := m.deps.Notes.Items()
	noteItems := make([]list.Item, len(notes))
	for i, n := range notes {
		noteItems[i] = noteItem{note: n}
	}
	m.noteList.SetItems(noteItems)

	scripts := m.deps.Scripts.Items()
	scriptItems := make([]list.Item, len(scripts))
	for i, s := range scripts {
		scriptItems[i] = scriptItem{script: s}
	}
	m.scriptList.SetItems(scriptItems)

	history := m.deps.Deconstruct.History()
	historyItems := make([]list.Item, len(history))
	for i, h := range history {
		historyItems[i] = historyItem{note: h}
	}
	m.historyList.SetItems(historyItems)
}

// Init loads the trend board.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadTrends())
}

func (m Model) loadTrends() tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Trends.Trends(m.ctx)
		return trendsLoadedMsg{items: items, err: err}
	}
}

// Run starts the studio program and blocks until it exits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
