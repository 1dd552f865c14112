package studio

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"trendremix/internal/deconstruct"
	"trendremix/internal/library"
	"trendremix/internal/types"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case trendsLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.trendItems = msg.items
		return m, nil

	case progressTickMsg:
		// Rearm only while the call is still in flight; the cosmetic
		// sequence stops with the flow on both success and failure.
		if m.stage != StageSubmit {
			return m, nil
		}
		if m.progressIdx < len(deconstruct.ProgressStages)-1 {
			m.progressIdx++
		}
		return m, progressTick()

	case deconDoneMsg:
		return m.handleDeconDone(msg)

	case remixDoneMsg:
		return m.handleRemixDone(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys that must win regardless of focus.
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.handleEsc()
	}

	// While a call is in flight the studio tab ignores input.
	if (m.stage == StageSubmit || m.stage == StageGenerate) && m.tab == TabStudio {
		return m, nil
	}

	if m.pickingFile || m.pickingRef {
		return m.handleOverlayKey(msg)
	}

	typing := m.tab == TabStudio &&
		((m.stage == StageCollect && m.input.Focused()) ||
			(m.stage == StageRemix && m.topic.Focused()))

	if !typing {
		switch key {
		case "tab":
			m.tab = (m.tab + 1) % 4
			return m, nil
		case "shift+tab":
			m.tab = (m.tab + 3) % 4
			return m, nil
		case "1", "2", "3", "4":
			m.tab = Tab(int(key[0] - '1'))
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	switch m.tab {
	case TabStudio:
		return m.handleStudioKey(msg)
	case TabNotes:
		return m.handleNotesKey(msg)
	case TabScripts:
		return m.handleScriptsKey(msg)
	}
	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch {
	case m.pickingFile:
		m.pickingFile = false
	case m.pickingRef:
		m.pickingRef = false
	case m.tab == TabStudio && m.stage == StageRemix:
		// Back out of the workshop; the reference selection clears.
		m.stage = StageCollect
		m.reference = nil
		m.topic.Reset()
		m.errMsg = ""
	case m.tab == TabStudio && m.input.Focused():
		m.input.Blur()
	case m.tab == TabStudio && m.topic.Focused():
		m.topic.Blur()
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pickingFile {
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)
		if ok, path := m.filePicker.DidSelectFile(msg); ok {
			m.pickingFile = false
			att, err := deconstruct.LoadAttachment(path)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			if err := m.deps.Deconstruct.AddAttachments([]types.Attachment{att}); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
		}
		return m, cmd
	}

	// Reference picker over the history list.
	switch msg.String() {
	case "enter":
		if item, ok := m.historyList.SelectedItem().(historyItem); ok {
			note := item.note
			m.reference = &note
			m.pickingRef = false
			m.stage = StageRemix
			m.errMsg = ""
			return m, m.topic.Focus()
		}
	case "x":
		if item, ok := m.historyList.SelectedItem().(historyItem); ok {
			if err := m.deps.Deconstruct.DeleteHistory(item.note.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.reloadLists()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m Model) handleStudioKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		switch m.stage {
		case StageCollect:
			return m.submitDeconstruct()
		case StageRemix:
			return m.submitRemix()
		}
		return m, nil
	case "ctrl+o":
		if m.stage == StageCollect {
			m.pickingFile = true
			return m, m.filePicker.Init()
		}
		return m, nil
	case "ctrl+h":
		if m.stage == StageCollect && len(m.deps.Deconstruct.History()) > 0 {
			m.pickingRef = true
		}
		return m, nil
	case "ctrl+d":
		if m.stage == StageCollect {
			n := len(m.deps.Deconstruct.Attachments())
			m.deps.Deconstruct.RemoveAttachment(n - 1)
		}
		return m, nil
	case "ctrl+n":
		m.xhsStatus = (m.xhsStatus + 1) % 3
		return m, nil
	case "ctrl+b":
		m.douyinStatus = (m.douyinStatus + 1) % 3
		return m, nil
	case "enter", "i":
		if m.stage == StageCollect && !m.input.Focused() {
			return m, m.input.Focus()
		}
		if m.stage == StageRemix && !m.topic.Focused() {
			return m, m.topic.Focus()
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to whichever textarea is active.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.tab != TabStudio {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.stage {
	case StageCollect:
		m.input, cmd = m.input.Update(msg)
		m.deps.Deconstruct.SetText(m.input.Value())
	case StageRemix:
		m.topic, cmd = m.topic.Update(msg)
	}
	return m, cmd
}

func (m Model) submitDeconstruct() (tea.Model, tea.Cmd) {
	m.deps.Deconstruct.SetText(m.input.Value())
	if err := m.deps.Deconstruct.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.stage = StageSubmit
	m.errMsg = ""
	m.progressIdx = 0
	flow := m.deps.Deconstruct
	ctx := m.ctx
	run := func() tea.Msg {
		note, err := flow.Run(ctx)
		return deconDoneMsg{note: note, err: err}
	}
	return m, tea.Batch(run, progressTick(), m.spin.Tick)
}

func (m Model) handleDeconDone(msg deconDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Input is retained by the flow; back to collecting for a retry.
		m.stage = StageCollect
		m.errMsg = msg.err.Error()
		m.deps.Log.Warn("deconstruction failed", zap.Error(msg.err))
		return m, nil
	}

	m.reference = msg.note
	m.stage = StageRemix
	m.status = "拆解完成！"
	m.errMsg = ""
	m.input.Reset()
	m.reloadLists()
	return m, m.topic.Focus()
}

func (m Model) submitRemix() (tea.Model, tea.Cmd) {
	topic := m.topic.Value()
	m.stage = StageGenerate
	m.errMsg = ""
	flow := m.deps.Remix
	ref := m.reference
	ctx := m.ctx
	run := func() tea.Msg {
		result, err := flow.Run(ctx, ref, topic)
		return remixDoneMsg{result: result, err: err}
	}
	return m, tea.Batch(run, m.spin.Tick)
}

func (m Model) handleRemixDone(msg remixDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Topic is retained for a retry.
		m.stage = StageRemix
		m.errMsg = msg.err.Error()
		m.deps.Log.Warn("remix failed", zap.Error(msg.err))
		return m, nil
	}

	if err := m.deps.Notes.Prepend(msg.result.Note); err != nil {
		m.stage = StageRemix
		m.errMsg = err.Error()
		return m, nil
	}
	if msg.result.Script != nil {
		if err := m.deps.Scripts.Prepend(*msg.result.Script); err != nil {
			m.errMsg = err.Error()
		}
	}

	m.reference = nil
	m.topic.Reset()
	m.stage = StageCollect
	m.status = "已保存到笔记库"
	m.reloadLists()
	m.tab = TabNotes
	m.renderNoteDetail()
	return m, nil
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.noteList.SelectedItem().(noteItem); ok {
			m.deps.Notes.Select(item.note.ID)
			m.renderNoteDetail()
		}
		return m, nil
	case "x":
		if item, ok := m.noteList.SelectedItem().(noteItem); ok {
			if err := m.deps.Notes.Delete(item.note.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.reloadLists()
			m.renderNoteDetail()
		}
		return m, nil
	case "K":
		return m.moveNote(library.Up)
	case "J":
		return m.moveNote(library.Down)
	}
	var cmd tea.Cmd
	m.noteList, cmd = m.noteList.Update(msg)
	return m, cmd
}

func (m Model) moveNote(dir library.Direction) (tea.Model, tea.Cmd) {
	if item, ok := m.noteList.SelectedItem().(noteItem); ok {
		if err := m.deps.Notes.Move(item.note.ID, dir); err != nil {
			m.errMsg = err.Error()
		}
		m.reloadLists()
	}
	return m, nil
}

func (m Model) handleScriptsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.scriptList.SelectedItem().(scriptItem); ok {
			m.deps.Scripts.Select(item.script.ID)
			m.renderScriptDetail()
		}
		return m, nil
	case "x":
		if item, ok := m.scriptList.SelectedItem().(scriptItem); ok {
			if err := m.deps.Scripts.Delete(item.script.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.reloadLists()
			m.renderScriptDetail()
		}
		return m, nil
	case "K":
		return m.moveScript(library.Up)
	case "J":
		return m.moveScript(library.Down)
	}
	var cmd tea.Cmd
	m.scriptList, cmd = m.scriptList.Update(msg)
	return m, cmd
}

func (m Model) moveScript(dir library.Direction) (tea.Model, tea.Cmd) {
	if item, ok := m.scriptList.SelectedItem().(scriptItem); ok {
		if err := m.deps.Scripts.Move(item.script.ID, dir); err != nil {
			m.errMsg = err.Error()
		}
		m.reloadLists()
	}
	return m, nil
}

func progressTick() tea.Cmd {
	return tea.Tick(deconstruct.StageInterval, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
