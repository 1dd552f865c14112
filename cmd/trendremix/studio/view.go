package studio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"trendremix/internal/deconstruct"
)

// layout resizes the nested components after a window size change.
func (m *Model) layout() {
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	bodyHeight := m.height - 8
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	m.input.SetWidth(contentWidth)
	m.input.SetHeight(6)
	m.topic.SetWidth(contentWidth)
	m.topic.SetHeight(4)

	listWidth := m.width / 3
	if listWidth < 24 {
		listWidth = 24
	}
	m.noteList.SetSize(listWidth, bodyHeight)
	m.scriptList.SetSize(listWidth, bodyHeight)
	m.historyList.SetSize(contentWidth, bodyHeight-2)
	m.filePicker.Height = bodyHeight - 2

	m.detail.Width = m.width - listWidth - 6
	m.detail.Height = bodyHeight
	m.progressBar.Width = contentWidth - 8
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.pickingFile:
		b.WriteString(m.styles.Label.Render("选择图片或视频") + "\n\n")
		b.WriteString(m.filePicker.View())
	case m.pickingRef:
		b.WriteString(m.styles.Label.Render("选择参考笔记 (enter 选择, x 删除, esc 返回)") + "\n\n")
		b.WriteString(m.historyList.View())
	default:
		switch m.tab {
		case TabTrends:
			b.WriteString(m.renderTrends())
		case TabStudio:
			b.WriteString(m.renderStudio())
		case TabNotes:
			b.WriteString(m.renderLibrary(m.noteList))
		case TabScripts:
			b.WriteString(m.renderLibrary(m.scriptList))
		}
	}

	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.errMsg))
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render("✓ " + m.status))
	}
	b.WriteString("\n" + m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	labels := []string{
		"热点看板",
		"拆解与改写",
		fmt.Sprintf("我的笔记 (%d)", m.deps.Notes.Len()),
		fmt.Sprintf("我的脚本 (%d)", m.deps.Scripts.Len()),
	}
	tabs := make([]string, len(labels))
	for i, label := range labels {
		style := m.styles.TabIdle
		if Tab(i) == m.tab {
			style = m.styles.TabActive
		}
		tabs[i] = style.Render(fmt.Sprintf("%d %s", i+1, label))
	}
	title := m.styles.Title.Render(" TrendRemix ")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Join(tabs, " "))
}

func (m Model) renderTrends() string {
	if len(m.trendItems) == 0 {
		return m.styles.Muted.Render("加载热点数据中...")
	}
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("热点情报箱") + "\n\n")
	for _, t := range m.trendItems {
		b.WriteString(fmt.Sprintf("%s %s  %s  %s\n",
			m.styles.Badge.Render(fmt.Sprintf("#%d", t.Rank)),
			m.styles.Label.Render(t.Title),
			m.styles.Platform.Render("["+string(t.Platform)+"]"),
			m.styles.Muted.Render(fmt.Sprintf("热度 %d", t.HotScore))))
		b.WriteString("   " + m.styles.Muted.Render(t.Summary) + "\n")
		b.WriteString("   " + m.styles.Hint.Render(t.SearchURL) + "\n\n")
	}
	return b.String()
}

func (m Model) renderStudio() string {
	switch m.stage {
	case StageSubmit:
		return m.renderSubmitting()
	case StageRemix, StageGenerate:
		return m.renderWorkshop()
	default:
		return m.renderCollect()
	}
}

func (m Model) renderCollect() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("全能爆款内容拆解器") + "\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(
		"上传视频可深度提取口播语音与画面花字。视频限 %dMB / %ds。",
		deconstruct.MaxAttachmentBytes>>20, deconstruct.MaxVideoSeconds)) + "\n\n")

	b.WriteString(fmt.Sprintf("%s 小红书 %s   抖音 %s\n\n",
		m.styles.Label.Render("平台连接:"),
		m.renderConn(m.xhsStatus),
		m.renderConn(m.douyinStatus)))

	atts := m.deps.Deconstruct.Attachments()
	if len(atts) == 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("素材: 无 (ctrl+o 添加, 最多 %d 个)", deconstruct.MaxAttachments)) + "\n")
	} else {
		names := make([]string, len(atts))
		for i, a := range atts {
			names[i] = fmt.Sprintf("%s (%.1fMB)", a.Name, float64(a.Size())/(1<<20))
		}
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("素材 %d/%d: ", len(atts), deconstruct.MaxAttachments)) +
			strings.Join(names, ", ") + "\n")
	}
	b.WriteString("\n" + m.input.View() + "\n")

	if link := m.deps.Deconstruct.DetectedLink(); link != "" {
		b.WriteString(m.styles.Hint.Render("检测到链接: "+link) + "\n")
	}
	if n := len(m.deps.Deconstruct.History()); n > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("历史记录 %d 条 (ctrl+h 选择参考)", n)) + "\n")
	}
	return b.String()
}

func (m Model) renderConn(s ConnStatus) string {
	if s == ConnConnected {
		return m.styles.Success.Render(s.String())
	}
	return m.styles.Muted.Render(s.String())
}

func (m Model) renderSubmitting() string {
	stage := deconstruct.ProgressStages[m.progressIdx]
	var b strings.Builder
	b.WriteString(m.spin.View() + " " + m.styles.Label.Render("AI 正在深度拆解素材") + "\n\n")
	b.WriteString(m.styles.Progress.Render(stage.Message) + "\n\n")
	b.WriteString(m.progressBar.ViewAs(float64(stage.Percent)/100) + "\n\n")
	b.WriteString(m.styles.Hint.Render("上传大文件可能需要较长时间，请保持窗口开启"))
	return b.String()
}

func (m Model) renderWorkshop() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("爆款工坊") + "\n\n")

	if ref := m.reference; ref != nil {
		card := fmt.Sprintf("%s  %s\n%s\n\n%s %s\n%s %s",
			m.styles.Platform.Render("["+string(ref.Platform)+" / "+string(ref.Type)+"]"),
			m.styles.Label.Render(ref.Title),
			m.styles.Muted.Render(truncate(ref.VisualDescription, 120)),
			m.styles.Label.Render("标题建议:"),
			strings.Join(ref.TitleSuggestions, " / "),
			m.styles.Label.Render("改写灵感:"),
			ref.RemixIdea)
		b.WriteString(m.styles.Card.Render(card) + "\n\n")
	}

	if m.stage == StageGenerate {
		b.WriteString(m.spin.View() + " " + m.styles.Progress.Render("正在生成新的笔记与脚本..."))
		return b.String()
	}

	b.WriteString(m.styles.Label.Render("新主题:") + "\n")
	b.WriteString(m.topic.View() + "\n")
	return b.String()
}

func (m Model) renderLibrary(l list.Model) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, l.View(), "  ", m.detail.View())
}

func (m Model) renderFooter() string {
	var hints []string
	switch {
	case m.pickingFile || m.pickingRef:
		hints = []string{"esc 返回"}
	case m.tab == TabStudio && m.stage == StageCollect:
		hints = []string{"ctrl+s 开始拆解", "ctrl+o 添加素材", "ctrl+d 移除素材", "ctrl+h 历史", "esc 离开输入框", "tab 切换页签"}
	case m.tab == TabStudio && m.stage == StageRemix:
		hints = []string{"ctrl+s 生成", "esc 放弃参考"}
	case m.tab == TabNotes || m.tab == TabScripts:
		hints = []string{"enter 查看", "x 删除", "K/J 上移/下移", "tab 切换页签", "q 退出"}
	default:
		hints = []string{"tab 切换页签", "q 退出"}
	}
	return m.styles.Hint.Render(strings.Join(hints, " · "))
}

// renderNoteDetail refreshes the detail pane from the selected note.
func (m *Model) renderNoteDetail() {
	note, ok := m.deps.Notes.Selected()
	if !ok {
		m.detail.SetContent(m.styles.Muted.Render("未选择笔记"))
		return
	}
	md := fmt.Sprintf("# %s\n\n%s\n\n%s\n\n**拍摄建议**\n\n%s\n",
		note.Title, strings.Join(note.Tags, " "), note.Content, note.SuggestedVisuals)
	if m.renderer != nil {
		if out, err := m.renderer.Render(md); err == nil {
			m.detail.SetContent(out)
			return
		}
	}
	m.detail.SetContent(md)
}

// renderScriptDetail refreshes the detail pane from the selected script.
func (m *Model) renderScriptDetail() {
	script, ok := m.deps.Scripts.Selected()
	if !ok {
		m.detail.SetContent(m.styles.Muted.Render("未选择脚本"))
		return
	}
	var b strings.Builder
	b.WriteString(m.styles.Label.Render(script.Title) + "\n\n")
	for _, sc := range script.Scenes {
		b.WriteString(m.styles.Badge.Render(fmt.Sprintf("镜 %d", sc.SceneNo)) + "\n")
		b.WriteString("  画面: " + sc.Visual + "\n")
		b.WriteString("  音频: " + sc.Audio + "\n\n")
	}
	m.detail.SetContent(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
