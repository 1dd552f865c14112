package gateway

import (
	"fmt"
	"strings"

	"trendremix/internal/types"
)

// The prompts target Chinese short-video platforms, so they are written in
// Chinese; the JSON field names stay English to match the response schemas.

const deconstructPrompt = `你是一个顶级的新媒体爆款内容拆解专家。
请分析用户上传的素材（图片/视频截图/视频文件）以及提供的文本内容。

用户需求：
1. **平台识别**：判断是抖音、小红书还是视频号风格。
2. **内容拆解**：
   - **标题**：提取核心标题。
   - **视觉分析**：如果是视频，必须分析"拍摄风格"、"镜头语言"、"剪辑节奏"；如果是图片则分析构图角度。
   - **音画拆解 (仅视频)**：提取口播文案 (spokenContent) 和画面文字 (screenText)。
   - **脚本还原 (仅视频)**：按照镜号、画面描述、音频内容还原原视频脚本。
3. **改写建议**：
   - 给出 3 个爆款标题建议，每个标题严禁超过 20 个字。
4. **规范**：严禁在任何列表项前使用 "-" 符号。

请以 JSON 格式输出。`

// buildDeconstructPrompt appends the user's pasted text to the fixed
// instruction when present.
func buildDeconstructPrompt(userText string) string {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return deconstructPrompt
	}
	return deconstructPrompt + "\n\n--- 用户提供的文案/链接 ---\n" + userText
}

// buildRemixPrompt embeds the reference note's title and visual logic plus
// the user's new topic. The script clause only appears for video references.
func buildRemixPrompt(ref *types.DeconstructedNote, topic string) string {
	scriptClause := ""
	if ref.IsVideo() {
		scriptClause = "以及一份拍摄脚本"
	}

	return fmt.Sprintf(`你是一位全能新媒体专家。基于"参考内容"和"用户新主题"，创作一篇爆款文案%s。

--- 参考背景 ---
原标题: %s
核心视觉逻辑: %s

--- 用户新主题 ---
%s

--- 任务要求 ---
1. **爆款标题**：极具吸引力，带Emoji，**严禁超过 20 个字**。
2. **笔记正文**：小红书/抖音高转化风格，多Emoji，分段清晰，亲切感强。
3. **标签**：5-8个高热度话题。
4. **创作脚本 (重点)**：如果是视频改写，请根据新主题编写一份标准的拍摄脚本，包含镜号、新画面视觉描述、新口播/音频。
5. **规范**：正文中严禁在列表前使用 "-" 符号。

请直接输出 JSON 数据。`, scriptClause, ref.Title, ref.VisualDescription, strings.TrimSpace(topic))
}
