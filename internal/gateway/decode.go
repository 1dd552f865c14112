package gateway

import (
	"encoding/json"
	"strings"

	"trendremix/internal/types"
)

// Decode/validate layer. Kept free of any transport concern so it can be
// exercised against canned payloads. Policy: an empty or unparseable body is
// fatal for both calls (schema kind); silent default-to-empty is never used.

type deconstructionPayload struct {
	Platform          string              `json:"platform"`
	Type              string              `json:"type"`
	Title             string              `json:"title"`
	ContentBody       string              `json:"contentBody"`
	VisualDescription string              `json:"visualDescription"`
	SpokenContent     string              `json:"spokenContent"`
	ScreenText        string              `json:"screenText"`
	VideoScript       []types.ScriptScene `json:"videoScript"`
	Tags              []string            `json:"tags"`
	TitleSuggestions  []string            `json:"titleSuggestions"`
	RemixIdea         string              `json:"remixIdea"`
}

func decodeDeconstruction(raw string) (*deconstructionPayload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, types.Schemaf("model returned an empty response")
	}

	var p deconstructionPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, types.Schemaf("model response is not valid JSON: %v", err)
	}

	switch {
	case !types.ValidNoteType(p.Type):
		return nil, types.Schemaf("model response has unknown content type %q", p.Type)
	case strings.TrimSpace(p.Title) == "":
		return nil, types.Schemaf("model response is missing a title")
	case strings.TrimSpace(p.ContentBody) == "":
		return nil, types.Schemaf("model response is missing the content body")
	case len(p.TitleSuggestions) == 0:
		return nil, types.Schemaf("model response is missing title suggestions")
	case strings.TrimSpace(p.RemixIdea) == "":
		return nil, types.Schemaf("model response is missing the remix idea")
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	p.ContentBody = stripListDashes(p.ContentBody)
	p.SpokenContent = stripListDashes(p.SpokenContent)
	p.VideoScript = normalizeScenes(p.VideoScript)
	return &p, nil
}

func decodeRemix(raw string) (*types.RemixedContent, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, types.Schemaf("model returned an empty response")
	}

	var rc types.RemixedContent
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return nil, types.Schemaf("model response is not valid JSON: %v", err)
	}

	switch {
	case strings.TrimSpace(rc.Title) == "":
		return nil, types.Schemaf("model response is missing a title")
	case strings.TrimSpace(rc.Content) == "":
		return nil, types.Schemaf("model response is missing the note content")
	case strings.TrimSpace(rc.SuggestedVisuals) == "":
		return nil, types.Schemaf("model response is missing the visual suggestions")
	}
	if rc.Tags == nil {
		rc.Tags = []string{}
	}

	rc.Content = stripListDashes(rc.Content)
	rc.SuggestedVisuals = stripListDashes(rc.SuggestedVisuals)
	rc.Script = normalizeScenes(rc.Script)
	return &rc, nil
}

// stripListDashes removes a leading "- " from each line. The prompt forbids
// dash-prefixed list items; this cleans up after models that ignore the
// instruction.
func stripListDashes(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "- ") {
			indent := line[:len(line)-len(trimmed)]
			lines[i] = indent + strings.TrimPrefix(trimmed, "- ")
		}
	}
	return strings.Join(lines, "\n")
}

// normalizeScenes keeps model-assigned scene numbers unless they are
// non-positive or duplicated, in which case the whole list is renumbered
// 1..n in returned order.
func normalizeScenes(scenes []types.ScriptScene) []types.ScriptScene {
	if len(scenes) == 0 {
		return scenes
	}

	seen := make(map[int]bool, len(scenes))
	renumber := false
	for _, sc := range scenes {
		if sc.SceneNo <= 0 || seen[sc.SceneNo] {
			renumber = true
			break
		}
		seen[sc.SceneNo] = true
	}
	if !renumber {
		return scenes
	}

	out := make([]types.ScriptScene, len(scenes))
	copy(out, scenes)
	for i := range out {
		out[i].SceneNo = i + 1
	}
	return out
}
