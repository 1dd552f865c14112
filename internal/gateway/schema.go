package gateway

import (
	"google.golang.org/genai"

	"trendremix/internal/types"
)

// Response schemas for the two calls. These are declared per request so the
// model is constrained at the API level; the decode layer re-validates the
// required fields because schema enforcement is advisory for some models.

func platformEnum() []string {
	platforms := types.Platforms()
	out := make([]string, len(platforms))
	for i, p := range platforms {
		out[i] = string(p)
	}
	return out
}

func sceneListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"sceneNo": {Type: genai.TypeInteger},
				"visual":  {Type: genai.TypeString},
				"audio":   {Type: genai.TypeString},
			},
			Required: []string{"sceneNo", "visual", "audio"},
		},
	}
}

// deconstructionSchema constrains the deconstruct call output.
func deconstructionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"platform": {Type: genai.TypeString, Enum: platformEnum()},
			"type": {
				Type: genai.TypeString,
				Enum: []string{string(types.NoteTypeVideo), string(types.NoteTypeImageText)},
			},
			"title":             {Type: genai.TypeString},
			"contentBody":       {Type: genai.TypeString},
			"visualDescription": {Type: genai.TypeString},
			"spokenContent":     {Type: genai.TypeString},
			"screenText":        {Type: genai.TypeString},
			"videoScript":       sceneListSchema(),
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"titleSuggestions": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"remixIdea": {Type: genai.TypeString},
		},
		Required: []string{
			"platform", "type", "title", "contentBody",
			"visualDescription", "tags", "titleSuggestions", "remixIdea",
		},
	}
}

// remixSchema constrains the remix call output.
func remixSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"content": {Type: genai.TypeString},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"suggestedVisuals": {Type: genai.TypeString},
			"script":           sceneListSchema(),
		},
		Required: []string{"title", "content", "tags", "suggestedVisuals"},
	}
}
