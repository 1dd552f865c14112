// Package types holds the shared data model for trendremix: the platform and
// note-type enumerations, the deconstruction and remix records, and the typed
// error taxonomy used across the flows.
package types

import (
	"fmt"
	"time"
)

// Platform identifies the source social-media platform of a piece of content.
// The wire values are the display strings the model is instructed to return,
// so they double as the enum in the response schema.
type Platform string

const (
	PlatformDouyin       Platform = "抖音"
	PlatformXiaohongshu  Platform = "小红书"
	PlatformVideoAccount Platform = "视频号"
	PlatformUnknown      Platform = "通用/其他"
)

// Platforms returns every known platform, in schema declaration order.
func Platforms() []Platform {
	return []Platform{PlatformDouyin, PlatformXiaohongshu, PlatformVideoAccount, PlatformUnknown}
}

// ParsePlatform maps a raw string onto a known platform, falling back to
// PlatformUnknown for anything the model invents.
func ParsePlatform(s string) Platform {
	for _, p := range Platforms() {
		if string(p) == s {
			return p
		}
	}
	return PlatformUnknown
}

// NoteType distinguishes video content from image-and-text content.
type NoteType string

const (
	NoteTypeVideo     NoteType = "视频"
	NoteTypeImageText NoteType = "图文"
)

// ValidNoteType reports whether s is one of the two known note types.
func ValidNoteType(s string) bool {
	return s == string(NoteTypeVideo) || s == string(NoteTypeImageText)
}

// ScriptScene is one row of a shooting script: a visual description paired
// with the corresponding voice-over or audio text. Scene numbers are display
// labels, owned by exactly one parent note or script.
type ScriptScene struct {
	SceneNo int    `json:"sceneNo"`
	Visual  string `json:"visual"`
	Audio   string `json:"audio"`
}

// TrendItem is one entry of the trend intelligence board. Read-only.
type TrendItem struct {
	ID        string   `json:"id"`
	Rank      int      `json:"rank"`
	Title     string   `json:"title"`
	HotScore  int      `json:"hotScore"`
	Platform  Platform `json:"platform"`
	Summary   string   `json:"summary"`
	SearchURL string   `json:"searchUrl"`
}

// Attachment is a piece of reference media supplied by the user, carried
// in memory until it is sent inline to the model.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Size returns the payload size in bytes.
func (a Attachment) Size() int { return len(a.Data) }

// DeconstructedNote is the structured breakdown of one piece of reference
// content. Created once per successful deconstruction call and immutable
// afterwards, except by deletion from the history list.
type DeconstructedNote struct {
	ID        string   `json:"id"`
	Timestamp int64    `json:"timestamp"` // unix milliseconds
	Platform  Platform `json:"platform"`
	Type      NoteType `json:"type"`
	Title     string   `json:"title"`

	ContentBody string   `json:"contentBody"`
	Tags        []string `json:"tags"`

	TitleSuggestions []string `json:"titleSuggestions"`
	RemixIdea        string   `json:"remixIdea"`

	VisualDescription string   `json:"visualDescription,omitempty"`
	OriginalMedia     []string `json:"originalImages,omitempty"` // local file references, order matches the uploaded set

	SpokenContent string `json:"spokenContent,omitempty"`
	ScreenText    string `json:"screenText,omitempty"`

	VideoScript []ScriptScene `json:"videoScript,omitempty"`
}

// RecordID implements library.Record.
func (n DeconstructedNote) RecordID() string { return n.ID }

// IsVideo reports whether the note describes video content.
func (n DeconstructedNote) IsVideo() bool { return n.Type == NoteTypeVideo }

// RemixedContent is the ephemeral output of a remix call. It is never
// persisted directly; the caller splits it into a GeneratedNote and,
// when a script is present, a GeneratedScript.
type RemixedContent struct {
	Title            string        `json:"title"`
	Content          string        `json:"content"`
	Tags             []string      `json:"tags"`
	SuggestedVisuals string        `json:"suggestedVisuals"`
	Script           []ScriptScene `json:"script,omitempty"`
}

// GeneratedNote is a remixed note persisted in the notes library.
type GeneratedNote struct {
	ID               string   `json:"id"`
	Timestamp        int64    `json:"timestamp"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Tags             []string `json:"tags"`
	SuggestedVisuals string   `json:"suggestedVisuals"`
	FromPlatform     Platform `json:"fromPlatform"`
}

// RecordID implements library.Record.
func (n GeneratedNote) RecordID() string { return n.ID }

// GeneratedScript is a remixed shooting script persisted in the scripts
// library. It shares a timestamp-derived correlation with the sibling note
// created in the same remix, but its lifecycle is independent.
type GeneratedScript struct {
	ID           string        `json:"id"`
	Timestamp    int64         `json:"timestamp"`
	Title        string        `json:"title"`
	Scenes       []ScriptScene `json:"scenes"`
	FromPlatform Platform      `json:"fromPlatform"`
}

// RecordID implements library.Record.
func (s GeneratedScript) RecordID() string { return s.ID }

// NewID derives a record identity from a prefix and a timestamp. Two records
// created in the same millisecond would collide; callers never do that.
func NewID(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, t.UnixMilli())
}
