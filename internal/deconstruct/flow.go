// Package deconstruct drives the deconstruction flow: collecting the user's
// text and media attachments, validating them, calling the gateway, and
// maintaining the persisted history of past deconstructions.
package deconstruct

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trendremix/internal/gateway"
	"trendremix/internal/store"
	"trendremix/internal/types"
)

const (
	// MaxAttachments caps the attachment set; files beyond the cap are
	// silently dropped rather than rejected.
	MaxAttachments = 9
	// MaxAttachmentBytes is the per-file size ceiling (20 MB).
	MaxAttachmentBytes = 20 << 20
	// MaxVideoSeconds is advisory UI copy; duration is not probed locally.
	MaxVideoSeconds = 60
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Flow holds the collecting-state input and the persisted history. It is
// driven by a single control flow (TUI event loop or one CLI invocation).
type Flow struct {
	gw       *gateway.Gateway
	st       *store.Store
	mediaDir string
	log      *zap.Logger

	text        string
	attachments []types.Attachment
	history     []types.DeconstructedNote
}

// NewFlow loads the history and returns a flow in the collecting state.
// mediaDir is where local copies of analyzed media are kept; it may be ""
// to skip keeping copies.
func NewFlow(gw *gateway.Gateway, st *store.Store, mediaDir string, log *zap.Logger) (*Flow, error) {
	if log == nil {
		log = zap.NewNop()
	}
	history, err := st.History()
	if err != nil {
		return nil, err
	}
	return &Flow{gw: gw, st: st, mediaDir: mediaDir, log: log, history: history}, nil
}

// SetText replaces the free-text input.
func (f *Flow) SetText(s string) { f.text = s }

// Text returns the current free-text input.
func (f *Flow) Text() string { return f.text }

// DetectedLink returns the first URL found in the text, or "". The link is
// surfaced as a hint only; it changes neither validation nor the request.
func (f *Flow) DetectedLink() string {
	return urlPattern.FindString(f.text)
}

// Attachments returns the accepted attachment set in arrival order.
func (f *Flow) Attachments() []types.Attachment { return f.attachments }

// AddAttachments appends a batch of attachments. If any file in the batch
// exceeds the size ceiling the whole batch is rejected with a single
// validation error and the previously accepted set is untouched. After a
// successful add the total is capped at MaxAttachments; excess files are
// dropped, not an error.
func (f *Flow) AddAttachments(batch []types.Attachment) error {
	for _, att := range batch {
		if att.Size() > MaxAttachmentBytes {
			return types.Validationf("%s exceeds the %dMB limit, please pick smaller files", att.Name, MaxAttachmentBytes>>20)
		}
	}
	f.attachments = append(f.attachments, batch...)
	if len(f.attachments) > MaxAttachments {
		f.attachments = f.attachments[:MaxAttachments]
	}
	return nil
}

// RemoveAttachment drops the attachment at index i. Out-of-range is a no-op.
func (f *Flow) RemoveAttachment(i int) {
	if i < 0 || i >= len(f.attachments) {
		return
	}
	f.attachments = append(f.attachments[:i], f.attachments[i+1:]...)
}

// Validate checks the submission precondition: non-blank text or at least
// one attachment.
func (f *Flow) Validate() error {
	if strings.TrimSpace(f.text) == "" && len(f.attachments) == 0 {
		return types.Validationf("upload an image/video or paste some text so the analysis has something to work with")
	}
	return nil
}

// Run submits the collected input. On success the result is prepended to
// the history, the history is persisted, the input is cleared, and the new
// note is returned. On failure the input is retained so the user can retry.
func (f *Flow) Run(ctx context.Context) (*types.DeconstructedNote, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	note, err := f.gw.Deconstruct(ctx, f.text, f.attachments)
	if err != nil {
		return nil, err
	}
	note.OriginalMedia = f.saveMediaCopies(note.ID)

	f.history = append([]types.DeconstructedNote{*note}, f.history...)
	if err := f.st.SaveHistory(f.history); err != nil {
		// The note exists; losing the history write should not discard it.
		f.log.Warn("failed to persist history", zap.Error(err))
	}

	f.text = ""
	f.attachments = nil
	return note, nil
}

// History returns the persisted deconstructions, newest first. The list
// grows without bound; nothing prunes it.
func (f *Flow) History() []types.DeconstructedNote { return f.history }

// FindHistory returns the history entry with the given id.
func (f *Flow) FindHistory(id string) (*types.DeconstructedNote, bool) {
	for i := range f.history {
		if f.history[i].ID == id {
			return &f.history[i], true
		}
	}
	return nil, false
}

// DeleteHistory removes one entry and persists. Unknown ids are a no-op.
func (f *Flow) DeleteHistory(id string) error {
	for i := range f.history {
		if f.history[i].ID == id {
			f.history = append(f.history[:i], f.history[i+1:]...)
			return f.st.SaveHistory(f.history)
		}
	}
	return nil
}

// saveMediaCopies writes local copies of the current attachments so history
// entries can reference their original media. Returns order-preserving file
// paths; copy failures drop the reference but never fail the flow.
func (f *Flow) saveMediaCopies(noteID string) []string {
	if f.mediaDir == "" || len(f.attachments) == 0 {
		return nil
	}
	dir := filepath.Join(f.mediaDir, noteID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		f.log.Warn("failed to create media dir", zap.Error(err))
		return nil
	}

	refs := make([]string, 0, len(f.attachments))
	for _, att := range f.attachments {
		name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(att.Name))
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, att.Data, 0o644); err != nil {
			f.log.Warn("failed to copy media", zap.String("name", att.Name), zap.Error(err))
			continue
		}
		refs = append(refs, path)
	}
	return refs
}
