// Package remix drives the remix flow: a reference note plus a new user
// topic go to the gateway, and the ephemeral result is split into a
// GeneratedNote and, for video references with a non-empty script, a
// GeneratedScript.
package remix

import (
	"context"
	"time"

	"go.uber.org/zap"

	"trendremix/internal/gateway"
	"trendremix/internal/types"
)

// Result is the persistable output of one remix: always a note, sometimes a
// script. The two records correlate through the shared creation timestamp
// but live in independent collections.
type Result struct {
	Note   types.GeneratedNote
	Script *types.GeneratedScript
}

// Flow performs remix calls. Stateless beyond its dependencies; the caller
// owns reference selection and persistence.
type Flow struct {
	gw  *gateway.Gateway
	log *zap.Logger
	now func() time.Time
}

// NewFlow builds a remix flow.
func NewFlow(gw *gateway.Gateway, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{gw: gw, log: log, now: time.Now}
}

// Run generates remixed content for the reference and topic, then splits it.
// The topic must be non-blank; failures leave nothing persisted.
func (f *Flow) Run(ctx context.Context, ref *types.DeconstructedNote, topic string) (*Result, error) {
	rc, err := f.gw.Remix(ctx, ref, topic)
	if err != nil {
		return nil, err
	}
	result := Split(ref, rc, f.now())
	f.log.Info("remix split",
		zap.String("note", result.Note.ID),
		zap.Bool("script", result.Script != nil))
	return &result, nil
}

// Split turns ephemeral RemixedContent into persistable records. A script
// record is produced only when the reference is a video and the model
// returned at least one scene; both records copy the reference's platform.
func Split(ref *types.DeconstructedNote, rc *types.RemixedContent, ts time.Time) Result {
	result := Result{
		Note: types.GeneratedNote{
			ID:               types.NewID("n", ts),
			Timestamp:        ts.UnixMilli(),
			Title:            rc.Title,
			Content:          rc.Content,
			Tags:             rc.Tags,
			SuggestedVisuals: rc.SuggestedVisuals,
			FromPlatform:     ref.Platform,
		},
	}
	if ref.IsVideo() && len(rc.Script) > 0 {
		result.Script = &types.GeneratedScript{
			ID:           types.NewID("s", ts),
			Timestamp:    ts.UnixMilli(),
			Title:        rc.Title,
			Scenes:       rc.Script,
			FromPlatform: ref.Platform,
		}
	}
	return result
}
