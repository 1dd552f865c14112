package gateway

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"trendremix/internal/types"
)

// Gateway performs the two model operations on top of an injected
// ModelClient.
type Gateway struct {
	client ModelClient
	log    *zap.Logger
	now    func() time.Time
}

// New builds a gateway around client.
func New(client ModelClient, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{client: client, log: log, now: time.Now}
}

// Deconstruct analyzes reference content (free text plus up to nine media
// attachments) into a DeconstructedNote. At least one of a non-blank text or
// an attachment must be present. The returned note carries a fresh identity
// and timestamp; OriginalMedia is left for the caller to fill in.
func (g *Gateway) Deconstruct(ctx context.Context, text string, attachments []types.Attachment) (*types.DeconstructedNote, error) {
	if strings.TrimSpace(text) == "" && len(attachments) == 0 {
		return nil, types.Validationf("nothing to analyze: paste some text or add at least one image/video")
	}

	raw, err := g.client.GenerateJSON(ctx, buildDeconstructPrompt(text), attachments, deconstructionSchema())
	if err != nil {
		return nil, err
	}

	p, err := decodeDeconstruction(raw)
	if err != nil {
		g.log.Warn("deconstruction response rejected", zap.Error(err))
		return nil, err
	}

	ts := g.now()
	note := &types.DeconstructedNote{
		ID:                types.NewID("d", ts),
		Timestamp:         ts.UnixMilli(),
		Platform:          types.ParsePlatform(p.Platform),
		Type:              types.NoteType(p.Type),
		Title:             p.Title,
		ContentBody:       p.ContentBody,
		Tags:              p.Tags,
		TitleSuggestions:  p.TitleSuggestions,
		RemixIdea:         p.RemixIdea,
		VisualDescription: p.VisualDescription,
		SpokenContent:     p.SpokenContent,
		ScreenText:        p.ScreenText,
		VideoScript:       p.VideoScript,
	}
	g.log.Info("deconstruction completed",
		zap.String("id", note.ID),
		zap.String("platform", string(note.Platform)),
		zap.String("type", string(note.Type)),
		zap.Int("scenes", len(note.VideoScript)))
	return note, nil
}

// Remix combines a reference note with a new user topic into fresh
// RemixedContent. The topic must be non-blank. The result is ephemeral:
// it carries no identity until the caller splits and persists it.
func (g *Gateway) Remix(ctx context.Context, ref *types.DeconstructedNote, topic string) (*types.RemixedContent, error) {
	if ref == nil {
		return nil, types.Validationf("no reference note selected")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, types.Validationf("the new topic must not be blank")
	}

	raw, err := g.client.GenerateJSON(ctx, buildRemixPrompt(ref, topic), nil, remixSchema())
	if err != nil {
		return nil, err
	}

	rc, err := decodeRemix(raw)
	if err != nil {
		g.log.Warn("remix response rejected", zap.Error(err))
		return nil, err
	}

	g.log.Info("remix completed",
		zap.String("ref", ref.ID),
		zap.Int("tags", len(rc.Tags)),
		zap.Int("scenes", len(rc.Script)))
	return rc, nil
}
