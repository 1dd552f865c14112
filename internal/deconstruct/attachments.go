package deconstruct

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"trendremix/internal/types"
)

// Media type detection is extension-based: the file picker and the CLI both
// hand over regular files, and the model only needs a MIME tag for the
// inline part.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
}

// MediaMIMEType returns the media type for a file name, or "" when the
// extension is not a supported image/video format.
func MediaMIMEType(name string) string {
	return mimeByExt[strings.ToLower(filepath.Ext(name))]
}

// LoadAttachment reads one media file into an attachment.
func LoadAttachment(path string) (types.Attachment, error) {
	mime := MediaMIMEType(path)
	if mime == "" {
		return types.Attachment{}, types.Validationf("unsupported media type: %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Attachment{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return types.Attachment{Name: filepath.Base(path), MIMEType: mime, Data: data}, nil
}

// LoadAttachments reads a batch of media files concurrently, preserving the
// argument order in the result.
func LoadAttachments(ctx context.Context, paths []string) ([]types.Attachment, error) {
	out := make([]types.Attachment, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			att, err := LoadAttachment(path)
			if err != nil {
				return err
			}
			out[i] = att
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
