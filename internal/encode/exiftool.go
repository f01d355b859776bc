package encode

import (
	"context"
	"fmt"
	"strings"
)

// Exiftool wraps the exiftool metadata copier.
type Exiftool struct {
	binary string
}

// NewExiftool constructs a client for the given binary path.
func NewExiftool(binary string) *Exiftool {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "exiftool"
	}
	return &Exiftool{binary: binary}
}

// CopyTags copies all metadata tags from srcPath onto dstPath, overwriting
// dstPath in place. srcPath must still hold the original content when this
// runs; the installer sequences the call before any destructive rename.
func (e *Exiftool) CopyTags(ctx context.Context, srcPath, dstPath string) error {
	cmd := commandContext(ctx, e.binary,
		"-TagsFromFile", srcPath,
		"-all:all>all:all", dstPath,
		"-overwrite_original",
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("exiftool copy tags: %w: %s", err, detail)
		}
		return fmt.Errorf("exiftool copy tags: %w", err)
	}
	return nil
}
