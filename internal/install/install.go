// Package install promotes temporary encoder outputs to their final
// location and carries the original's metadata tags and filesystem
// timestamps forward.
//
// The ordering here is correctness-critical: tags and timestamps are read
// from the original before the rename that may destroy it, so in-place
// replacement can never source metadata from already-encoded content.
package install

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mediapress/internal/fileutil"
	"mediapress/internal/logging"
)

// TagCopier copies all metadata tags from one file onto another.
type TagCopier interface {
	CopyTags(ctx context.Context, srcPath, dstPath string) error
}

// Installer finalizes encoded outputs for one run.
type Installer struct {
	tags             TagCopier
	replaceOriginals bool
	outputDir        string
	logger           *slog.Logger
}

// New builds an Installer. outputDir is only used when replaceOriginals is
// false; it is created on first use.
func New(tags TagCopier, replaceOriginals bool, outputDir string, logger *slog.Logger) *Installer {
	return &Installer{
		tags:             tags,
		replaceOriginals: replaceOriginals,
		outputDir:        outputDir,
		logger:           logging.WithComponent(logger, "install"),
	}
}

// Install makes tempPath the final output for originalPath and returns the
// path where the artifact now lives.
//
// Tag-copy and timestamp failures are logged and do not fail the install:
// the encode itself succeeded and only metadata fidelity degrades. A failed
// rename/move is likewise logged; the artifact then remains at tempPath and
// the original is untouched.
func (i *Installer) Install(ctx context.Context, originalPath, tempPath string) string {
	// Tags must come from true original content, so copy before any rename.
	if err := i.tags.CopyTags(ctx, originalPath, tempPath); err != nil {
		i.logger.Warn("metadata tag copy failed, installing without tags",
			logging.Args(logging.String("file", originalPath), logging.Error(err))...)
	}

	times, timesErr := fileTimes(originalPath)
	if timesErr != nil {
		i.logger.Warn("could not read original timestamps",
			logging.Args(logging.String("file", originalPath), logging.Error(timesErr))...)
	}

	finalPath, err := i.place(originalPath, tempPath)
	if err != nil {
		i.logger.Error("could not install encoded output, artifact left beside original",
			logging.Args(logging.String("file", originalPath), logging.String("artifact", tempPath), logging.Error(err))...)
		return tempPath
	}

	if timesErr == nil {
		if err := os.Chtimes(finalPath, times.access, times.modified); err != nil {
			i.logger.Warn("could not restore timestamps",
				logging.Args(logging.String("file", finalPath), logging.Error(err))...)
		}
	}
	return finalPath
}

// place moves the temporary output into its final location. In replace mode
// this is an atomic rename over the original on the same filesystem; there
// is no window where a reader observes a missing or truncated file.
func (i *Installer) place(originalPath, tempPath string) (string, error) {
	if i.replaceOriginals {
		if err := os.Rename(tempPath, originalPath); err != nil {
			return "", fmt.Errorf("replace original: %w", err)
		}
		return originalPath, nil
	}

	if err := os.MkdirAll(i.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	// Output is flat: base names only, subdirectory structure is not
	// mirrored. Same-named files from different subtrees collide.
	finalPath := filepath.Join(i.outputDir, filepath.Base(originalPath))
	if err := fileutil.MoveFile(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("move into output directory: %w", err)
	}
	return finalPath, nil
}
