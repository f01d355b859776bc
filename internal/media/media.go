// Package media defines the file model for a compression run and discovers
// candidate files under a root directory.
package media

import (
	"path/filepath"
	"strings"
)

// Kind distinguishes how a file is re-encoded.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// File is a discovered media file. Identity is the absolute path; the value
// is immutable once discovered for a given run.
type File struct {
	Path string
	Ext  string
	Kind Kind
}

// kindByExt is the supported extension set. PNG is recognized by discovery
// but the pipeline maps it to a skipped outcome rather than encoding it.
var kindByExt = map[string]Kind{
	".mp4":  KindVideo,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
}

// encodableExts are the extensions the encoder actually handles.
var encodableExts = map[string]bool{
	".mp4":  true,
	".jpg":  true,
	".jpeg": true,
}

// SupportedExtensions returns the fixed supported set in stable order, for
// summary reporting.
func SupportedExtensions() []string {
	return []string{".mp4", ".jpg", ".jpeg", ".png"}
}

// KindForExt reports the media kind for an extension, compared
// case-insensitively.
func KindForExt(ext string) (Kind, bool) {
	kind, ok := kindByExt[strings.ToLower(ext)]
	return kind, ok
}

// Encodable reports whether the pipeline re-encodes files of this extension.
func (f File) Encodable() bool {
	return encodableExts[f.Ext]
}

// NewFile builds a File from a path, lowercasing the extension. ok is false
// when the extension is not in the supported set.
func NewFile(path string) (File, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := kindByExt[ext]
	if !ok {
		return File{}, false
	}
	return File{Path: path, Ext: ext, Kind: kind}, true
}
