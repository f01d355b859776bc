package media

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// toolDirMarkers exclude vendored tool installations from traversal so the
// tool binaries and their support files are never mistaken for media.
var toolDirMarkers = []string{"ffmpeg", "exiftool"}

// Discover walks root and returns every supported media file in traversal
// order. Directories whose path contains a tool marker (case-insensitively)
// are pruned entirely, as is the named output directory so a second
// non-replacing run does not recompress its own output.
func Discover(root, outputDirName string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excludedDir(path, d.Name(), outputDirName) {
				return filepath.SkipDir
			}
			return nil
		}
		if file, ok := NewFile(path); ok {
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func excludedDir(path, name, outputDirName string) bool {
	if outputDirName != "" && strings.EqualFold(name, outputDirName) {
		return true
	}
	lowered := strings.ToLower(path)
	for _, marker := range toolDirMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
