package encode

import (
	"path/filepath"
	"strings"
)

// VideoPlan carries the per-run encoding parameters for video files.
type VideoPlan struct {
	Acceleration     Acceleration
	VideoBitrateKbps int
	AudioBitrateKbps int
}

// NeedsVideoEncode reports whether a probed bitrate warrants re-encoding.
// Equal to the threshold is a skip; only strictly higher bitrates encode.
func NeedsVideoEncode(bitrateKbps, thresholdKbps int) bool {
	return bitrateKbps > thresholdKbps
}

// TempPath returns the temporary output path for a source file: same
// directory, suffixed stem, same extension.
func TempPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_tmp" + ext
}
