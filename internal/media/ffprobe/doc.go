// Package ffprobe provides a typed wrapper around ffprobe JSON output and
// the fail-safe bitrate probe the transcode decision relies on.
//
// A probe failure must never trigger an unnecessary re-encode, so
// BitrateKbps maps every failure mode to 0 ("unknown/low").
package ffprobe
