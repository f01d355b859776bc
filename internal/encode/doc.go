// Package encode selects the hardware acceleration path, decides whether a
// file needs re-encoding, and wraps the external ffmpeg and exiftool
// processes that perform the work.
//
// Invocations always write to a temporary path beside the source so a
// failed or interrupted encode can never corrupt the original or an
// installed result.
package encode
