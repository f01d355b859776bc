package encode

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// ErrInvocation marks an external encoder process that exited non-zero or
// failed to launch. The per-file outcome becomes ERROR; the run continues.
var ErrInvocation = errors.New("encoder invocation failed")

// FFmpeg wraps the ffmpeg command-line encoder.
type FFmpeg struct {
	binary string
}

// NewFFmpeg constructs a client for the given binary path.
func NewFFmpeg(binary string) *FFmpeg {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{binary: binary}
}

// EncodeVideo re-encodes inputPath into outputPath under the plan's codec
// selection. Global metadata is copied forward by ffmpeg itself as a
// best-effort supplement to the exiftool tag copy at install time.
func (f *FFmpeg) EncodeVideo(ctx context.Context, inputPath, outputPath string, plan VideoPlan) error {
	return f.run(ctx, videoArgs(inputPath, outputPath, plan))
}

// EncodeImage re-encodes inputPath into outputPath at the given -q:v
// quality, writing exactly one frame.
func (f *FFmpeg) EncodeImage(ctx context.Context, inputPath, outputPath string, quality int) error {
	return f.run(ctx, imageArgs(inputPath, outputPath, quality))
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, f.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("%w: %v: %s", ErrInvocation, err, detail)
		}
		return fmt.Errorf("%w: %v", ErrInvocation, err)
	}
	return nil
}

func videoArgs(inputPath, outputPath string, plan VideoPlan) []string {
	codec := plan.Acceleration.codec()
	args := []string{
		"-loglevel", "quiet", "-y",
		"-i", inputPath,
		"-map_metadata", "0",
		"-movflags", "use_metadata_tags",
		"-c:v", codec.Video,
		"-b:v", fmt.Sprintf("%dk", plan.VideoBitrateKbps),
		"-c:a", "aac",
		"-b:a", fmt.Sprintf("%dk", plan.AudioBitrateKbps),
		"-tag:v", codec.Tag,
	}
	args = append(args, codec.Extra...)
	return append(args, outputPath)
}

func imageArgs(inputPath, outputPath string, quality int) []string {
	return []string{
		"-loglevel", "quiet", "-y",
		"-i", inputPath,
		"-q:v", fmt.Sprintf("%d", quality),
		"-frames:v", "1",
		outputPath,
	}
}
