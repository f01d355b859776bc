package pipeline

import (
	"context"
	"log/slog"
	"os"

	"mediapress/internal/encode"
	"mediapress/internal/logging"
	"mediapress/internal/media"
	"mediapress/internal/media/ffprobe"
)

// Processor handles one file end-to-end and always returns an outcome; all
// per-file failures are converted here and never propagate to the scheduler.
type Processor interface {
	Process(ctx context.Context, file media.File) Outcome
}

// BitrateProber reports a file's encoded bitrate in kbps, 0 when unknown.
type BitrateProber interface {
	BitrateKbps(ctx context.Context, path string) int
}

// Encoder launches re-encode invocations into a temporary output.
type Encoder interface {
	EncodeVideo(ctx context.Context, inputPath, outputPath string, plan encode.VideoPlan) error
	EncodeImage(ctx context.Context, inputPath, outputPath string, quality int) error
}

// OutputInstaller promotes a temporary output and returns its final path.
type OutputInstaller interface {
	Install(ctx context.Context, originalPath, tempPath string) string
}

// FFprobeProber adapts the ffprobe package to the BitrateProber interface.
type FFprobeProber struct {
	Binary string
}

func (p FFprobeProber) BitrateKbps(ctx context.Context, path string) int {
	return ffprobe.BitrateKbps(ctx, p.Binary, path)
}

// FileProcessor implements the per-file policy: probe, decide, invoke,
// install.
type FileProcessor struct {
	Prober        BitrateProber
	Encoder       Encoder
	Installer     OutputInstaller
	VideoPlan     encode.VideoPlan
	ThresholdKbps int
	ImageQuality  int
	Logger        *slog.Logger
}

func (p *FileProcessor) logger() *slog.Logger {
	if p.Logger == nil {
		return logging.NewNop()
	}
	return p.Logger
}

// Process runs the decision policy for one file. Videos re-encode only when
// the probed bitrate strictly exceeds the threshold; images in scope always
// re-encode; everything else is skipped without an invocation.
func (p *FileProcessor) Process(ctx context.Context, file media.File) Outcome {
	out := Outcome{File: file, Status: StatusSkipped}
	if !file.Encodable() {
		p.logger().Debug("unsupported extension, skipping", logging.Args(logging.String("file", file.Path))...)
		return out
	}

	if file.Kind == media.KindVideo {
		kbps := p.Prober.BitrateKbps(ctx, file.Path)
		if !encode.NeedsVideoEncode(kbps, p.ThresholdKbps) {
			p.logger().Debug("bitrate at or below threshold, skipping",
				logging.Args(logging.String("file", file.Path), logging.Int("bitrate_kbps", kbps), logging.Int("threshold_kbps", p.ThresholdKbps))...)
			return out
		}
		p.logger().Debug("bitrate above threshold, re-encoding",
			logging.Args(logging.String("file", file.Path), logging.Int("bitrate_kbps", kbps))...)
	}

	out.BytesIn = fileSize(file.Path)
	tempPath := encode.TempPath(file.Path)

	var err error
	switch file.Kind {
	case media.KindVideo:
		err = p.Encoder.EncodeVideo(ctx, file.Path, tempPath, p.VideoPlan)
	case media.KindImage:
		err = p.Encoder.EncodeImage(ctx, file.Path, tempPath, p.ImageQuality)
	}
	if err != nil {
		// A partially written temp file stays put; it is overwritten on
		// the next run and the original is untouched.
		out.Status = StatusError
		out.Err = err
		return out
	}

	out.Status = StatusOK
	out.InstalledPath = p.Installer.Install(ctx, file.Path, tempPath)
	out.BytesOut = fileSize(out.InstalledPath)
	return out
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
