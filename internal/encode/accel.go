package encode

import (
	"fmt"
	"log/slog"

	"mediapress/internal/hwinfo"
	"mediapress/internal/logging"
)

// Acceleration is the hardware encoding path for video re-encodes. It is
// chosen once per run and governs both codec selection and the scheduler's
// concurrency policy.
type Acceleration string

const (
	AccelNvidia Acceleration = "nvidia"
	AccelIntel  Acceleration = "intel"
	AccelCPU    Acceleration = "cpu"
)

// ParseAcceleration validates a configured mode string.
func ParseAcceleration(value string) (Acceleration, error) {
	switch Acceleration(value) {
	case AccelNvidia, AccelIntel, AccelCPU:
		return Acceleration(value), nil
	default:
		return "", fmt.Errorf("unknown acceleration mode %q (want nvidia, intel, or cpu)", value)
	}
}

// Workers returns the scheduler concurrency for the mode. The NVENC encoder
// is a singular shared resource, so nvidia mode is strictly sequential.
func (a Acceleration) Workers(batchSize int) int {
	if a == AccelNvidia {
		return 1
	}
	if batchSize < 1 {
		return 1
	}
	return batchSize
}

// codecParams pairs a video codec with the container tag downstream players
// need to recognize the stream.
type codecParams struct {
	Video string
	Tag   string
	Extra []string
}

// codec is a total mapping over the closed acceleration set.
func (a Acceleration) codec() codecParams {
	switch a {
	case AccelNvidia:
		return codecParams{Video: "h264_nvenc", Tag: "avc1"}
	case AccelIntel:
		return codecParams{Video: "hevc_qsv", Tag: "hvc1"}
	default:
		// x265's own log lines would interleave across parallel workers.
		return codecParams{Video: "libx265", Tag: "hvc1", Extra: []string{"-x265-params", "log-level=none"}}
	}
}

// Resolve applies the downgrade policy to a requested mode, first match
// wins. It always returns a usable mode and emits at most one warning.
func Resolve(requested Acceleration, probe hwinfo.Probe, logger *slog.Logger) Acceleration {
	if logger == nil {
		logger = logging.NewNop()
	}
	switch {
	case requested == AccelIntel && !probe.IsIntel:
		logger.Warn("intel quick sync requested on a non-intel cpu, falling back to software encoding",
			logging.Args(logging.String("requested", string(requested)))...)
		return AccelCPU
	case probe.IsARM && (requested == AccelNvidia || requested == AccelIntel):
		logger.Warn("hardware acceleration is not available on arm, falling back to software encoding",
			logging.Args(logging.String("requested", string(requested)))...)
		return AccelCPU
	default:
		return requested
	}
}
