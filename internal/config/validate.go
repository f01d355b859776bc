package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Encoding.Acceleration {
	case "nvidia", "intel", "cpu":
	default:
		return fmt.Errorf("encoding.acceleration must be one of nvidia, intel, cpu (got %q)", c.Encoding.Acceleration)
	}
	if c.Encoding.BatchSize <= 0 {
		return errors.New("encoding.batch_size must be positive")
	}
	if c.Video.BitrateThresholdKbps < 0 {
		return errors.New("video.bitrate_threshold_kbps must not be negative")
	}
	if c.Video.AudioBitrateKbps <= 0 {
		return errors.New("video.audio_bitrate_kbps must be positive")
	}
	if c.Image.Quality < 1 || c.Image.Quality > 31 {
		return errors.New("image.quality must be between 1 and 31")
	}
	if c.Paths.OutputDirName == "" {
		return errors.New("paths.output_dir_name must be set")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}
