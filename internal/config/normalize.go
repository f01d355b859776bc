package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	c.Encoding.Acceleration = strings.ToLower(strings.TrimSpace(c.Encoding.Acceleration))
	if c.Encoding.Acceleration == "" {
		c.Encoding.Acceleration = defaultAcceleration
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Root) != "" {
		if c.Paths.Root, err = expandPath(c.Paths.Root); err != nil {
			return fmt.Errorf("paths.root: %w", err)
		}
	}
	c.Paths.OutputDirName = strings.TrimSpace(c.Paths.OutputDirName)
	if c.Paths.OutputDirName == "" {
		c.Paths.OutputDirName = defaultOutputDirName
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	if strings.TrimSpace(c.Tools.Exiftool) == "" {
		c.Tools.Exiftool = defaultExiftoolBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
