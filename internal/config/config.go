package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// Root is the directory tree to process. Usually supplied on the
	// command line; a config value acts as the default.
	Root string `toml:"root"`
	// OutputDirName is the sibling directory that receives encoded files
	// when originals are not replaced. Created under Root on first use.
	OutputDirName string `toml:"output_dir_name"`
	LogDir        string `toml:"log_dir"`
}

// Video contains the re-encode policy for video files.
type Video struct {
	// BitrateThresholdKbps: videos at or below this probed bitrate are
	// left untouched.
	BitrateThresholdKbps int `toml:"bitrate_threshold_kbps"`
	AudioBitrateKbps     int `toml:"audio_bitrate_kbps"`
}

// Image contains the re-encode policy for image files.
type Image struct {
	// Quality is ffmpeg's -q:v value; lower is better quality.
	Quality int `toml:"quality"`
}

// Encoding contains acceleration and scheduling settings.
type Encoding struct {
	// Acceleration is one of nvidia, intel, cpu. The effective mode may
	// be downgraded at startup based on the host hardware.
	Acceleration string `toml:"acceleration"`
	// BatchSize bounds the worker pool in intel/cpu modes. nvidia mode
	// always runs one encode at a time.
	BatchSize        int  `toml:"batch_size"`
	ReplaceOriginals bool `toml:"replace_originals"`
}

// Tools contains the external binaries the pipeline invokes.
type Tools struct {
	FFmpeg   string `toml:"ffmpeg"`
	FFprobe  string `toml:"ffprobe"`
	Exiftool string `toml:"exiftool"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mediapress.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Video    Video    `toml:"video"`
	Image    Image    `toml:"image"`
	Encoding Encoding `toml:"encoding"`
	Tools    Tools    `toml:"tools"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mediapress/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mediapress.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
