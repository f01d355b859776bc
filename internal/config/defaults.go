package config

const (
	defaultOutputDirName      = "Compressed"
	defaultLogDir             = "~/.local/share/mediapress/logs"
	defaultVideoThresholdKbps = 3000
	defaultAudioBitrateKbps   = 192
	defaultImageQuality       = 7
	defaultAcceleration       = "nvidia"
	defaultBatchSize          = 2
	defaultReplaceOriginals   = true
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultExiftoolBinary     = "exiftool"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDirName: defaultOutputDirName,
			LogDir:        defaultLogDir,
		},
		Video: Video{
			BitrateThresholdKbps: defaultVideoThresholdKbps,
			AudioBitrateKbps:     defaultAudioBitrateKbps,
		},
		Image: Image{
			Quality: defaultImageQuality,
		},
		Encoding: Encoding{
			Acceleration:     defaultAcceleration,
			BatchSize:        defaultBatchSize,
			ReplaceOriginals: defaultReplaceOriginals,
		},
		Tools: Tools{
			FFmpeg:   defaultFFmpegBinary,
			FFprobe:  defaultFFprobeBinary,
			Exiftool: defaultExiftoolBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
