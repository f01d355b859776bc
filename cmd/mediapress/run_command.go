package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mediapress/internal/config"
	"mediapress/internal/deps"
	"mediapress/internal/encode"
	"mediapress/internal/hwinfo"
	"mediapress/internal/install"
	"mediapress/internal/logging"
	"mediapress/internal/pipeline"
)

type runFlags struct {
	videoBitrate int
	audioBitrate int
	imageQuality int
	replace      bool
	accel        string
	batch        int
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [root]",
		Short: "Compress media files under a directory tree",
		Long: `Walks the given directory tree (or paths.root from the configuration),
re-encodes videos whose bitrate exceeds the threshold plus all JPEG images,
and installs each result with the original's metadata tags and timestamps.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyRunFlags(cfg, cmd.Flags().Changed, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}

			root := cfg.Paths.Root
			if len(args) == 1 {
				root = args[0]
			}
			root, err = resolveRoot(root)
			if err != nil {
				return err
			}

			// Nothing is touched until every external tool resolves.
			if err := deps.Verify(cfg.Tools); err != nil {
				return err
			}
			if err := deps.CheckWritable(root); err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:   cfg.Logging.Level,
				Format:  cfg.Logging.Format,
				LogFile: filepath.Join(cfg.Paths.LogDir, "mediapress.log"),
			})
			if err != nil {
				return err
			}

			requested, err := encode.ParseAcceleration(cfg.Encoding.Acceleration)
			if err != nil {
				return err
			}
			accel := encode.Resolve(requested, hwinfo.Classify(), logger)

			installer := install.New(
				encode.NewExiftool(cfg.Tools.Exiftool),
				cfg.Encoding.ReplaceOriginals,
				filepath.Join(root, cfg.Paths.OutputDirName),
				logger,
			)
			processor := &pipeline.FileProcessor{
				Prober:    pipeline.FFprobeProber{Binary: cfg.Tools.FFprobe},
				Encoder:   encode.NewFFmpeg(cfg.Tools.FFmpeg),
				Installer: installer,
				VideoPlan: encode.VideoPlan{
					Acceleration:     accel,
					VideoBitrateKbps: cfg.Video.BitrateThresholdKbps,
					AudioBitrateKbps: cfg.Video.AudioBitrateKbps,
				},
				ThresholdKbps: cfg.Video.BitrateThresholdKbps,
				ImageQuality:  cfg.Image.Quality,
				Logger:        logger,
			}

			runner, err := pipeline.NewRunner(pipeline.Options{
				Root:          root,
				OutputDirName: cfg.Paths.OutputDirName,
				Workers:       accel.Workers(cfg.Encoding.BatchSize),
				Processor:     processor,
				Logger:        logger,
				ProgressBar:   interactiveTerminal(os.Stderr),
			})
			if err != nil {
				return err
			}

			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.videoBitrate, "video-bitrate", 3000, "Video bitrate threshold and target in kbps")
	cmd.Flags().IntVar(&flags.audioBitrate, "audio-bitrate", 192, "Audio bitrate in kbps")
	cmd.Flags().IntVar(&flags.imageQuality, "image-quality", 7, "JPEG quality (1 best to 31 worst)")
	cmd.Flags().BoolVar(&flags.replace, "replace", true, "Replace originals in place instead of writing to the output directory")
	cmd.Flags().StringVar(&flags.accel, "accel", "nvidia", "Acceleration mode: nvidia, intel, or cpu")
	cmd.Flags().IntVar(&flags.batch, "batch", 2, "Parallel encodes in intel and cpu modes")

	return cmd
}

// applyRunFlags folds explicitly set flags over the loaded configuration.
// Flags left at their defaults never clobber config file values.
func applyRunFlags(cfg *config.Config, changed func(string) bool, flags runFlags) {
	if changed("video-bitrate") {
		cfg.Video.BitrateThresholdKbps = flags.videoBitrate
	}
	if changed("audio-bitrate") {
		cfg.Video.AudioBitrateKbps = flags.audioBitrate
	}
	if changed("image-quality") {
		cfg.Image.Quality = flags.imageQuality
	}
	if changed("replace") {
		cfg.Encoding.ReplaceOriginals = flags.replace
	}
	if changed("accel") {
		cfg.Encoding.Acceleration = flags.accel
	}
	if changed("batch") {
		cfg.Encoding.BatchSize = flags.batch
	}
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		return "", errors.New("no root directory: pass one as an argument or set paths.root in the config")
	}
	expanded, err := config.ExpandPath(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("inspect root %q: %w", expanded, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %q is not a directory", expanded)
	}
	return expanded, nil
}

func renderSummary(summary *pipeline.Summary) string {
	headers := []string{"Extension", "OK", "Skipped", "Errors"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight}

	var rows [][]string
	var ok, skipped, failed int
	for _, row := range summary.Rows() {
		rows = append(rows, []string{
			row.Ext,
			strconv.Itoa(row.OK),
			strconv.Itoa(row.Skipped),
			strconv.Itoa(row.Errors),
		})
		ok += row.OK
		skipped += row.Skipped
		failed += row.Errors
	}
	footer := []string{"Total", strconv.Itoa(ok), strconv.Itoa(skipped), strconv.Itoa(failed)}

	out := renderTable(headers, rows, footer, aligns)
	out += fmt.Sprintf("\nProcessed %d files in %s", summary.Total(), summary.Elapsed().Round(time.Millisecond))
	if in, enc := summary.Bytes(); in > enc {
		out += fmt.Sprintf("\nSpace saved: %s (%s before, %s after)",
			humanize.IBytes(uint64(in-enc)), humanize.IBytes(uint64(in)), humanize.IBytes(uint64(enc)))
	}
	return out
}

func interactiveTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
