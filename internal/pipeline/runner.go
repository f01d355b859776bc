package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"mediapress/internal/logging"
	"mediapress/internal/media"
)

// Phase is the run state machine. A run only moves forward; Done is
// terminal and exposes the final summary.
type Phase string

const (
	PhaseCollecting  Phase = "collecting"
	PhaseRunning     Phase = "running"
	PhaseSummarizing Phase = "summarizing"
	PhaseDone        Phase = "done"
)

const lockFileName = ".mediapress.lock"

// Options configures a Runner.
type Options struct {
	Root          string
	OutputDirName string
	// Workers is the concurrency degree: 1 when the hardware encoder is
	// an exclusive resource, the batch size otherwise.
	Workers   int
	Processor Processor
	Logger    *slog.Logger
	// ProgressBar renders an interactive bar in addition to the per-file
	// progress log lines. Enable only when attached to a terminal.
	ProgressBar bool
}

// Runner executes one batch compression run.
type Runner struct {
	opts   Options
	logger *slog.Logger

	mu    sync.Mutex
	phase Phase
}

// NewRunner validates options and builds a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Root == "" {
		return nil, errors.New("pipeline: root directory required")
	}
	if opts.Processor == nil {
		return nil, errors.New("pipeline: processor required")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		opts:   opts,
		logger: logging.WithComponent(opts.Logger, "pipeline"),
		phase:  PhaseCollecting,
	}, nil
}

// Phase reports the run's current state.
func (r *Runner) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Runner) setPhase(phase Phase) {
	r.mu.Lock()
	r.phase = phase
	r.mu.Unlock()
}

// Run discovers files and processes each one exactly once. Per-file
// failures become outcomes; only discovery and lock acquisition can fail
// the run itself. The run holds a lock file under the root so two runs
// cannot race on installs in the same tree.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	lock := flock.New(filepath.Join(r.opts.Root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is already processing %s", r.opts.Root)
	}
	// The lock file stays on disk after release: unlinking it would orphan
	// a lock another run may have acquired between the unlock and the
	// remove, letting a third run lock a recreated file at the same path.
	defer func() {
		_ = lock.Unlock()
	}()

	started := time.Now()
	summary := newSummary(started)

	files, err := media.Discover(r.opts.Root, r.opts.OutputDirName)
	if err != nil {
		return nil, fmt.Errorf("discover media files: %w", err)
	}
	if len(files) == 0 {
		logger.Info("no media files found to process")
		summary.finalize(time.Now())
		r.setPhase(PhaseDone)
		return summary, nil
	}

	r.setPhase(PhaseRunning)
	logger.Info("run started",
		logging.Args(logging.Int("files", len(files)), logging.Int("workers", r.opts.Workers))...)

	work := make(chan media.File, len(files))
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range work {
				results <- r.opts.Processor.Process(ctx, file)
			}
		}()
	}
	go func() {
		for _, file := range files {
			work <- file
		}
		close(work)
		wg.Wait()
		close(results)
	}()

	var bar *progressbar.ProgressBar
	if r.opts.ProgressBar {
		bar = newProgressBar(len(files))
	}

	completed := 0
	for outcome := range results {
		summary.record(outcome)
		completed++
		r.reportProgress(logger, outcome, completed, len(files))
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	r.setPhase(PhaseSummarizing)
	summary.finalize(time.Now())
	r.setPhase(PhaseDone)

	in, out := summary.Bytes()
	logger.Info("run complete",
		logging.Args(
			logging.Int("files", summary.Total()),
			logging.Duration("elapsed", summary.Elapsed()),
			logging.Int64("bytes_in", in),
			logging.Int64("bytes_out", out),
		)...)
	return summary, nil
}

// reportProgress emits one line per completed file with the percentage of
// the run finished so far, regardless of which worker finished.
func (r *Runner) reportProgress(logger *slog.Logger, outcome Outcome, completed, total int) {
	percent := fmt.Sprintf("%05.2f%%", float64(completed)/float64(total)*100)
	attrs := []logging.Attr{
		logging.String("progress", percent),
		logging.String("file", outcome.File.Path),
		logging.String("status", string(outcome.Status)),
	}
	if outcome.Err != nil {
		logger.Error("file failed", logging.Args(append(attrs, logging.Error(outcome.Err))...)...)
		return
	}
	logger.Info("file processed", logging.Args(attrs...)...)
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Compressing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
