// Package deps checks the external tools mediapress invokes. A run aborts
// before touching any file when a required tool is not invocable.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"mediapress/internal/config"
)

// ErrToolUnavailable marks a missing required external tool.
var ErrToolUnavailable = errors.New("external tool unavailable")

var command = exec.Command

// Requirement defines an external dependency mediapress relies on.
// VersionArg, when set, is invoked to prove the binary actually runs and not
// merely exists on disk.
type Requirement struct {
	Name        string
	Command     string
	Description string
	VersionArg  string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements returns the tool set for a compression run using the
// configured binaries.
func Requirements(tools config.Tools) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: tools.FFmpeg, Description: "Video and image re-encoding", VersionArg: "-version"},
		{Name: "FFprobe", Command: tools.FFprobe, Description: "Bitrate inspection", VersionArg: "-version"},
		{Name: "ExifTool", Command: tools.Exiftool, Description: "Metadata tag copying", VersionArg: "-ver"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		if req.VersionArg != "" {
			output, err := command(cmd, req.VersionArg).Output()
			if err != nil {
				status.Detail = fmt.Sprintf("binary %q found but not invocable: %v", cmd, err)
				results = append(results, status)
				continue
			}
			status.Detail = firstLine(output)
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify returns an error naming every missing required tool. The error
// wraps ErrToolUnavailable so callers can treat it as fatal.
func Verify(tools config.Tools) error {
	var missing []string
	for _, status := range CheckBinaries(Requirements(tools)) {
		if !status.Available {
			missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s; install the tools or set their paths in the [tools] config section",
		ErrToolUnavailable, strings.Join(missing, ", "))
}

func firstLine(output []byte) string {
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}

// CheckWritable verifies the process can create and rename files inside dir.
// Installs rename into the tree, so a read-only root must fail preflight
// rather than every individual file.
func CheckWritable(dir string) error {
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	return nil
}
