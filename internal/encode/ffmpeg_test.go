package encode

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"testing"
)

// captureCommands records invocations instead of executing real encoders.
func captureCommands(t *testing.T, fail bool) *[][]string {
	t.Helper()
	var calls [][]string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		call := append([]string{name}, args...)
		calls = append(calls, call)
		if fail {
			return exec.CommandContext(ctx, "false")
		}
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { commandContext = original })
	return &calls
}

func TestVideoArgsPerAcceleration(t *testing.T) {
	plan := VideoPlan{VideoBitrateKbps: 3000, AudioBitrateKbps: 192}

	plan.Acceleration = AccelNvidia
	args := videoArgs("/in.mp4", "/in_tmp.mp4", plan)
	want := []string{
		"-loglevel", "quiet", "-y",
		"-i", "/in.mp4",
		"-map_metadata", "0",
		"-movflags", "use_metadata_tags",
		"-c:v", "h264_nvenc",
		"-b:v", "3000k",
		"-c:a", "aac",
		"-b:a", "192k",
		"-tag:v", "avc1",
		"/in_tmp.mp4",
	}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("nvidia args:\n got %v\nwant %v", args, want)
	}

	plan.Acceleration = AccelCPU
	args = videoArgs("/in.mp4", "/in_tmp.mp4", plan)
	wantTail := []string{"-tag:v", "hvc1", "-x265-params", "log-level=none", "/in_tmp.mp4"}
	if !reflect.DeepEqual(args[len(args)-len(wantTail):], wantTail) {
		t.Fatalf("cpu args tail: %v", args)
	}
}

func TestImageArgs(t *testing.T) {
	args := imageArgs("/p.jpg", "/p_tmp.jpg", 7)
	want := []string{"-loglevel", "quiet", "-y", "-i", "/p.jpg", "-q:v", "7", "-frames:v", "1", "/p_tmp.jpg"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("image args:\n got %v\nwant %v", args, want)
	}
}

func TestEncodeVideoWrapsFailuresAsInvocation(t *testing.T) {
	captureCommands(t, true)
	err := NewFFmpeg("ffmpeg").EncodeVideo(context.Background(), "/in.mp4", "/out.mp4", VideoPlan{Acceleration: AccelCPU})
	if !errors.Is(err, ErrInvocation) {
		t.Fatalf("expected ErrInvocation, got %v", err)
	}
}

func TestEncodeImageInvokesConfiguredBinary(t *testing.T) {
	calls := captureCommands(t, false)
	if err := NewFFmpeg("/opt/ffmpeg").EncodeImage(context.Background(), "/p.jpg", "/p_tmp.jpg", 5); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0][0] != "/opt/ffmpeg" {
		t.Fatalf("unexpected invocation: %v", *calls)
	}
}

func TestCopyTagsArgumentOrder(t *testing.T) {
	calls := captureCommands(t, false)
	if err := NewExiftool("exiftool").CopyTags(context.Background(), "/orig.mp4", "/temp.mp4"); err != nil {
		t.Fatalf("copy tags: %v", err)
	}
	want := []string{"exiftool", "-TagsFromFile", "/orig.mp4", "-all:all>all:all", "/temp.mp4", "-overwrite_original"}
	if !reflect.DeepEqual((*calls)[0], want) {
		t.Fatalf("exiftool invocation:\n got %v\nwant %v", (*calls)[0], want)
	}
}

func TestNeedsVideoEncodeIsStrict(t *testing.T) {
	if NeedsVideoEncode(3000, 3000) {
		t.Fatal("equal to threshold must skip")
	}
	if !NeedsVideoEncode(3001, 3000) {
		t.Fatal("above threshold must encode")
	}
	if NeedsVideoEncode(0, 3000) {
		t.Fatal("unknown bitrate must skip")
	}
}

func TestTempPathKeepsExtension(t *testing.T) {
	if got := TempPath("/media/video.mp4"); got != "/media/video_tmp.mp4" {
		t.Fatalf("temp path: %q", got)
	}
	if got := TempPath("/media/photo.JPG"); got != "/media/photo_tmp.JPG" {
		t.Fatalf("temp path: %q", got)
	}
}
