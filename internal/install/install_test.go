package install

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediapress/internal/logging"
	"mediapress/internal/testsupport"
)

// recordingTagCopier captures the tag-source contents at call time so tests
// can prove the copy ran before any destructive rename.
type recordingTagCopier struct {
	srcPath     string
	dstPath     string
	srcContents string
	err         error
}

func (r *recordingTagCopier) CopyTags(_ context.Context, srcPath, dstPath string) error {
	r.srcPath = srcPath
	r.dstPath = dstPath
	if data, err := os.ReadFile(srcPath); err == nil {
		r.srcContents = string(data)
	}
	return r.err
}

func TestInstallReplaceMode(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "clip.mp4")
	temp := filepath.Join(dir, "clip_tmp.mp4")
	testsupport.WriteString(t, original, "original-bytes")
	testsupport.WriteString(t, temp, "encoded-bytes")

	past := time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(original, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	tags := &recordingTagCopier{}
	installer := New(tags, true, "", logging.NewNop())
	final := installer.Install(context.Background(), original, temp)

	if final != original {
		t.Fatalf("final path = %q, want %q", final, original)
	}
	data, err := os.ReadFile(original)
	if err != nil || string(data) != "encoded-bytes" {
		t.Fatalf("original not replaced: %q err=%v", data, err)
	}
	if _, err := os.Stat(temp); !os.IsNotExist(err) {
		t.Fatal("temporary output left behind")
	}

	info, err := os.Stat(original)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(past) {
		t.Fatalf("mtime not restored: %v", info.ModTime())
	}
}

func TestInstallCopiesTagsFromTrueOriginal(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "clip.mp4")
	temp := filepath.Join(dir, "clip_tmp.mp4")
	testsupport.WriteString(t, original, "original-bytes")
	testsupport.WriteString(t, temp, "encoded-bytes")

	tags := &recordingTagCopier{}
	installer := New(tags, true, "", logging.NewNop())
	installer.Install(context.Background(), original, temp)

	if tags.srcPath != original || tags.dstPath != temp {
		t.Fatalf("tag copy endpoints: src=%q dst=%q", tags.srcPath, tags.dstPath)
	}
	// The rename has already happened by the time the test inspects the
	// tree, so the recorded contents are the proof of ordering.
	if tags.srcContents != "original-bytes" {
		t.Fatalf("tag source read %q, want pre-rename original content", tags.srcContents)
	}
}

func TestInstallOutputDirectoryMode(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "sub", "photo.jpg")
	temp := filepath.Join(dir, "sub", "photo_tmp.jpg")
	outputDir := filepath.Join(dir, "Compressed")
	testsupport.WriteString(t, original, "original-bytes")
	testsupport.WriteString(t, temp, "encoded-bytes")

	installer := New(&recordingTagCopier{}, false, outputDir, logging.NewNop())
	final := installer.Install(context.Background(), original, temp)

	want := filepath.Join(outputDir, "photo.jpg")
	if final != want {
		t.Fatalf("final path = %q, want %q", final, want)
	}
	data, err := os.ReadFile(original)
	if err != nil || string(data) != "original-bytes" {
		t.Fatalf("original modified in output-dir mode: %q err=%v", data, err)
	}
	if data, err := os.ReadFile(want); err != nil || string(data) != "encoded-bytes" {
		t.Fatalf("output not installed: %q err=%v", data, err)
	}
}

func TestInstallSurvivesTagCopyFailure(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "clip.mp4")
	temp := filepath.Join(dir, "clip_tmp.mp4")
	testsupport.WriteString(t, original, "original-bytes")
	testsupport.WriteString(t, temp, "encoded-bytes")

	tags := &recordingTagCopier{err: errors.New("exiftool exploded")}
	installer := New(tags, true, "", logging.NewNop())
	final := installer.Install(context.Background(), original, temp)

	if final != original {
		t.Fatalf("install did not complete after tag failure: %q", final)
	}
	data, _ := os.ReadFile(original)
	if string(data) != "encoded-bytes" {
		t.Fatalf("encoded output not installed: %q", data)
	}
}

func TestInstallLeavesArtifactWhenPlaceFails(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "clip.mp4")
	temp := filepath.Join(dir, "clip_tmp.mp4")
	testsupport.WriteString(t, original, "original-bytes")
	testsupport.WriteString(t, temp, "encoded-bytes")

	// An output dir path that collides with an existing file forces the
	// MkdirAll inside place to fail.
	blocked := filepath.Join(dir, "blocked")
	testsupport.WriteString(t, blocked, "file, not dir")

	installer := New(&recordingTagCopier{}, false, blocked, logging.NewNop())
	final := installer.Install(context.Background(), original, temp)

	if final != temp {
		t.Fatalf("expected artifact to stay at temp path, got %q", final)
	}
	data, _ := os.ReadFile(original)
	if string(data) != "original-bytes" {
		t.Fatal("original was disturbed by failed install")
	}
}
