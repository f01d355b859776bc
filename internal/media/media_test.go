package media

import (
	"path/filepath"
	"testing"

	"mediapress/internal/testsupport"
)

func TestNewFileClassifiesExtensions(t *testing.T) {
	cases := []struct {
		path string
		kind Kind
		ok   bool
	}{
		{"/a/movie.mp4", KindVideo, true},
		{"/a/MOVIE.MP4", KindVideo, true},
		{"/a/photo.jpg", KindImage, true},
		{"/a/photo.JPEG", KindImage, true},
		{"/a/shot.png", KindImage, true},
		{"/a/notes.txt", "", false},
		{"/a/noext", "", false},
	}
	for _, tc := range cases {
		file, ok := NewFile(tc.path)
		if ok != tc.ok {
			t.Fatalf("NewFile(%q) ok = %v, want %v", tc.path, ok, tc.ok)
		}
		if ok && file.Kind != tc.kind {
			t.Fatalf("NewFile(%q) kind = %v, want %v", tc.path, file.Kind, tc.kind)
		}
	}
}

func TestEncodableExcludesPNG(t *testing.T) {
	png, _ := NewFile("/a/shot.png")
	if png.Encodable() {
		t.Fatal("png must be recognized but not encodable")
	}
	mp4, _ := NewFile("/a/clip.mp4")
	if !mp4.Encodable() {
		t.Fatal("mp4 must be encodable")
	}
}

func TestDiscoverFindsSupportedFiles(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mp4"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "sub", "b.JPG"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "sub", "deep", "c.jpeg"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "skip.txt"), 10)

	files, err := Discover(root, "Compressed")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %+v", len(files), files)
	}
	for _, f := range files {
		if f.Ext != ".mp4" && f.Ext != ".jpg" && f.Ext != ".jpeg" {
			t.Fatalf("unexpected extension %q", f.Ext)
		}
	}
}

func TestDiscoverPrunesToolDirectories(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "keep.mp4"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "FFmpeg", "bin", "sample.mp4"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "tools", "exiftool", "test.jpg"), 10)

	files, err := Discover(root, "Compressed")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "keep.mp4" {
		t.Fatalf("tool directories not pruned: %+v", files)
	}
}

func TestDiscoverPrunesOutputDirectory(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "keep.jpg"), 10)
	testsupport.WriteFile(t, filepath.Join(root, "Compressed", "old.jpg"), 10)

	files, err := Discover(root, "Compressed")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "keep.jpg" {
		t.Fatalf("output directory not pruned: %+v", files)
	}
}
