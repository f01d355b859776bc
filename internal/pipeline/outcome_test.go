package pipeline

import (
	"testing"
	"time"

	"mediapress/internal/media"
)

func TestSummaryRowsOrderIsDeterministic(t *testing.T) {
	s := newSummary(time.Now())
	for _, ext := range []string{".zzz", ".aaa", ".mkv"} {
		s.record(Outcome{File: media.File{Ext: ext}, Status: StatusSkipped})
	}

	rows := s.Rows()
	supported := media.SupportedExtensions()
	if len(rows) != len(supported)+3 {
		t.Fatalf("rows = %d, want %d", len(rows), len(supported)+3)
	}
	for i, ext := range supported {
		if rows[i].Ext != ext {
			t.Fatalf("row %d = %s, want %s", i, rows[i].Ext, ext)
		}
	}
	wantTail := []string{".aaa", ".mkv", ".zzz"}
	for i, ext := range wantTail {
		if got := rows[len(supported)+i].Ext; got != ext {
			t.Fatalf("trailing row %d = %s, want %s", i, got, ext)
		}
	}
}
