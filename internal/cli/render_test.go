package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", "collage"},
		{"out", "out"},
		{"out.png", "out"},
		{"out.jpg", "out"},
		{"out.pdf", "out"},
		{"out.backup", "out.backup"}, // not a format extension
		{filepath.Join("dir", "out.png"), filepath.Join("dir", "out")},
	}

	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestExpandRefs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	refs, err := expandRefs([]string{dir, "extra.png", "https://example.com/c.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		"extra.png",
		"https://example.com/c.jpg",
	}
	if len(refs) != len(want) {
		t.Fatalf("expandRefs = %v, want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("expandRefs[%d] = %q, want %q", i, refs[i], want[i])
		}
	}
}

func TestExpandRefsEmptyDir(t *testing.T) {
	if _, err := expandRefs([]string{t.TempDir()}); err == nil {
		t.Error("expected error for directory without photos")
	}
}
