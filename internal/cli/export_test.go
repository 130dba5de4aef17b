package cli

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.NRGBA{R: 0x80, G: 0x40, A: 0xFF})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "collage.png")
	writeTestImage(t, input)

	c := New(io.Discard, LogInfo)
	if err := c.runExport(input, []string{"jpeg", "pdf"}, "", 0, 0); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"collage.jpg", "collage.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestRunExportCustomOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "collage.png")
	writeTestImage(t, input)

	out := filepath.Join(dir, "print.pdf")
	c := New(io.Discard, LogInfo)
	if err := c.runExport(input, []string{"pdf"}, out, 150, 0); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s to exist: %v", out, err)
	}
}

func TestRunExportRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "collage.png")
	writeTestImage(t, input)

	c := New(io.Discard, LogInfo)
	if err := c.runExport(input, []string{"gif"}, "", 0, 0); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRunExportMissingInput(t *testing.T) {
	c := New(io.Discard, LogInfo)
	err := c.runExport(filepath.Join(t.TempDir(), "absent.png"), []string{"png"}, "", 0, 0)
	if err == nil {
		t.Error("expected error for missing input")
	}
}
