package loader

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"haunted-house/scene"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	// Top row red, bottom row blue.
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
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

func TestLoadDecodesAndFlips(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "door", "color.png"))

	l := New(root, 2)
	tex := l.Load("door/color.png")
	if tex == nil {
		t.Fatal("Load returned nil")
	}
	// Sampling parameters can be set before the pixels arrive.
	tex.SetRepeatWrapping(8, 8)
	l.Wait()

	w, h, px, ok := tex.Image()
	if !ok {
		t.Fatalf("expected ready texture, state %v err %v", tex.State(), tex.Err())
	}
	if w != 2 || h != 2 || len(px) != 16 {
		t.Fatalf("expected 2x2 RGBA, got %dx%d len %d", w, h, len(px))
	}
	// First row in memory is the bottom of the image.
	if px[0] != 0 || px[2] != 255 {
		t.Errorf("expected blue first row, got %v", px[:4])
	}
	if px[8] != 255 || px[10] != 0 {
		t.Errorf("expected red last row, got %v", px[8:12])
	}
	if tex.Repeat.X() != 8 {
		t.Errorf("repeat lost after resolve: %v", tex.Repeat)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestLoadCachesByPath(t *testing.T) {
	l := New(t.TempDir(), 1)
	defer l.Close()
	a := l.Load("missing.jpg")
	b := l.Load("missing.jpg")
	if a != b {
		t.Error("expected the same handle for the same path")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	l := New(t.TempDir(), 1)
	tex := l.Load("grass/color.jpg")
	l.Wait()
	if tex.State() != scene.TextureFailed {
		t.Errorf("expected failed, got %v", tex.State())
	}
	if _, _, _, ok := tex.Image(); ok {
		t.Error("failed texture should not expose pixels")
	}
	_, _, failed := l.Stats()
	if failed != 1 {
		t.Errorf("Stats: expected 1 failed, got %d", failed)
	}
	l.Close()
}

func TestLoadCorruptFileFails(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bad.jpg"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := New(root, 1)
	tex := l.Load("bad.jpg")
	l.Wait()
	if tex.State() != scene.TextureFailed {
		t.Errorf("expected failed, got %v", tex.State())
	}
	l.Close()
}

func TestCloseRejectsNewLoads(t *testing.T) {
	l := New(t.TempDir(), 1)
	if err := l.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := l.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close: expected ErrClosed, got %v", err)
	}
	tex := l.Load("door/alpha.jpg")
	if !errors.Is(tex.Err(), ErrClosed) {
		t.Errorf("Load after Close: expected ErrClosed, got %v", tex.Err())
	}
}

func TestFailingLoader(t *testing.T) {
	var l scene.TextureLoader = Failing{}
	tex := l.Load("bricks/color.jpg")
	if tex.State() != scene.TextureFailed || tex.Err() == nil {
		t.Errorf("expected failed texture with error, got %v %v", tex.State(), tex.Err())
	}
	if tex.Path != "bricks/color.jpg" {
		t.Errorf("path: got %q", tex.Path)
	}
}
