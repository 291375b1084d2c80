package debug

import "testing"

func TestRasterizeSize(t *testing.T) {
	img := Rasterize([]string{"ab", "abcd"})
	b := img.Bounds()
	if b.Dx() != 4*7+2*Padding || b.Dy() != 2*13+2*Padding {
		t.Fatalf("expected %dx%d, got %dx%d", 4*7+2*Padding, 2*13+2*Padding, b.Dx(), b.Dy())
	}
	if img.RGBAAt(0, 0) != Background {
		t.Errorf("corner should be background, got %v", img.RGBAAt(0, 0))
	}
}

func TestRasterizeDrawsGlyphs(t *testing.T) {
	img := Rasterize([]string{"moon intensity 0.500"})
	lit := 0
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.RGBAAt(x, y) == Foreground {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected glyph pixels in the foreground colour")
	}
	for x := 0; x < img.Bounds().Dx(); x++ {
		if img.RGBAAt(x, 0) != Background {
			t.Fatalf("padding row touched at x=%d", x)
		}
	}
}

func TestRasterizeEmpty(t *testing.T) {
	img := Rasterize(nil)
	if img.Bounds().Dx() != 2*Padding || img.Bounds().Dy() != 2*Padding {
		t.Errorf("empty block: got %v", img.Bounds())
	}
}
