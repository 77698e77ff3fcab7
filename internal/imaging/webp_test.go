package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestToWebPDownscales(t *testing.T) {
	out, err := ToWebP(pngOf(t, 1024, 256), 512)
	if err != nil {
		t.Fatalf("ToWebP() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("RIFF")) || !bytes.Contains(out[:16], []byte("WEBP")) {
		t.Fatal("output is not a WebP container")
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 512 || cfg.Height != 128 {
		t.Errorf("size = %dx%d, want 512x128", cfg.Width, cfg.Height)
	}
}

func TestFitKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 300))
	if Fit(img, 512) != image.Image(img) {
		t.Error("small image should be returned as is")
	}

	tall := Fit(image.NewRGBA(image.Rect(0, 0, 300, 900)), 300)
	if b := tall.Bounds(); b.Dx() != 100 || b.Dy() != 300 {
		t.Errorf("tall fit = %v", b)
	}
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("definitely not an image"), 0)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("error = %v, want ErrUnsupportedImage", err)
	}
}
