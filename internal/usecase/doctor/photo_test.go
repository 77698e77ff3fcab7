package doctor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadPhoto(t *testing.T) {
	repo := newFakeDoctors(house)
	objects := &fakeObjects{}

	d, err := NewUploadPhoto(repo, objects, &recordingAudit{}).
		Execute(context.Background(), "admin", house.ID, bytes.NewReader(pngBytes(t, 800, 600)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(objects.keys) != 1 || !strings.HasPrefix(objects.keys[0], "doctors/"+house.ID+"/") {
		t.Fatalf("unexpected keys: %v", objects.keys)
	}
	if !strings.HasSuffix(d.PhotoURL, ".webp") || repo.items[house.ID].PhotoURL != d.PhotoURL {
		t.Errorf("photo url not stored: %q", d.PhotoURL)
	}
}

func TestUploadPhotoRejectsGarbage(t *testing.T) {
	repo := newFakeDoctors(house)

	_, err := NewUploadPhoto(repo, &fakeObjects{}, &recordingAudit{}).
		Execute(context.Background(), "admin", house.ID, strings.NewReader("not an image"))
	if !httperr.IsBusiness(err, "invalid_image") {
		t.Fatalf("got %v, want invalid_image", err)
	}
	if repo.updates != 0 {
		t.Error("doctor must not be updated")
	}
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	_, err := NewUploadPhoto(newFakeDoctors(house), nil, &recordingAudit{}).
		Execute(context.Background(), "admin", house.ID, bytes.NewReader(pngBytes(t, 10, 10)))
	if httperr.KindOf(err) != httperr.KindUnavailable {
		t.Fatalf("got %v, want unavailable", err)
	}
}
