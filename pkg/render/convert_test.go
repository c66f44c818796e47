package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/lsr/pkg/errors"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestToPNGInvalidScale(t *testing.T) {
	for _, scale := range []float64{0, -1} {
		if _, err := ToPNG(context.Background(), []byte(square), scale); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ToPNG(scale=%v) error = %v, want INVALID_INPUT", scale, err)
		}
	}
}

func TestConvert(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()

	png, err := ToPNG(ctx, []byte(square), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("not a PNG: %q", png[:min(len(png), 8)])
	}

	pdf, err := ToPDF(ctx, []byte(square))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("not a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestConvertMissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := ToPDF(context.Background(), []byte(square)); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}
