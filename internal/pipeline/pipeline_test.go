package pipeline

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	stdjpeg "image/jpeg"
	"image/png"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/luka-bacic/img-to-css/internal/gradient"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// stripes returns a 3xN image where row y is filled with color (y, 255-y, 0, 255).
func stripes(height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, height))
	for y := 0; y < height; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(y), uint8(255 - y), 0, 255})
		}
	}
	return img
}

func TestFullPipeline(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})

	result, err := Run(encodePNG(t, src), Options{})
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}

	r := result.Replica
	if r.Width != 2 || r.Height != 1 || len(r.Rows) != 1 {
		t.Fatalf("unexpected replica: %dx%d, %d rows", r.Width, r.Height, len(r.Rows))
	}
	want := "to right , rgba(0, 0, 0, 255) 0px, rgba(0, 0, 0, 255) 1px, " +
		"rgba(255, 255, 255, 255) 1px, rgba(255, 255, 255, 255) 2px"
	if r.Rows[0] != want {
		t.Errorf("row 0:\n got  %q\n want %q", r.Rows[0], want)
	}
	if result.SrcFormat != "png" || r.Format != "rgba" {
		t.Errorf("src format %q, color format %q", result.SrcFormat, r.Format)
	}
	if result.Profile != nil {
		t.Error("PNG input should carry no profile")
	}
}

func TestRowOrderWithWorkers(t *testing.T) {
	const height = 120
	data := encodePNG(t, stripes(height))

	for _, workers := range []int{1, 4, 32} {
		result, err := Run(data, Options{Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		rows := result.Replica.Rows
		if len(rows) != height {
			t.Fatalf("workers=%d: %d rows", workers, len(rows))
		}
		for y, row := range rows {
			c := fmt.Sprintf("rgba(%d, %d, 0, 255)", y, 255-y)
			if strings.Count(row, c) != 6 {
				t.Errorf("workers=%d: row %d does not hold its own color: %q", workers, y, row)
				break
			}
		}
	}
}

func TestRunFormatAndScale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}

	result, err := Run(encodePNG(t, src), Options{Format: gradient.FormatHex, MaxWidth: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	r := result.Replica
	if r.Width != 4 || r.Height != 2 {
		t.Errorf("scaled to %dx%d, want 4x2", r.Width, r.Height)
	}
	if result.SrcWidth != 8 || result.SrcHeight != 4 {
		t.Errorf("source %dx%d", result.SrcWidth, result.SrcHeight)
	}
	if !strings.Contains(r.Rows[0], "#") || !strings.HasSuffix(r.Rows[0], " 4px") {
		t.Errorf("row 0 = %q", r.Rows[0])
	}
}

func TestRunDecodeError(t *testing.T) {
	if _, err := Run([]byte("definitely not an image"), Options{}); err == nil {
		t.Fatal("expected decode error")
	}
}

// cmykProfile builds a bare ICC header declaring a CMYK output profile.
func cmykProfile() []byte {
	data := make([]byte, 132)
	binary.BigEndian.PutUint32(data[0:4], uint32(len(data)))
	data[8] = 2
	copy(data[12:16], "prtr")
	copy(data[16:20], "CMYK")
	copy(data[20:24], "Lab ")
	binary.BigEndian.PutUint32(data[36:40], 0x61637370)
	return data
}

func TestRunWarnsOnNonRGBProfile(t *testing.T) {
	var img bytes.Buffer
	if err := stdjpeg.Encode(&img, stripes(2), nil); err != nil {
		t.Fatalf("stdjpeg.Encode: %v", err)
	}
	payload := append([]byte("ICC_PROFILE\x00\x01\x01"), cmykProfile()...)
	seg := []byte{0xFF, 0xE2, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	data := append([]byte{0xFF, 0xD8}, seg...)
	data = append(data, payload...)
	data = append(data, img.Bytes()[2:]...)

	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})))

	result, err := Run(data, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Profile == nil || result.Profile.ColorSpace != "CMYK" {
		t.Fatalf("expected CMYK profile, got %+v", result.Profile)
	}
	if !strings.Contains(logs.String(), "not RGB") {
		t.Errorf("expected a warning, got: %s", logs.String())
	}
}

func TestEncodeBuffer(t *testing.T) {
	buf := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 9, 9, 9, 0,
	}
	r, err := EncodeBuffer(buf, 2, 2, Options{Workers: 2})
	if err != nil {
		t.Fatalf("EncodeBuffer: %v", err)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(r.Rows))
	}
	if !strings.HasPrefix(r.Rows[1], "to right , rgba(0, 0, 255, 255) 0px") {
		t.Errorf("row 1 = %q", r.Rows[1])
	}
}

func TestEncodeBufferShort(t *testing.T) {
	full := make([]byte, 2*3*4)

	_, err := EncodeBuffer(full[:12], 2, 3, Options{})
	var mpe *gradient.MissingPixelError
	if !errors.As(err, &mpe) {
		t.Fatalf("expected MissingPixelError, got %v", err)
	}
	if mpe.Row != 1 || mpe.Column != 1 {
		t.Errorf("got row %d column %d, want row 1 column 1", mpe.Row, mpe.Column)
	}

	_, err = EncodeBuffer(full[:13], 2, 3, Options{})
	var ice *gradient.InvalidChannelError
	if !errors.As(err, &ice) {
		t.Fatalf("expected InvalidChannelError, got %v", err)
	}
	if ice.Row != 1 || ice.Column != 1 || ice.Channel != 1 {
		t.Errorf("got row %d column %d channel %d", ice.Row, ice.Column, ice.Channel)
	}
}

func TestEncodeBufferRejects(t *testing.T) {
	if _, err := EncodeBuffer(make([]byte, 20), 2, 2, Options{}); err == nil {
		t.Error("expected error for oversized buffer")
	}
	if _, err := EncodeBuffer(nil, -1, 2, Options{}); err == nil {
		t.Error("expected error for negative width")
	}
	r, err := EncodeBuffer(nil, 0, 0, Options{})
	if err != nil || len(r.Rows) != 0 {
		t.Errorf("empty image: %v, %v", r, err)
	}
}

func TestEncodeBufferHugeHeight(t *testing.T) {
	_, err := EncodeBuffer([]byte{1, 2, 3, 4}, 1, 1<<60, Options{})
	var mpe *gradient.MissingPixelError
	if !errors.As(err, &mpe) {
		t.Fatalf("expected MissingPixelError, got %v", err)
	}
	if mpe.Row != 1 || mpe.Column != 0 {
		t.Errorf("got row %d column %d, want row 1 column 0", mpe.Row, mpe.Column)
	}
}

func TestEncodeBufferOverflowingDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"area overflows", 1 << 40, 1 << 40},
		{"stride overflows", math.MaxInt, 1},
		{"zero width with rows", 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeBuffer([]byte{1, 2, 3, 4}, tt.width, tt.height, Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if strings.Contains(err.Error(), " -") {
				t.Errorf("error reports a negative size: %v", err)
			}
		})
	}
}

func TestLowestFailingRowReported(t *testing.T) {
	const width, height, firstBad = 2, 64, 3
	good := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	short := []byte{1, 2, 3, 4}
	row := func(y int) ([]byte, error) {
		if y >= firstBad {
			return short, nil
		}
		return good, nil
	}

	for i := 0; i < 200; i++ {
		_, err := encodeRows(width, height, row, gradient.Encoder{}, 8)
		var mpe *gradient.MissingPixelError
		if !errors.As(err, &mpe) {
			t.Fatalf("run %d: expected MissingPixelError, got %v", i, err)
		}
		if mpe.Row != firstBad {
			t.Fatalf("run %d: reported row %d, want %d", i, mpe.Row, firstBad)
		}
	}
}

func TestUnknownColorFormat(t *testing.T) {
	opts := Options{Format: gradient.Format(7)}
	if _, err := Run(encodePNG(t, stripes(1)), opts); err == nil {
		t.Error("Run: expected error for unknown color format")
	}
	if _, err := EncodeBuffer([]byte{1, 2, 3, 4}, 1, 1, opts); err == nil {
		t.Error("EncodeBuffer: expected error for unknown color format")
	}
}
