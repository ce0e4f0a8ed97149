package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/luka-bacic/img-to-css/internal/gradient"
	"github.com/luka-bacic/img-to-css/internal/icc"
	"github.com/luka-bacic/img-to-css/internal/ir"
	"github.com/luka-bacic/img-to-css/internal/jpeg"
	"github.com/luka-bacic/img-to-css/internal/pixel"
	"github.com/luka-bacic/img-to-css/internal/raster"
	"golang.org/x/sync/errgroup"
)

// Options controls the image → gradient replica pipeline.
type Options struct {
	Format   gradient.Format // color format for stops
	MaxWidth int             // optional downscale before encoding, 0 = off
	Workers  int             // parallel row encoders, 0 = GOMAXPROCS
}

// Result holds the output of a pipeline run.
type Result struct {
	Replica   *ir.Replica
	SrcWidth  int
	SrcHeight int
	SrcFormat string
	Profile   *icc.ProfileInfo // embedded ICC profile, nil if absent
}

// Run executes the full pipeline: decode → per-row chunk → per-row encode.
// Any row error aborts the whole image; no partial replica is returned.
func Run(data []byte, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := Logger()

	// 1. Decode
	img, err := raster.Decode(bytes.NewReader(data), raster.Options{MaxWidth: opts.MaxWidth})
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	log.Debug("decoded image",
		"format", img.Format,
		"src_width", img.SrcWidth, "src_height", img.SrcHeight,
		"width", img.Width, "height", img.Height)

	// 2. Embedded profile (diagnostic only, pixels are not transformed)
	profile := inspectProfile(data)

	// 3. Encode rows
	enc := gradient.Encoder{Format: opts.Format}
	rows, err := encodeRows(img.Width, img.Height, img.Row, enc, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	log.Info("built gradient replica",
		"width", img.Width, "height", img.Height, "color_format", opts.Format.String())

	return &Result{
		Replica: &ir.Replica{
			Width:  img.Width,
			Height: img.Height,
			Format: opts.Format.String(),
			Rows:   rows,
		},
		SrcWidth:  img.SrcWidth,
		SrcHeight: img.SrcHeight,
		SrcFormat: img.Format,
		Profile:   profile,
	}, nil
}

// EncodeBuffer encodes a raw row-major RGBA buffer of the given size.
// A buffer shorter than width*height*4 fails with the encoder's
// missing-pixel or invalid-channel error for the first incomplete row;
// rows past it are never scheduled.
func EncodeBuffer(buf []byte, width, height int, opts Options) (*ir.Replica, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if width == 0 && height > 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d: zero-width image with rows", width, height)
	}
	if width > math.MaxInt/pixel.TupleSize {
		return nil, fmt.Errorf("image %dx%d too large", width, height)
	}
	stride := width * pixel.TupleSize
	if stride != 0 && height > math.MaxInt/stride {
		return nil, fmt.Errorf("image %dx%d too large", width, height)
	}
	if expected := stride * height; len(buf) > expected {
		return nil, fmt.Errorf("expected at most %d bytes for %dx%d RGBA, got %d", expected, width, height, len(buf))
	}

	// Row len(buf)/stride is the first incomplete one when the buffer is
	// short, and it always fails.
	n := height
	if stride != 0 {
		n = min(height, len(buf)/stride+1)
	}

	row := func(y int) ([]byte, error) {
		start := min(y*stride, len(buf))
		end := min(start+stride, len(buf))
		return buf[start:end], nil
	}

	enc := gradient.Encoder{Format: opts.Format}
	rows, err := encodeRows(width, n, row, enc, opts.Workers)
	if err != nil {
		return nil, err
	}
	return &ir.Replica{
		Width:  width,
		Height: height,
		Format: opts.Format.String(),
		Rows:   rows,
	}, nil
}

func (o Options) validate() error {
	if !o.Format.Valid() {
		return fmt.Errorf("unknown color format: %s", o.Format)
	}
	if o.MaxWidth < 0 {
		return fmt.Errorf("invalid max width %d", o.MaxWidth)
	}
	return nil
}

// encodeRows encodes rows [0, height) with up to workers goroutines and
// returns them in row order. On failure the error of the lowest failing
// row is returned; rows are not scheduled once a failure is seen.
func encodeRows(width, height int, row func(y int) ([]byte, error), enc gradient.Encoder, workers int) ([]string, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	Logger().Debug("encoding rows", "rows", height, "workers", workers)

	rows := make([]string, height)
	errs := make([]error, height)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for y := 0; y < height; y++ {
		if ctx.Err() != nil {
			break
		}
		y := y // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			buf, err := row(y)
			if err == nil {
				rows[y], err = enc.EncodeRow(y, width, pixel.Chunk(buf))
			}
			errs[y] = err
			return err
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}

// inspectProfile returns the ICC profile embedded in a JPEG, logging a
// warning when its pixels are not in an RGB or gray space.
func inspectProfile(data []byte) *icc.ProfileInfo {
	if !jpeg.IsJPEG(data) {
		return nil
	}
	log := Logger()

	info, err := jpeg.GetInfo(data)
	if err != nil {
		log.Warn("reading JPEG header", "error", err)
		return nil
	}
	if info.ICC == nil {
		return nil
	}

	pi, err := icc.ParseProfileInfo(info.ICC)
	if err != nil {
		log.Warn("embedded ICC profile is invalid", "bytes", len(info.ICC), "error", err)
		return nil
	}
	if !pi.RendersAsSRGB() {
		log.Warn("embedded ICC profile is not RGB; colors are emitted as decoded",
			"color_space", icc.ColorSpaceName(pi.ColorSpace),
			"description", pi.Description)
	}
	return pi
}
