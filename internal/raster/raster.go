// Package raster decodes image files into row-addressable RGBA channel buffers.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif" // Register decoders
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Options controls decoding.
type Options struct {
	// MaxWidth downsizes wider images to this width, keeping the aspect
	// ratio. 0 keeps the source size.
	MaxWidth int
}

// Image is a decoded frame stored as non-premultiplied RGBA with its
// origin at (0, 0).
type Image struct {
	Width     int
	Height    int
	SrcWidth  int
	SrcHeight int
	Format    string // decoder name: "png", "jpeg", "gif", "bmp", "tiff", "webp"

	pix *image.NRGBA
}

// Decode decodes the first frame of an image stream.
func Decode(r io.Reader, opts Options) (*Image, error) {
	if opts.MaxWidth < 0 {
		return nil, fmt.Errorf("invalid max width %d", opts.MaxWidth)
	}

	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(src, format, opts), nil
}

// FromImage converts src into an Image.
func FromImage(src image.Image, format string, opts Options) *Image {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	w, h := srcW, srcH

	if opts.MaxWidth > 0 && srcW > opts.MaxWidth {
		w = opts.MaxWidth
		h = max(1, (srcH*w+srcW/2)/srcW)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == srcW && h == srcH {
		draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(nrgba, nrgba.Bounds(), src, bounds, xdraw.Src, nil)
	}

	return &Image{
		Width:     w,
		Height:    h,
		SrcWidth:  srcW,
		SrcHeight: srcH,
		Format:    format,
		pix:       nrgba,
	}
}

// Row returns a copy of row y as R,G,B,A bytes, Width*4 long.
func (m *Image) Row(y int) ([]byte, error) {
	if y < 0 || y >= m.Height {
		return nil, fmt.Errorf("row %d out of range [0,%d)", y, m.Height)
	}
	off := y * m.pix.Stride
	row := make([]byte, m.Width*4)
	copy(row, m.pix.Pix[off:off+m.Width*4])
	return row, nil
}

// Pixels returns a copy of the whole frame, row-major, Width*Height*4 bytes.
func (m *Image) Pixels() []byte {
	buf := make([]byte, 0, m.Width*m.Height*4)
	for y := 0; y < m.Height; y++ {
		off := y * m.pix.Stride
		buf = append(buf, m.pix.Pix[off:off+m.Width*4]...)
	}
	return buf
}
