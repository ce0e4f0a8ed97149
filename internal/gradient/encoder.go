// Package gradient encodes rows of pixels as hard-stop linear gradients.
//
// Each pixel becomes its own 1px band: the same color is placed at offsets
// i and i+1, so the styling engine renders a solid block rather than a
// blend. Adjacent pixels of equal color are never merged.
package gradient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luka-bacic/img-to-css/internal/pixel"
)

// Direction is the leading argument of every gradient specification.
const Direction = "to right "

// Encoder turns rows of pixels into gradient specifications.
// The zero value uses FormatRGBA.
type Encoder struct {
	Format Format
}

// EncodeRow encodes a row with the default format.
func EncodeRow(row, width int, pixels []pixel.Pixel) (string, error) {
	return Encoder{}.EncodeRow(row, width, pixels)
}

// EncodeRow returns the gradient specification for the first width pixels.
// row is only used to locate errors. The result is of the form
//
//	to right , <c0> 0px, <c0> 1px, <c1> 1px, <c1> 2px ...
//
// and is suitable as the argument list of a CSS linear-gradient().
func (e Encoder) EncodeRow(row, width int, pixels []pixel.Pixel) (string, error) {
	if !e.Format.Valid() {
		return "", fmt.Errorf("unknown color format: %s", e.Format)
	}

	var b strings.Builder
	b.WriteString(Direction)

	for col := 0; col < width; col++ {
		if col >= len(pixels) {
			return "", &MissingPixelError{Row: row, Column: col}
		}
		p := pixels[col]
		if err := validate(row, col, p); err != nil {
			return "", err
		}

		c := e.Format.color(p[0], p[1], p[2], p[3])
		b.WriteString(", ")
		b.WriteString(c)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(col))
		b.WriteString("px, ")
		b.WriteString(c)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(col + 1))
		b.WriteString("px")
	}

	return b.String(), nil
}

func validate(row, col int, p pixel.Pixel) error {
	for ch := 0; ch < pixel.TupleSize; ch++ {
		if ch >= len(p) || p[ch] < 0 || p[ch] > 255 {
			return &InvalidChannelError{
				Row:     row,
				Column:  col,
				Channel: ch,
				Values:  append([]int(nil), p...),
			}
		}
	}
	return nil
}

// CSS wraps a gradient specification in linear-gradient().
func CSS(spec string) string {
	return "linear-gradient(" + spec + ")"
}
