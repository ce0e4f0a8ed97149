package gradient

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Format selects how a pixel's color is written into a color stop.
type Format int

const (
	// FormatRGBA writes rgba(R, G, B, A) with alpha on the raw 0-255 scale.
	FormatRGBA Format = iota
	// FormatCSS writes rgba(R, G, B, a) with alpha normalized to [0,1].
	FormatCSS
	// FormatHex writes #rrggbbaa.
	FormatHex
)

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "rgba", "":
		return FormatRGBA, nil
	case "css":
		return FormatCSS, nil
	case "hex":
		return FormatHex, nil
	default:
		return 0, fmt.Errorf("unknown color format: %q", s)
	}
}

// Valid reports whether f is one of the defined formats.
func (f Format) Valid() bool {
	return f >= FormatRGBA && f <= FormatHex
}

func (f Format) String() string {
	switch f {
	case FormatRGBA:
		return "rgba"
	case FormatCSS:
		return "css"
	case FormatHex:
		return "hex"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// color renders a validated pixel. r, g, b, a are all within [0,255].
func (f Format) color(r, g, b, a int) string {
	switch f {
	case FormatCSS:
		alpha := math.Round(float64(a)/255*1000) / 1000
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
	case FormatHex:
		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		return fmt.Sprintf("%s%02x", c.Hex(), a)
	default:
		return fmt.Sprintf("rgba(%d, %d, %d, %d)", r, g, b, a)
	}
}
