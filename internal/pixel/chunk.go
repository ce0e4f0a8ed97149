// Package pixel splits interleaved RGBA channel buffers into per-pixel tuples.
package pixel

// TupleSize is the number of channels per pixel (R, G, B, A).
const TupleSize = 4

// Pixel holds one pixel's channel values in R, G, B, A order.
// Values are ints so that out-of-range samples from a faulty decoder stay
// representable and can be rejected downstream.
type Pixel []int

// Chunk splits buf into consecutive TupleSize-element pixels.
// The i-th pixel holds buf[4i:4i+4]. If len(buf) is not a multiple of
// TupleSize the last pixel is short; callers must treat that as malformed.
// buf is neither modified nor retained.
func Chunk(buf []byte) []Pixel {
	n := (len(buf) + TupleSize - 1) / TupleSize
	pixels := make([]Pixel, 0, n)
	for i := 0; i < len(buf); i += TupleSize {
		end := i + TupleSize
		if end > len(buf) {
			end = len(buf)
		}
		p := make(Pixel, end-i)
		for j, v := range buf[i:end] {
			p[j] = int(v)
		}
		pixels = append(pixels, p)
	}
	return pixels
}

// Flatten concatenates the channels of pixels back into a byte buffer.
// Values outside [0,255] are truncated to their low byte.
func Flatten(pixels []Pixel) []byte {
	buf := make([]byte, 0, len(pixels)*TupleSize)
	for _, p := range pixels {
		for _, v := range p {
			buf = append(buf, byte(v))
		}
	}
	return buf
}
