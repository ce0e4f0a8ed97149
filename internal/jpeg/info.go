// Package jpeg inspects JPEG headers without decoding scan data.
package jpeg

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	markerSOI   = 0xD8
	markerEOI   = 0xD9
	markerSOS   = 0xDA
	markerAPP2  = 0xE2
	markerAPP14 = 0xEE
)

// ImageInfo contains metadata about a JPEG file.
type ImageInfo struct {
	Width         int
	Height        int
	NumComponents int
	ColorSpace    string
	Progressive   bool
	ICC           []byte // extracted ICC profile, nil if absent
}

// IsJPEG reports whether data starts with a JPEG SOI marker.
func IsJPEG(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1] == markerSOI
}

// GetInfo reads JPEG metadata and extracts any ICC profile without decoding
// the image. Scanning stops at the first SOS marker.
func GetInfo(data []byte) (*ImageInfo, error) {
	if !IsJPEG(data) {
		return nil, errors.New("not a JPEG (missing SOI marker)")
	}

	info := &ImageInfo{}
	adobeTransform := -1
	haveFrame := false
	var app2Markers [][]byte

	pos := 2
	for pos < len(data) {
		if data[pos] != 0xFF {
			return nil, fmt.Errorf("expected marker at offset %d, got 0x%02x", pos, data[pos])
		}
		// Skip fill bytes.
		for pos < len(data) && data[pos] == 0xFF {
			pos++
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++

		// Standalone markers carry no length.
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			continue
		}
		if marker == markerEOI || marker == markerSOS {
			break
		}

		if pos+2 > len(data) {
			return nil, fmt.Errorf("truncated segment 0x%02x at offset %d", marker, pos)
		}
		length := int(binary.BigEndian.Uint16(data[pos:]))
		if length < 2 || pos+length > len(data) {
			return nil, fmt.Errorf("invalid length %d for segment 0x%02x", length, marker)
		}
		payload := data[pos+2 : pos+length]
		pos += length

		switch {
		case isSOF(marker):
			if len(payload) < 6 {
				return nil, fmt.Errorf("short SOF segment (%d bytes)", len(payload))
			}
			info.Height = int(binary.BigEndian.Uint16(payload[1:3]))
			info.Width = int(binary.BigEndian.Uint16(payload[3:5]))
			info.NumComponents = int(payload[5])
			info.Progressive = marker == 0xC2 || marker == 0xC6 || marker == 0xCA || marker == 0xCE
			haveFrame = true
		case marker == markerAPP2:
			app2Markers = append(app2Markers, payload)
		case marker == markerAPP14:
			if len(payload) >= 12 && string(payload[:5]) == "Adobe" {
				adobeTransform = int(payload[11])
			}
		}
	}

	if !haveFrame {
		return nil, errors.New("no SOF segment found")
	}

	icc, err := ExtractICC(app2Markers)
	if err != nil {
		return nil, fmt.Errorf("extracting ICC: %w", err)
	}
	info.ICC = icc
	info.ColorSpace = colorSpaceName(info.NumComponents, adobeTransform)
	return info, nil
}

// isSOF matches the start-of-frame markers, excluding DHT (C4), JPG (C8)
// and DAC (CC) which share the range.
func isSOF(m byte) bool {
	return m >= 0xC0 && m <= 0xCF && m != 0xC4 && m != 0xC8 && m != 0xCC
}

// colorSpaceName follows libjpeg's guess from component count and the
// Adobe APP14 transform flag (-1 when absent).
func colorSpaceName(components, adobeTransform int) string {
	switch components {
	case 1:
		return "Grayscale"
	case 3:
		if adobeTransform == 0 {
			return "RGB"
		}
		return "YCbCr"
	case 4:
		if adobeTransform == 2 {
			return "YCCK"
		}
		return "CMYK"
	default:
		return "Unknown"
	}
}
