// Package icc reads ICC color profile headers for diagnostics.
//
// Gradient colors are emitted as sRGB, so a profile is only used to tell
// the user when an image's pixel values were encoded for another space.
package icc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf16"
)

const (
	maxProfileSize = 4 * 1024 * 1024 // 4 MB
	acspMagic      = 0x61637370      // 'acsp'
	headerSize     = 128
)

// ProfileInfo contains metadata parsed from an ICC profile header.
type ProfileInfo struct {
	Size        uint32
	Version     string
	ColorSpace  string // "RGB ", "CMYK", etc.
	PCS         string // "XYZ ", "Lab "
	Class       string // "mntr", "prtr", "scnr", etc.
	Description string // from the 'desc' tag, empty if absent or unreadable
}

// ParseProfileInfo reads ICC header metadata from raw profile bytes.
func ParseProfileInfo(data []byte) (*ProfileInfo, error) {
	if len(data) < headerSize {
		return nil, errors.New("ICC profile too short (< 128 bytes)")
	}
	if uint32(len(data)) > maxProfileSize {
		return nil, fmt.Errorf("ICC profile too large (%d bytes, max %d)", len(data), maxProfileSize)
	}
	sig := binary.BigEndian.Uint32(data[36:40])
	if sig != acspMagic {
		return nil, fmt.Errorf("invalid ICC signature: 0x%08x (expected 0x%08x)", sig, acspMagic)
	}
	major := data[8]
	minor := data[9] >> 4
	bugfix := data[9] & 0x0f

	return &ProfileInfo{
		Size:        binary.BigEndian.Uint32(data[0:4]),
		Version:     fmt.Sprintf("%d.%d.%d", major, minor, bugfix),
		ColorSpace:  string(data[16:20]),
		PCS:         string(data[20:24]),
		Class:       string(data[12:16]),
		Description: description(data),
	}, nil
}

// RendersAsSRGB reports whether decoded pixels can be written as CSS colors
// without a color transform. Gray and RGB profiles pass; the RGB primaries
// themselves are not checked.
func (p *ProfileInfo) RendersAsSRGB() bool {
	return p.ColorSpace == "RGB " || p.ColorSpace == "GRAY"
}

// description looks up the 'desc' tag. v2 profiles store it as
// textDescriptionType, v4 profiles as multiLocalizedUnicodeType.
func description(data []byte) string {
	if len(data) < headerSize+4 {
		return ""
	}
	count := int(binary.BigEndian.Uint32(data[headerSize:]))
	for i := 0; i < count; i++ {
		entry := headerSize + 4 + i*12
		if entry+12 > len(data) {
			return ""
		}
		if string(data[entry:entry+4]) != "desc" {
			continue
		}
		off := int(binary.BigEndian.Uint32(data[entry+4:]))
		size := int(binary.BigEndian.Uint32(data[entry+8:]))
		if off < 0 || size < 12 || off+size > len(data) {
			return ""
		}
		return decodeText(data[off : off+size])
	}
	return ""
}

func decodeText(tag []byte) string {
	switch string(tag[:4]) {
	case "desc":
		n := int(binary.BigEndian.Uint32(tag[8:12]))
		if n <= 0 || 12+n > len(tag) {
			return ""
		}
		return strings.TrimRight(string(tag[12:12+n]), "\x00")
	case "mluc":
		if len(tag) < 28 {
			return ""
		}
		// First record only.
		length := int(binary.BigEndian.Uint32(tag[20:24]))
		off := int(binary.BigEndian.Uint32(tag[24:28]))
		if length <= 0 || off+length > len(tag) {
			return ""
		}
		units := make([]uint16, length/2)
		for i := range units {
			units[i] = binary.BigEndian.Uint16(tag[off+2*i:])
		}
		return strings.TrimRight(string(utf16.Decode(units)), "\x00")
	default:
		return ""
	}
}

// LoadProfile reads an ICC profile from disk and validates it.
func LoadProfile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ICC profile: %w", err)
	}
	if _, err := ParseProfileInfo(data); err != nil {
		return nil, fmt.Errorf("validating ICC profile %s: %w", path, err)
	}
	return data, nil
}

// ColorSpaceName returns a human-readable name for an ICC color space signature.
func ColorSpaceName(sig string) string {
	switch sig {
	case "RGB ":
		return "RGB"
	case "CMYK":
		return "CMYK"
	case "GRAY":
		return "Grayscale"
	case "Lab ":
		return "CIELAB"
	case "XYZ ":
		return "CIEXYZ"
	default:
		return sig
	}
}

// ProfileClassName returns a human-readable name for an ICC profile class.
func ProfileClassName(sig string) string {
	switch sig {
	case "mntr":
		return "Display"
	case "prtr":
		return "Output"
	case "scnr":
		return "Input"
	case "link":
		return "DeviceLink"
	case "spac":
		return "ColorSpace"
	case "abst":
		return "Abstract"
	case "nmcl":
		return "NamedColor"
	default:
		return sig
	}
}
