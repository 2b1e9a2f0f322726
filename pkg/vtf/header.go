package vtf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Signature is the magic at the start of every VTF file.
const Signature = "VTF\x00"

// Texture flags (the subset this reader cares about).
const (
	FlagPointSample uint32 = 0x00000001
	FlagTrilinear   uint32 = 0x00000002
	FlagSRGB        uint32 = 0x00000040
	FlagNoMip       uint32 = 0x00000100
	FlagNoLOD       uint32 = 0x00000200
	FlagOneBitAlpha uint32 = 0x00001000
	FlagEightBit    uint32 = 0x00002000
	FlagEnvmap      uint32 = 0x00004000
)

// Resource dictionary tags (7.3+).
var (
	TagLowResImage  = [3]byte{0x01, 0x00, 0x00}
	TagHighResImage = [3]byte{0x30, 0x00, 0x00}
	TagSheet        = [3]byte{0x10, 0x00, 0x00}
	TagCRC          = [3]byte{'C', 'R', 'C'}
	TagLOD          = [3]byte{'L', 'O', 'D'}
	TagFlagsEx      = [3]byte{'T', 'S', 'O'}
	TagKeyValues    = [3]byte{'K', 'V', 'D'}
	TagAuxCompress  = [3]byte{'A', 'X', 'C'}
)

// ResFlagNoData marks a resource whose Data field is an inline value
// rather than a file offset.
const ResFlagNoData = 0x02

const (
	headerSize70 = 63 // through low-res dimensions
	headerSize72 = 65 // adds depth
	headerSize73 = 80 // adds the resource dictionary header
)

// Resource is one entry of the resource dictionary.
type Resource struct {
	Tag   [3]byte
	Flags uint8
	Data  uint32 // file offset, or inline value when ResFlagNoData is set
}

// Header is a parsed VTF file header, versions 7.0 through 7.6.
type Header struct {
	Version      [2]uint32  // +0x04: major (always 7), minor
	HeaderSize   uint32     // +0x0C: header plus resource dictionary size
	Width        uint16     // +0x10: largest-mip width in pixels
	Height       uint16     // +0x12: largest-mip height in pixels
	Flags        uint32     // +0x14: texture flags
	Frames       uint16     // +0x18: animation frame count
	FirstFrame   uint16     // +0x1A: first frame, 0xFFFF for spheremaps
	Reflectivity [3]float32 // +0x20: precomputed average color
	BumpmapScale float32    // +0x30
	Format       ImageFormat // +0x34: high-res image format
	MipCount     uint8       // +0x38: number of mip levels
	LowResFormat ImageFormat // +0x39: thumbnail format, unaligned field
	LowResWidth  uint8       // +0x3D
	LowResHeight uint8       // +0x3E
	Depth        uint16      // +0x3F: volume texture depth (7.2+), else 1
	Resources    []Resource  // resource dictionary (7.3+)
}

// ParseHeader decodes and validates a VTF header, including the 7.3+
// resource dictionary, from the start of data.
func ParseHeader(data []byte) (*Header, error) {
	h, err := parseHeaderFixed(data)
	if err != nil {
		return nil, err
	}

	if h.Version[1] >= 3 {
		if len(data) < headerSize73 {
			return nil, fmt.Errorf("7.3 header too short: %d bytes", len(data))
		}
		numResources := binary.LittleEndian.Uint32(data[0x44:0x48])
		end := headerSize73 + 8*int(numResources)
		if int(h.HeaderSize) < end || len(data) < end {
			return nil, fmt.Errorf("resource dictionary truncated: %d entries", numResources)
		}
		h.Resources = make([]Resource, numResources)
		for i := range h.Resources {
			off := headerSize73 + 8*i
			copy(h.Resources[i].Tag[:], data[off:off+3])
			h.Resources[i].Flags = data[off+3]
			h.Resources[i].Data = binary.LittleEndian.Uint32(data[off+4 : off+8])
		}
	}

	return h, nil
}

// parseHeaderFixed decodes the fixed-layout portion of the header, which
// is all DecodeConfig needs.
func parseHeaderFixed(data []byte) (*Header, error) {
	if len(data) < headerSize70 {
		return nil, fmt.Errorf("header too short: need %d bytes, got %d", headerSize70, len(data))
	}
	if string(data[0:4]) != Signature {
		return nil, fmt.Errorf("bad signature %q", data[0:4])
	}

	h := &Header{
		Version: [2]uint32{
			binary.LittleEndian.Uint32(data[0x04:0x08]),
			binary.LittleEndian.Uint32(data[0x08:0x0C]),
		},
		HeaderSize: binary.LittleEndian.Uint32(data[0x0C:0x10]),
		Width:      binary.LittleEndian.Uint16(data[0x10:0x12]),
		Height:     binary.LittleEndian.Uint16(data[0x12:0x14]),
		Flags:      binary.LittleEndian.Uint32(data[0x14:0x18]),
		Frames:     binary.LittleEndian.Uint16(data[0x18:0x1A]),
		FirstFrame: binary.LittleEndian.Uint16(data[0x1A:0x1C]),
		Reflectivity: [3]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(data[0x20:0x24])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[0x24:0x28])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[0x28:0x2C])),
		},
		BumpmapScale: math.Float32frombits(binary.LittleEndian.Uint32(data[0x30:0x34])),
		Format:       ImageFormat(int32(binary.LittleEndian.Uint32(data[0x34:0x38]))),
		MipCount:     data[0x38],
		LowResFormat: ImageFormat(int32(binary.LittleEndian.Uint32(data[0x39:0x3D]))),
		LowResWidth:  data[0x3D],
		LowResHeight: data[0x3E],
		Depth:        1,
	}

	if h.Version[0] != 7 || h.Version[1] > 6 {
		return nil, fmt.Errorf("unsupported version %d.%d", h.Version[0], h.Version[1])
	}
	if h.Width == 0 || h.Height == 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", h.Width, h.Height)
	}
	if h.Frames == 0 {
		return nil, fmt.Errorf("frame count is zero")
	}
	if h.MipCount == 0 {
		return nil, fmt.Errorf("mip count is zero")
	}

	if h.Version[1] >= 2 {
		if len(data) < headerSize72 {
			return nil, fmt.Errorf("7.2 header too short: %d bytes", len(data))
		}
		h.Depth = binary.LittleEndian.Uint16(data[0x3F:0x41])
		if h.Depth == 0 {
			h.Depth = 1
		}
	}

	return h, nil
}

// Resource returns the dictionary entry with the given tag, or nil.
func (h *Header) Resource(tag [3]byte) *Resource {
	for i := range h.Resources {
		if h.Resources[i].Tag == tag {
			return &h.Resources[i]
		}
	}
	return nil
}
