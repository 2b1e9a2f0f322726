package vtf

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"testing"

	"github.com/klauspost/compress/flate"
)

// fileSpec describes a synthetic VTF file for tests.
type fileSpec struct {
	minor      uint32
	width      uint16
	height     uint16
	flags      uint32
	frames     uint16
	firstFrame uint16
	format     ImageFormat
	mips       uint8
	lowFormat  ImageFormat
	lowW, lowH uint8
	resources  []Resource
}

// buildHeader assembles the binary header for a spec. Header sizes match
// what the engine writes: 64 bytes through 7.1, 80 for 7.2, 80 plus the
// resource dictionary for 7.3+.
func buildHeader(t *testing.T, s fileSpec) []byte {
	t.Helper()

	if s.frames == 0 {
		s.frames = 1
	}
	if s.mips == 0 {
		s.mips = 1
	}

	headerSize := 64
	switch {
	case s.minor >= 3:
		headerSize = headerSize73 + 8*len(s.resources)
	case s.minor == 2:
		headerSize = 80
	}

	data := make([]byte, headerSize)
	copy(data, Signature)
	binary.LittleEndian.PutUint32(data[0x04:], 7)
	binary.LittleEndian.PutUint32(data[0x08:], s.minor)
	binary.LittleEndian.PutUint32(data[0x0C:], uint32(headerSize))
	binary.LittleEndian.PutUint16(data[0x10:], s.width)
	binary.LittleEndian.PutUint16(data[0x12:], s.height)
	binary.LittleEndian.PutUint32(data[0x14:], s.flags)
	binary.LittleEndian.PutUint16(data[0x18:], s.frames)
	binary.LittleEndian.PutUint16(data[0x1A:], s.firstFrame)
	binary.LittleEndian.PutUint32(data[0x34:], uint32(s.format))
	data[0x38] = s.mips
	if s.lowFormat == 0 {
		s.lowFormat = FormatNone
	}
	binary.LittleEndian.PutUint32(data[0x39:], uint32(s.lowFormat))
	data[0x3D] = s.lowW
	data[0x3E] = s.lowH
	if s.minor >= 2 {
		binary.LittleEndian.PutUint16(data[0x3F:], 1) // depth
	}
	if s.minor >= 3 {
		binary.LittleEndian.PutUint32(data[0x44:], uint32(len(s.resources)))
		for i, res := range s.resources {
			off := headerSize73 + 8*i
			copy(data[off:], res.Tag[:])
			data[off+3] = res.Flags
			binary.LittleEndian.PutUint32(data[off+4:], res.Data)
		}
	}
	return data
}

// solidRGBA returns one image's worth of RGBA8888 source data filled with
// a single color.
func solidRGBA(w, h int, r, g, b, a byte) []byte {
	data := make([]byte, 4*w*h)
	for i := 0; i < w*h; i++ {
		data[4*i] = r
		data[4*i+1] = g
		data[4*i+2] = b
		data[4*i+3] = a
	}
	return data
}

func TestParseHeader(t *testing.T) {
	header := buildHeader(t, fileSpec{
		minor:  1,
		width:  16,
		height: 8,
		format: FormatRGBA8888,
		mips:   2,
		frames: 3,
	})

	h, err := ParseHeader(header)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if h.Version != [2]uint32{7, 1} {
		t.Errorf("version: expected 7.1, got %d.%d", h.Version[0], h.Version[1])
	}
	if h.Width != 16 || h.Height != 8 {
		t.Errorf("dimensions: expected 16x8, got %dx%d", h.Width, h.Height)
	}
	if h.Format != FormatRGBA8888 {
		t.Errorf("format: expected RGBA8888, got %s", h.Format)
	}
	if h.MipCount != 2 || h.Frames != 3 {
		t.Errorf("mips/frames: expected 2/3, got %d/%d", h.MipCount, h.Frames)
	}
	if h.Depth != 1 {
		t.Errorf("depth: expected 1, got %d", h.Depth)
	}
	if h.LowResFormat != FormatNone {
		t.Errorf("low-res format: expected NONE, got %s", h.LowResFormat)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	valid := func() fileSpec {
		return fileSpec{minor: 1, width: 4, height: 4, format: FormatRGBA8888}
	}

	t.Run("BadSignature", func(t *testing.T) {
		header := buildHeader(t, valid())
		header[0] = 'X'
		if _, err := ParseHeader(header); err == nil {
			t.Error("expected error for bad signature")
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		header := buildHeader(t, valid())
		if _, err := ParseHeader(header[:32]); err == nil {
			t.Error("expected error for truncated header")
		}
	})

	t.Run("BadVersion", func(t *testing.T) {
		header := buildHeader(t, valid())
		binary.LittleEndian.PutUint32(header[0x04:], 8)
		if _, err := ParseHeader(header); err == nil {
			t.Error("expected error for version 8.x")
		}
	})

	t.Run("ZeroWidth", func(t *testing.T) {
		header := buildHeader(t, valid())
		binary.LittleEndian.PutUint16(header[0x10:], 0)
		if _, err := ParseHeader(header); err == nil {
			t.Error("expected error for zero width")
		}
	})

	t.Run("ZeroFrames", func(t *testing.T) {
		header := buildHeader(t, valid())
		binary.LittleEndian.PutUint16(header[0x18:], 0)
		if _, err := ParseHeader(header); err == nil {
			t.Error("expected error for zero frames")
		}
	})
}

func TestTextureMipLayout(t *testing.T) {
	// 16x8, two mips, RGBA8888. Mips are stored smallest first: the
	// 8x4 level precedes the 16x8 level.
	header := buildHeader(t, fileSpec{
		minor:  1,
		width:  16,
		height: 8,
		format: FormatRGBA8888,
		mips:   2,
	})

	file := append(header,
		append(solidRGBA(8, 4, 1, 2, 3, 4), solidRGBA(16, 8, 9, 8, 7, 6)...)...)

	tex, err := Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	img0, err := tex.Image(0, 0, 0)
	if err != nil {
		t.Fatalf("mip 0: %v", err)
	}
	if b := img0.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("mip 0 bounds: expected 16x8, got %dx%d", b.Dx(), b.Dy())
	}
	if got := img0.Pix[0:4]; !bytes.Equal(got, []byte{9, 8, 7, 6}) {
		t.Errorf("mip 0 pixel: expected [9 8 7 6], got %v", got)
	}

	img1, err := tex.Image(1, 0, 0)
	if err != nil {
		t.Fatalf("mip 1: %v", err)
	}
	if b := img1.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("mip 1 bounds: expected 8x4, got %dx%d", b.Dx(), b.Dy())
	}
	if got := img1.Pix[0:4]; !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("mip 1 pixel: expected [1 2 3 4], got %v", got)
	}

	if _, err := tex.Image(2, 0, 0); err == nil {
		t.Error("expected error for out-of-range mip")
	}
}

func TestTextureTruncated(t *testing.T) {
	header := buildHeader(t, fileSpec{
		minor:  1,
		width:  16,
		height: 16,
		format: FormatRGBA8888,
	})
	// Half the payload is missing.
	file := append(header, make([]byte, 512)...)
	if _, err := Parse(file); err == nil {
		t.Error("expected error for truncated image data")
	}
}

func TestTextureLowRes(t *testing.T) {
	header := buildHeader(t, fileSpec{
		minor:     1,
		width:     4,
		height:    4,
		format:    FormatI8,
		lowFormat: FormatDXT1,
		lowW:      4,
		lowH:      4,
	})

	// Thumbnail: one solid white DXT1 block, then the I8 high-res data.
	thumb := []byte{0xFF, 0xFF, 0x00, 0x00, 0, 0, 0, 0}
	file := append(header, thumb...)
	file = append(file, bytes.Repeat([]byte{0x40}, 16)...)

	tex, err := Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	low, err := tex.LowResImage()
	if err != nil {
		t.Fatalf("low-res: %v", err)
	}
	if got := low.Pix[0:4]; !bytes.Equal(got, []byte{255, 255, 255, 255}) {
		t.Errorf("thumbnail pixel: expected white, got %v", got)
	}

	img, err := tex.Image(0, 0, 0)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if got := img.Pix[0:4]; !bytes.Equal(got, []byte{0x40, 0x40, 0x40, 255}) {
		t.Errorf("high-res pixel: expected luminance 0x40, got %v", got)
	}
}

func TestTextureFaces(t *testing.T) {
	tests := []struct {
		name     string
		minor    uint32
		flags    uint32
		first    uint16
		expected int
	}{
		{"Flat", 4, 0, 0, 1},
		{"Cubemap", 5, FlagEnvmap, 0, 6},
		{"CubemapWithSpheremap", 4, FlagEnvmap, 0xFFFF, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := &Texture{Header: Header{
				Version:    [2]uint32{7, tt.minor},
				Flags:      tt.flags,
				FirstFrame: tt.first,
			}}
			if got := tex.Faces(); got != tt.expected {
				t.Errorf("expected %d faces, got %d", tt.expected, got)
			}
		})
	}
}

func TestTexture73Resources(t *testing.T) {
	payload := solidRGBA(4, 4, 10, 20, 30, 40)

	// Header (80) + 2 resource entries (16) = 96; image data follows.
	spec := fileSpec{
		minor:  4,
		width:  4,
		height: 4,
		format: FormatRGBA8888,
		resources: []Resource{
			{Tag: TagHighResImage, Data: 96},
			{Tag: TagCRC, Flags: ResFlagNoData, Data: crc32.ChecksumIEEE(payload)},
		},
	}
	file := append(buildHeader(t, spec), payload...)

	tex, err := Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := tex.VerifyCRC(); err != nil {
		t.Errorf("CRC: %v", err)
	}

	img, err := tex.Image(0, 0, 0)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if got := img.Pix[0:4]; !bytes.Equal(got, []byte{10, 20, 30, 40}) {
		t.Errorf("pixel: expected [10 20 30 40], got %v", got)
	}

	t.Run("CorruptBody", func(t *testing.T) {
		bad := append([]byte(nil), file...)
		bad[len(bad)-1] ^= 0xFF
		tex, err := Parse(bad)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if err := tex.VerifyCRC(); err == nil {
			t.Error("expected CRC mismatch")
		}
	})

	t.Run("MissingHighRes", func(t *testing.T) {
		spec := spec
		spec.resources = []Resource{{Tag: TagCRC, Flags: ResFlagNoData}}
		file := append(buildHeader(t, spec), payload...)
		if _, err := Parse(file); err == nil {
			t.Error("expected error for missing high-res resource")
		}
	})
}

func TestTextureAuxCompression(t *testing.T) {
	payload := solidRGBA(4, 4, 1, 2, 3, 4)

	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate writer: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Header (80) + 2 resources (16) = 96. The aux-compression info
	// (12 bytes: size, level, one unit size) sits at 96, the deflated
	// image data at 108.
	aux := make([]byte, 12)
	binary.LittleEndian.PutUint32(aux[0:], 12)
	binary.LittleEndian.PutUint32(aux[4:], 6) // compression level
	binary.LittleEndian.PutUint32(aux[8:], uint32(compressed.Len()))

	spec := fileSpec{
		minor:  6,
		width:  4,
		height: 4,
		format: FormatRGBA8888,
		resources: []Resource{
			{Tag: TagAuxCompress, Data: 96},
			{Tag: TagHighResImage, Data: 108},
		},
	}
	file := append(buildHeader(t, spec), aux...)
	file = append(file, compressed.Bytes()...)

	tex, err := Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	img, err := tex.Image(0, 0, 0)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if got := img.Pix[0:4]; !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("pixel: expected [1 2 3 4], got %v", got)
	}
}

func TestImageDecodeRegistered(t *testing.T) {
	header := buildHeader(t, fileSpec{
		minor:  1,
		width:  4,
		height: 4,
		format: FormatRGBA8888,
	})
	file := append(header, solidRGBA(4, 4, 5, 6, 7, 8)...)

	img, name, err := image.Decode(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if name != "vtf" {
		t.Errorf("format name: expected vtf, got %s", name)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("bounds: expected 4x4, got %dx%d", b.Dx(), b.Dy())
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("image.DecodeConfig: %v", err)
	}
	if name != "vtf" || cfg.Width != 4 || cfg.Height != 4 {
		t.Errorf("config: expected vtf 4x4, got %s %dx%d", name, cfg.Width, cfg.Height)
	}
}
