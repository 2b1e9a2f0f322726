package vtf

import (
	"fmt"
	"image"

	"github.com/voidtex/vtftools/pkg/rgba"
)

// ImageFormat identifies an on-disk pixel encoding, using the container's
// own numbering.
type ImageFormat int32

// Image format constants as stored in VTF headers.
const (
	FormatRGBA8888 ImageFormat = iota
	FormatABGR8888
	FormatRGB888
	FormatBGR888
	FormatRGB565
	FormatI8
	FormatIA88
	FormatP8
	FormatA8
	FormatRGB888Bluescreen
	FormatBGR888Bluescreen
	FormatARGB8888
	FormatBGRA8888
	FormatDXT1
	FormatDXT3
	FormatDXT5
	FormatBGRX8888
	FormatBGR565
	FormatBGRX5551
	FormatBGRA4444
	FormatDXT1OneBitAlpha
	FormatBGRA5551
	FormatUV88
	FormatUVWQ8888
	FormatRGBA16161616F
	FormatRGBA16161616
	FormatUVLX8888

	// FormatNone marks an absent image, e.g. a file without a thumbnail.
	FormatNone ImageFormat = -1
)

// formatInfo describes one pixel encoding. blockBytes is non-zero for the
// block-compressed formats; loader is nil when the format cannot be
// decoded (P8's palette is external, RGBA16161616F is half-float).
type formatInfo struct {
	name       string
	bpp        int // bits per pixel
	blockBytes int // bytes per 4x4 block, 0 if uncompressed
	loader     rgba.LoaderFunc
}

var formats = map[ImageFormat]formatInfo{
	FormatRGBA8888:         {"RGBA8888", 32, 0, rgba.LoadRGBA8888},
	FormatABGR8888:         {"ABGR8888", 32, 0, rgba.LoadABGR8888},
	FormatRGB888:           {"RGB888", 24, 0, rgba.LoadRGB888},
	FormatBGR888:           {"BGR888", 24, 0, rgba.LoadBGR888},
	FormatRGB565:           {"RGB565", 16, 0, rgba.LoadRGB565},
	FormatI8:               {"I8", 8, 0, rgba.LoadI8},
	FormatIA88:             {"IA88", 16, 0, rgba.LoadIA88},
	FormatP8:               {"P8", 8, 0, nil},
	FormatA8:               {"A8", 8, 0, rgba.LoadA8},
	FormatRGB888Bluescreen: {"RGB888_BLUESCREEN", 24, 0, rgba.LoadRGB888Bluescreen},
	FormatBGR888Bluescreen: {"BGR888_BLUESCREEN", 24, 0, rgba.LoadBGR888Bluescreen},
	FormatARGB8888:         {"ARGB8888", 32, 0, rgba.LoadARGB8888},
	FormatBGRA8888:         {"BGRA8888", 32, 0, rgba.LoadBGRA8888},
	FormatDXT1:             {"DXT1", 4, 8, rgba.LoadDXT1},
	FormatDXT3:             {"DXT3", 8, 16, rgba.LoadDXT3},
	FormatDXT5:             {"DXT5", 8, 16, rgba.LoadDXT5},
	FormatBGRX8888:         {"BGRX8888", 32, 0, rgba.LoadBGRX8888},
	FormatBGR565:           {"BGR565", 16, 0, rgba.LoadBGR565},
	FormatBGRX5551:         {"BGRX5551", 16, 0, rgba.LoadBGRX5551},
	FormatBGRA4444:         {"BGRA4444", 16, 0, rgba.LoadBGRA4444},
	FormatDXT1OneBitAlpha:  {"DXT1_ONEBITALPHA", 4, 8, rgba.LoadDXT1OneBitAlpha},
	FormatBGRA5551:         {"BGRA5551", 16, 0, rgba.LoadBGRA5551},
	FormatUV88:             {"UV88", 16, 0, rgba.LoadUV88},
	FormatUVWQ8888:         {"UVWQ8888", 32, 0, rgba.LoadUVWQ8888},
	FormatRGBA16161616F:    {"RGBA16161616F", 64, 0, nil},
	FormatRGBA16161616:     {"RGBA16161616", 64, 0, rgba.LoadRGBA16161616},
	FormatUVLX8888:         {"UVLX8888", 32, 0, rgba.LoadUVLX8888},
}

// String returns the format's canonical name.
func (f ImageFormat) String() string {
	if f == FormatNone {
		return "NONE"
	}
	if info, ok := formats[f]; ok {
		return info.name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int32(f))
}

// BitsPerPixel returns the storage density of the format, or 0 if the
// format is unknown.
func (f ImageFormat) BitsPerPixel() int {
	return formats[f].bpp
}

// IsCompressed reports whether the format is block-compressed.
func (f ImageFormat) IsCompressed() bool {
	return formats[f].blockBytes != 0
}

// Supported reports whether a decoder exists for the format.
func (f ImageFormat) Supported() bool {
	return formats[f].loader != nil
}

// DataSize returns the byte length of one width x height image in this
// format. Compressed formats round the dimensions up to whole 4x4 blocks;
// partial edge blocks are stored (and decoded) in full.
func (f ImageFormat) DataSize(width, height int) int {
	info, ok := formats[f]
	if !ok {
		return 0
	}
	if info.blockBytes != 0 {
		return ((width + 3) / 4) * ((height + 3) / 4) * info.blockBytes
	}
	return width * height * info.bpp / 8
}

// Decode decodes one image payload into an NRGBA image.
//
// This is the allocation boundary for the codec's contract: data is length
// checked against DataSize, unsupported formats are rejected, and for
// compressed formats with dimensions that are not multiples of 4 the
// decode runs over a block-aligned scratch buffer so edge blocks can write
// their full 4x4 region, then crops to the logical size.
func (f ImageFormat) Decode(data []byte, width, height int) (*image.NRGBA, error) {
	info, ok := formats[f]
	if !ok || info.loader == nil {
		return nil, fmt.Errorf("no decoder for format %s", f)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if need := f.DataSize(width, height); len(data) < need {
		return nil, fmt.Errorf("%s: short image data: need %d bytes, got %d", f, need, len(data))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if info.blockBytes != 0 && (width%4 != 0 || height%4 != 0) {
		alignedW := (width + 3) &^ 3
		alignedH := (height + 3) &^ 3
		buf := rgba.Blank(alignedW, alignedH)
		info.loader(buf, data, alignedW, alignedH)
		for y := 0; y < height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+4*width], buf[4*alignedW*y:])
		}
		return img, nil
	}
	info.loader(img.Pix, data, width, height)
	return img, nil
}
