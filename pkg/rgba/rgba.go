// Package rgba decodes VTF pixel payloads into canonical 32-bit RGBA.
//
// The container stores image data in roughly two dozen encodings:
// 1. Plain byte permutations of the channels (RGBA8888, BGRA8888, ...)
// 2. Packed 16-bit encodings (RGB565, BGRA4444, BGRA5551, ...)
// 3. Intensity, alpha-only and vector formats (I8, A8, UV88, ...)
// 4. Bluescreen-matted RGB, keying pure blue to transparent
// 5. The DXT block-compressed family (DXT1, DXT3, DXT5)
//
// Every decoder is a LoaderFunc with the same shape: a single pass over the
// source buffer, writing 4 bytes per pixel in R,G,B,A order at row stride
// 4*width. Loaders are pure and stateless, so the same source always yields
// the same output and decodes may run concurrently on separate destination
// buffers.
//
// Loaders perform no bounds checking. The caller owns buffer sizing (see
// Blank) and must reject unsupported or undersized inputs before invoking a
// loader; the container layer in pkg/vtf does exactly that.
package rgba

// LoaderFunc decodes one image's worth of source data into pixels.
// pixels must hold 4*width*height bytes. The required length of data
// depends on the format: bytes-per-pixel times the pixel count for
// uncompressed formats, bytes-per-block times the 4x4 block count for the
// DXT family.
type LoaderFunc func(pixels, data []byte, width, height int)

// Blank allocates a zero-filled RGBA destination buffer for a width x
// height image.
func Blank(width, height int) []byte {
	return make([]byte, 4*width*height)
}

// upsample stretches a value whose meaningful bits are left-justified in
// the byte so it covers the full 8-bit range, by replicating the top bits
// into the vacated low bits: upsample(5, 0b11111000) == 0xFF.
func upsample(bits uint, value byte) byte {
	return value | value>>bits
}

// decomp565 unpacks two bytes of 565-packed color data into 8-bit
// channels.
func decomp565(a, b byte) (byte, byte, byte) {
	return upsample(5, (a&0b00011111)<<3),
		upsample(6, (b&0b00000111)<<5|(a&0b11100000)>>3),
		upsample(5, b&0b11111000)
}
