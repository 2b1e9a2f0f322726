package rgba

import "strings"

// remapLoader builds a loader for formats that are plain byte permutations
// of the channels. order names which source byte feeds each channel: the
// position of 'r' in the string is the source byte copied into red, and so
// on. Orders without an 'a' read 3 bytes per pixel and force alpha to
// opaque.
func remapLoader(order string) LoaderFunc {
	r := strings.IndexByte(order, 'r')
	g := strings.IndexByte(order, 'g')
	b := strings.IndexByte(order, 'b')
	a := strings.IndexByte(order, 'a')
	if a < 0 {
		return func(pixels, data []byte, width, height int) {
			for off := 0; off < width*height; off++ {
				pixels[4*off] = data[3*off+r]
				pixels[4*off+1] = data[3*off+g]
				pixels[4*off+2] = data[3*off+b]
				pixels[4*off+3] = 255
			}
		}
	}
	return func(pixels, data []byte, width, height int) {
		for off := 0; off < width*height; off++ {
			pixels[4*off] = data[4*off+r]
			pixels[4*off+1] = data[4*off+g]
			pixels[4*off+2] = data[4*off+b]
			pixels[4*off+3] = data[4*off+a]
		}
	}
}

// Permutation loaders, 4 bytes per source pixel unless noted.
var (
	LoadRGBA8888 = remapLoader("rgba")
	LoadBGRA8888 = remapLoader("bgra")
	LoadABGR8888 = remapLoader("abgr")

	// ARGB8888 files are not laid out in the order the name suggests.
	// This permutation matches what the engine reads and writes; keep it
	// even though it looks wrong.
	LoadARGB8888 = remapLoader("gbar")

	// 3 bytes per pixel, opaque alpha.
	LoadRGB888 = remapLoader("rgb")
	LoadBGR888 = remapLoader("bgr")

	// Vector formats that reuse the RGBA byte layout: U/V/L/X and
	// U/V/W/Q map straight onto R/G/B/A.
	LoadUVLX8888 = remapLoader("rgba")
	LoadUVWQ8888 = remapLoader("rgba")
)

// LoadBGRX8888 reads 4 bytes per pixel but discards the fourth, forcing
// alpha to opaque.
func LoadBGRX8888(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		pixels[4*off] = data[4*off+2]
		pixels[4*off+1] = data[4*off+1]
		pixels[4*off+2] = data[4*off]
		pixels[4*off+3] = 255
	}
}
