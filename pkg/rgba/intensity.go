package rgba

// Single- and dual-channel formats.
//
// P8 (8-bit paletted) deliberately has no loader: the palette lives outside
// the image payload and the engine never shipped a decoder for it. The
// container layer rejects the format before dispatch.

// LoadI8 broadcasts a single luminance byte to all three color channels,
// 1 byte per pixel.
func LoadI8(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		v := data[off]
		pixels[4*off] = v
		pixels[4*off+1] = v
		pixels[4*off+2] = v
		pixels[4*off+3] = 255
	}
}

// LoadIA88 is luminance with a real alpha channel, 2 bytes per pixel.
func LoadIA88(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		v := data[2*off]
		pixels[4*off] = v
		pixels[4*off+1] = v
		pixels[4*off+2] = v
		pixels[4*off+3] = data[2*off+1]
	}
}

// LoadA8 stores alpha only; color is black. 1 byte per pixel.
func LoadA8(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		pixels[4*off] = 0
		pixels[4*off+1] = 0
		pixels[4*off+2] = 0
		pixels[4*off+3] = data[off]
	}
}

// LoadUV88 maps a two-channel vector format onto red and green, 2 bytes
// per pixel.
func LoadUV88(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		pixels[4*off] = data[2*off]
		pixels[4*off+1] = data[2*off+1]
		pixels[4*off+2] = 0
		pixels[4*off+3] = 255
	}
}

// LoadRGBA16161616 truncates 16-bit integer channels to their high bytes,
// 8 bytes per pixel.
func LoadRGBA16161616(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		pixels[4*off] = data[8*off+1]
		pixels[4*off+1] = data[8*off+3]
		pixels[4*off+2] = data[8*off+5]
		pixels[4*off+3] = data[8*off+7]
	}
}
