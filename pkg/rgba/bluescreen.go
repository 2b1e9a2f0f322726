package rgba

// Bluescreen formats carry no alpha channel on disk; instead a pure blue
// pixel, (0, 0, 255) after decoding, is a transparency key and becomes
// transparent black. The comparison is exact equality, not a tolerance.

// LoadRGB888Bluescreen decodes 3-byte RGB data with the bluescreen key.
func LoadRGB888Bluescreen(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		r := data[3*off]
		g := data[3*off+1]
		b := data[3*off+2]
		if r == 0 && g == 0 && b == 255 {
			pixels[4*off] = 0
			pixels[4*off+1] = 0
			pixels[4*off+2] = 0
			pixels[4*off+3] = 0
		} else {
			pixels[4*off] = r
			pixels[4*off+1] = g
			pixels[4*off+2] = b
			pixels[4*off+3] = 255
		}
	}
}

// LoadBGR888Bluescreen decodes 3-byte BGR data with the bluescreen key.
func LoadBGR888Bluescreen(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		r := data[3*off+2]
		g := data[3*off+1]
		b := data[3*off]
		if r == 0 && g == 0 && b == 255 {
			pixels[4*off] = 0
			pixels[4*off+1] = 0
			pixels[4*off+2] = 0
			pixels[4*off+3] = 0
		} else {
			pixels[4*off] = r
			pixels[4*off+1] = g
			pixels[4*off+2] = b
			pixels[4*off+3] = 255
		}
	}
}
