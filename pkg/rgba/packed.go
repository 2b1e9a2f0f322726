package rgba

// Packed 16-bit formats, 2 bytes per source pixel. Field extraction goes
// through upsample so truncated channels cover the full 8-bit range.

// LoadRGB565 decodes 565-packed color with opaque alpha.
func LoadRGB565(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		r, g, b := decomp565(data[2*off], data[2*off+1])
		pixels[4*off] = r
		pixels[4*off+1] = g
		pixels[4*off+2] = b
		pixels[4*off+3] = 255
	}
}

// LoadBGR565 is LoadRGB565 with the outer channels swapped.
func LoadBGR565(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		r, g, b := decomp565(data[2*off], data[2*off+1])
		pixels[4*off] = b
		pixels[4*off+1] = g
		pixels[4*off+2] = r
		pixels[4*off+3] = 255
	}
}

// LoadBGRA4444 decodes 4 bits per channel. Each nibble is duplicated into
// both halves of its output byte, which maps 0xF to 255 exactly.
func LoadBGRA4444(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		a := data[2*off]
		b := data[2*off+1]
		blue := a & 0x0F
		green := a >> 4
		red := b & 0x0F
		alpha := b >> 4
		pixels[4*off] = red<<4 | red
		pixels[4*off+1] = green<<4 | green
		pixels[4*off+2] = blue<<4 | blue
		pixels[4*off+3] = alpha<<4 | alpha
	}
}

// LoadBGRA5551 decodes 5 bits per color channel plus a 1-bit alpha flag in
// the top bit of the second byte. The green field straddles the byte
// boundary.
func LoadBGRA5551(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		a := data[2*off]
		b := data[2*off+1]
		pixels[4*off] = upsample(5, (b&0b01111100)<<1)
		pixels[4*off+1] = upsample(5, (a&0b11100000)>>2|(b&0b00000011)<<6)
		pixels[4*off+2] = upsample(5, (a&0b00011111)<<3)
		if b&0b10000000 != 0 {
			pixels[4*off+3] = 255
		} else {
			pixels[4*off+3] = 0
		}
	}
}

// LoadBGRX5551 is LoadBGRA5551 with the alpha bit ignored.
func LoadBGRX5551(pixels, data []byte, width, height int) {
	for off := 0; off < width*height; off++ {
		a := data[2*off]
		b := data[2*off+1]
		pixels[4*off] = upsample(5, (b&0b01111100)<<1)
		pixels[4*off+1] = upsample(5, (a&0b11100000)>>2|(b&0b00000011)<<6)
		pixels[4*off+2] = upsample(5, (a&0b00011111)<<3)
		pixels[4*off+3] = 255
	}
}
