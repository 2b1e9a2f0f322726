package rgba

import "fmt"

// PPMConvert re-encodes a decoded RGBA buffer as a binary PPM (P6) stream,
// dropping alpha. Handy for eyeballing decoder output without an image
// library. Returns nil if pixels is too short for the given dimensions.
func PPMConvert(pixels []byte, width, height int) []byte {
	if width <= 0 || height <= 0 || len(pixels) < 4*width*height {
		return nil
	}
	out := fmt.Appendf(nil, "P6 %d %d 255\n", width, height)
	for off := 0; off < width*height; off++ {
		out = append(out, pixels[4*off], pixels[4*off+1], pixels[4*off+2])
	}
	return out
}
