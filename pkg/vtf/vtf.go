// Package vtf parses Valve Texture Format containers and decodes their
// pixel payloads through pkg/rgba.
//
// A VTF file is a small header (versions 7.0 through 7.6), an optional
// DXT1 thumbnail, and the high-resolution image data: every mip level
// (stored smallest first) of every animation frame of every face. 7.3
// introduced a resource dictionary locating the payloads; 7.6 added
// optional per-image deflate compression described by an aux-compression
// resource.
//
// The package registers itself with the standard image package, so
// image.Decode recognizes VTF files.
package vtf

import (
	"image"
	"image/color"
	"io"
)

// Decode reads a VTF file and returns its largest mip (frame 0, face 0)
// as an image. It implements the standard image-decoding signature.
func Decode(r io.Reader) (image.Image, error) {
	t, err := Read(r)
	if err != nil {
		return nil, err
	}
	return t.Image(0, 0, 0)
}

// DecodeConfig returns the dimensions and color model of a VTF file
// without decoding pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data := make([]byte, headerSize73)
	n, err := io.ReadFull(r, data)
	if err != nil && err != io.ErrUnexpectedEOF {
		return image.Config{}, err
	}
	h, err := parseHeaderFixed(data[:n])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

func init() {
	image.RegisterFormat("vtf", Signature, Decode, DecodeConfig)
}
