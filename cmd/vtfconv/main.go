// Package main provides a command-line tool for converting VTF textures
// to PNG or PPM. Inputs may be zstd or lz4 wrapped (.vtf.zst, .vtf.lz4).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/voidtex/vtftools/pkg/rgba"
	"github.com/voidtex/vtftools/pkg/unpack"
	"github.com/voidtex/vtftools/pkg/vtf"
)

var (
	outputPath string
	mipLevel   int
	frame      int
	face       int
	lowRes     bool
	asPPM      bool
)

func init() {
	flag.StringVar(&outputPath, "o", "", "Output file (default input name with .png/.ppm)")
	flag.IntVar(&mipLevel, "mip", 0, "Mip level to extract (0 is largest)")
	flag.IntVar(&frame, "frame", 0, "Animation frame to extract")
	flag.IntVar(&face, "face", 0, "Cubemap face to extract")
	flag.BoolVar(&lowRes, "lowres", false, "Extract the embedded thumbnail instead")
	flag.BoolVar(&asPPM, "ppm", false, "Write binary PPM instead of PNG")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected exactly one input file")
	}
	input := flag.Arg(0)

	data, err := unpack.ReadFile(input)
	if err != nil {
		return err
	}
	t, err := vtf.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	var img *image.NRGBA
	if lowRes {
		img, err = t.LowResImage()
	} else {
		img, err = t.Image(mipLevel, frame, face)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	out := outputPath
	if out == "" {
		out = defaultOutput(input)
	}
	return writeImage(out, img)
}

func defaultOutput(input string) string {
	base := filepath.Base(input)
	for _, suffix := range []string{".zst", ".lz4", ".vtf"} {
		base = strings.TrimSuffix(base, suffix)
	}
	if asPPM {
		return base + ".ppm"
	}
	return base + ".png"
}

func writeImage(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if asPPM {
		b := img.Bounds()
		ppm := rgba.PPMConvert(img.Pix, b.Dx(), b.Dy())
		if ppm == nil {
			return fmt.Errorf("invalid image dimensions %dx%d", b.Dx(), b.Dy())
		}
		if _, err := f.Write(ppm); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
