// Package main provides a command-line tool for inspecting VTF texture files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/voidtex/vtftools/pkg/unpack"
	"github.com/voidtex/vtftools/pkg/vtf"
)

var (
	showResources bool
	checkCRC      bool
)

func init() {
	flag.BoolVar(&showResources, "resources", false, "List the resource dictionary (7.3+ files)")
	flag.BoolVar(&checkCRC, "crc", false, "Verify the embedded CRC, if present")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if flag.NArg() == 0 {
		flag.Usage()
		return fmt.Errorf("no input files")
	}

	for _, path := range flag.Args() {
		if flag.NArg() > 1 {
			fmt.Printf("== %s ==\n", path)
		}
		if err := printInfo(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func printInfo(path string) error {
	data, err := unpack.ReadFile(path)
	if err != nil {
		return err
	}
	t, err := vtf.Parse(data)
	if err != nil {
		return err
	}
	h := &t.Header

	fmt.Printf("Version:      %d.%d\n", h.Version[0], h.Version[1])
	fmt.Printf("Size:         %dx%d", h.Width, h.Height)
	if h.Depth > 1 {
		fmt.Printf("x%d", h.Depth)
	}
	fmt.Println()
	fmt.Printf("Format:       %s\n", h.Format)
	fmt.Printf("Mip levels:   %d\n", h.MipCount)
	fmt.Printf("Frames:       %d\n", h.Frames)
	fmt.Printf("Faces:        %d\n", t.Faces())
	fmt.Printf("Flags:        %#08x%s\n", h.Flags, flagNames(h.Flags))
	fmt.Printf("Reflectivity: %.3f %.3f %.3f\n",
		h.Reflectivity[0], h.Reflectivity[1], h.Reflectivity[2])
	if h.LowResFormat != vtf.FormatNone {
		fmt.Printf("Thumbnail:    %dx%d %s\n", h.LowResWidth, h.LowResHeight, h.LowResFormat)
	}

	if showResources {
		fmt.Printf("Resources:    %d\n", len(h.Resources))
		for _, res := range h.Resources {
			kind := "offset"
			if res.Flags&vtf.ResFlagNoData != 0 {
				kind = "inline"
			}
			fmt.Printf("  %-12s %s %#08x\n", tagName(res.Tag), kind, res.Data)
		}
	}

	if checkCRC {
		if err := t.VerifyCRC(); err != nil {
			return err
		}
		if h.Resource(vtf.TagCRC) == nil {
			fmt.Println("CRC:          absent")
		} else {
			fmt.Println("CRC:          ok")
		}
	}
	return nil
}

var knownFlags = []struct {
	mask uint32
	name string
}{
	{vtf.FlagPointSample, "POINTSAMPLE"},
	{vtf.FlagTrilinear, "TRILINEAR"},
	{vtf.FlagSRGB, "SRGB"},
	{vtf.FlagNoMip, "NOMIP"},
	{vtf.FlagNoLOD, "NOLOD"},
	{vtf.FlagOneBitAlpha, "ONEBITALPHA"},
	{vtf.FlagEightBit, "EIGHTBITALPHA"},
	{vtf.FlagEnvmap, "ENVMAP"},
}

func flagNames(flags uint32) string {
	out := ""
	for _, f := range knownFlags {
		if flags&f.mask != 0 {
			out += " " + f.name
		}
	}
	return out
}

func tagName(tag [3]byte) string {
	switch tag {
	case vtf.TagLowResImage:
		return "lowres"
	case vtf.TagHighResImage:
		return "highres"
	case vtf.TagSheet:
		return "sheet"
	case vtf.TagCRC:
		return "crc"
	case vtf.TagLOD:
		return "lod"
	case vtf.TagFlagsEx:
		return "flags-ex"
	case vtf.TagKeyValues:
		return "keyvalues"
	case vtf.TagAuxCompress:
		return "aux-compress"
	}
	return fmt.Sprintf("%#02x%02x%02x", tag[0], tag[1], tag[2])
}
