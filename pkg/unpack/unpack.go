// Package unpack provides transparent decompression of wrapped texture
// files. Asset pipelines frequently ship textures as .vtf.zst or .vtf.lz4;
// Reader sniffs the leading frame magic and unwraps accordingly, passing
// plain files through untouched.
package unpack

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// Reader wraps r with the decompressor matching its leading magic bytes,
// or returns r buffered and untouched if no compression is recognized.
// The returned reader must be closed; closing it does not close r.
func Reader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		if len(magic) < 4 {
			// Too short to be a compressed frame; hand it through and
			// let the caller produce its own parse error.
			return io.NopCloser(br), nil
		}
		return nil, fmt.Errorf("sniff magic: %w", err)
	}

	switch {
	case bytes.Equal(magic, zstdMagic):
		return zstd.NewReader(br), nil
	case bytes.Equal(magic, lz4Magic):
		return io.NopCloser(lz4.NewReader(br)), nil
	}
	return io.NopCloser(br), nil
}

// ReadFile reads path into memory, unwrapping any recognized compression.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := Reader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
