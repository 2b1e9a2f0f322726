package vtf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"io"

	"github.com/klauspost/compress/flate"
)

// Texture is a parsed VTF file with its image payloads located but not
// yet decoded. Decoding happens per image via Image and LowResImage.
type Texture struct {
	Header Header

	data         []byte // the whole file
	highResStart int
	lowResStart  int
	aux          *auxCompression
}

// auxCompression mirrors the 7.6 aux-compression resource: every storage
// unit (one mip/frame/face group) is deflated individually, and the
// resource lists the compressed sizes in storage order.
type auxCompression struct {
	level int32
	sizes []uint32
}

// Read parses a VTF file from r.
func Read(r io.Reader) (*Texture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(data)
}

// Parse parses a VTF file held in memory. The returned Texture keeps a
// reference to data; callers must not mutate it afterwards.
func Parse(data []byte) (*Texture, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	t := &Texture{Header: *h, data: data}

	lowResSize := 0
	if h.LowResFormat != FormatNone {
		lowResSize = h.LowResFormat.DataSize(int(h.LowResWidth), int(h.LowResHeight))
	}

	if h.Version[1] >= 3 {
		res := h.Resource(TagHighResImage)
		if res == nil {
			return nil, fmt.Errorf("missing high-res image resource")
		}
		t.highResStart = int(res.Data)
		if res := h.Resource(TagLowResImage); lowResSize > 0 && res != nil {
			t.lowResStart = int(res.Data)
		}
		if res := h.Resource(TagAuxCompress); res != nil && res.Flags&ResFlagNoData == 0 {
			aux, err := t.parseAuxCompression(int(res.Data))
			if err != nil {
				return nil, err
			}
			t.aux = aux
		}
	} else {
		t.lowResStart = int(h.HeaderSize)
		t.highResStart = int(h.HeaderSize) + lowResSize
	}

	if err := t.validateSize(); err != nil {
		return nil, err
	}
	return t, nil
}

// unitCount is the number of storage units in the high-res payload.
func (t *Texture) unitCount() int {
	return int(t.Header.MipCount) * int(t.Header.Frames) * t.Faces()
}

func (t *Texture) parseAuxCompression(offset int) (*auxCompression, error) {
	count := t.unitCount()
	need := 8 + 4*count
	if offset < 0 || offset+need > len(t.data) {
		return nil, fmt.Errorf("aux compression resource truncated")
	}
	infoSize := binary.LittleEndian.Uint32(t.data[offset : offset+4])
	if int(infoSize) < need {
		return nil, fmt.Errorf("aux compression info size %d: expected at least %d", infoSize, need)
	}
	aux := &auxCompression{
		level: int32(binary.LittleEndian.Uint32(t.data[offset+4 : offset+8])),
		sizes: make([]uint32, count),
	}
	for i := range aux.sizes {
		aux.sizes[i] = binary.LittleEndian.Uint32(t.data[offset+8+4*i : offset+12+4*i])
	}
	return aux, nil
}

func (t *Texture) validateSize() error {
	total := 0
	if t.aux != nil && t.aux.level != 0 {
		for _, s := range t.aux.sizes {
			total += int(s)
		}
	} else {
		for mip := 0; mip < int(t.Header.MipCount); mip++ {
			total += t.unitSize(mip) * int(t.Header.Frames) * t.Faces()
		}
	}
	if t.highResStart+total > len(t.data) {
		return fmt.Errorf("file truncated: need %d bytes of image data at offset %d, have %d",
			total, t.highResStart, len(t.data))
	}
	return nil
}

// Faces returns the number of faces stored per frame. Cubemaps store six;
// versions before 7.5 add a seventh spheremap face when the first-frame
// marker is -1.
func (t *Texture) Faces() int {
	if t.Header.Flags&FlagEnvmap == 0 {
		return 1
	}
	if t.Header.Version[1] >= 1 && t.Header.Version[1] <= 4 && t.Header.FirstFrame == 0xFFFF {
		return 7
	}
	return 6
}

// MipSize returns the pixel dimensions of the given mip level. Level 0 is
// the largest.
func (t *Texture) MipSize(mip int) (width, height int) {
	width = int(t.Header.Width) >> mip
	if width < 1 {
		width = 1
	}
	height = int(t.Header.Height) >> mip
	if height < 1 {
		height = 1
	}
	return width, height
}

// depthAt returns the number of volume slices at the given mip level.
func (t *Texture) depthAt(mip int) int {
	d := int(t.Header.Depth) >> mip
	if d < 1 {
		d = 1
	}
	return d
}

// unitSize returns the uncompressed byte length of one storage unit (all
// depth slices of one mip/frame/face).
func (t *Texture) unitSize(mip int) int {
	w, h := t.MipSize(mip)
	return t.Header.Format.DataSize(w, h) * t.depthAt(mip)
}

// unitIndex returns the storage-order index of a unit. Mips are stored
// smallest first, then frames, then faces.
func (t *Texture) unitIndex(mip, frame, face int) int {
	perMip := int(t.Header.Frames) * t.Faces()
	return (int(t.Header.MipCount)-1-mip)*perMip + frame*t.Faces() + face
}

// unitData returns the uncompressed payload of one storage unit,
// inflating it first when the file uses aux compression.
func (t *Texture) unitData(mip, frame, face int) ([]byte, error) {
	idx := t.unitIndex(mip, frame, face)

	if t.aux != nil && t.aux.level != 0 {
		start := t.highResStart
		for i := 0; i < idx; i++ {
			start += int(t.aux.sizes[i])
		}
		end := start + int(t.aux.sizes[idx])

		fr := flate.NewReader(bytes.NewReader(t.data[start:end]))
		defer fr.Close()
		payload := make([]byte, t.unitSize(mip))
		if _, err := io.ReadFull(fr, payload); err != nil {
			return nil, fmt.Errorf("inflate mip %d frame %d face %d: %w", mip, frame, face, err)
		}
		return payload, nil
	}

	start := t.highResStart
	for m := int(t.Header.MipCount) - 1; m > mip; m-- {
		start += t.unitSize(m) * int(t.Header.Frames) * t.Faces()
	}
	start += (frame*t.Faces() + face) * t.unitSize(mip)
	return t.data[start : start+t.unitSize(mip)], nil
}

// Image decodes one image from the high-res payload. mip 0 is the largest
// level; volume textures yield their first slice.
func (t *Texture) Image(mip, frame, face int) (*image.NRGBA, error) {
	if mip < 0 || mip >= int(t.Header.MipCount) {
		return nil, fmt.Errorf("mip %d out of range [0, %d)", mip, t.Header.MipCount)
	}
	if frame < 0 || frame >= int(t.Header.Frames) {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", frame, t.Header.Frames)
	}
	if face < 0 || face >= t.Faces() {
		return nil, fmt.Errorf("face %d out of range [0, %d)", face, t.Faces())
	}
	if !t.Header.Format.Supported() {
		return nil, fmt.Errorf("unsupported image format %s", t.Header.Format)
	}

	payload, err := t.unitData(mip, frame, face)
	if err != nil {
		return nil, err
	}
	w, h := t.MipSize(mip)
	slice := t.Header.Format.DataSize(w, h)
	return t.Header.Format.Decode(payload[:slice], w, h)
}

// LowResImage decodes the embedded thumbnail, if the file has one.
func (t *Texture) LowResImage() (*image.NRGBA, error) {
	h := &t.Header
	if h.LowResFormat == FormatNone || h.LowResWidth == 0 || h.LowResHeight == 0 {
		return nil, fmt.Errorf("no low-res image")
	}
	size := h.LowResFormat.DataSize(int(h.LowResWidth), int(h.LowResHeight))
	if t.lowResStart == 0 || t.lowResStart+size > len(t.data) {
		return nil, fmt.Errorf("low-res image data out of range")
	}
	return h.LowResFormat.Decode(
		t.data[t.lowResStart:t.lowResStart+size],
		int(h.LowResWidth), int(h.LowResHeight),
	)
}

// VerifyCRC checks the CRC resource against the file body (everything
// after the header and resource dictionary). Files without a CRC resource
// pass trivially.
func (t *Texture) VerifyCRC() error {
	res := t.Header.Resource(TagCRC)
	if res == nil {
		return nil
	}
	if res.Flags&ResFlagNoData == 0 {
		return fmt.Errorf("CRC resource is not inline")
	}
	body := t.data[t.Header.HeaderSize:]
	if got := crc32.ChecksumIEEE(body); got != res.Data {
		return fmt.Errorf("CRC mismatch: header says %#08x, computed %#08x", res.Data, got)
	}
	return nil
}
