package png

import "github.com/shoccho/pngo/pngerr"

const paletteMaxBytes = 256 * 3

// palette holds the RGB triples from a PLTE chunk. For non-indexed images a
// PLTE chunk is accepted and simply ignored, matching the PNG spec's
// allowance of an (unused) palette alongside RGB/RGBA data.
type palette struct {
	entries []byte
}

func newPalette(data []byte) (*palette, error) {
	if len(data) > paletteMaxBytes || len(data)%3 != 0 {
		return nil, pngerr.New(pngerr.MalformedPlte, "PLTE size must be a multiple of 3, up to 768 bytes").
			WithValue(uint32(len(data)))
	}
	return &palette{entries: data}, nil
}

// EntryCount returns the number of RGB triples in the palette.
func (p *palette) EntryCount() int {
	if p == nil {
		return 0
	}
	return len(p.entries) / 3
}

// Lookup returns the RGB triple for index, or an error if index is out of range.
func (p *palette) Lookup(index uint8) (r, g, b byte, err error) {
	if p == nil || int(index) >= p.EntryCount() {
		return 0, 0, 0, pngerr.New(pngerr.PaletteIndexOutOfRange, "palette index out of range").
			WithValue(uint32(index))
	}
	base := int(index) * 3
	return p.entries[base], p.entries[base+1], p.entries[base+2], nil
}
