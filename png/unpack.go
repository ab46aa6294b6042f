package png

import "math"

// unpackGrayscale expands sub-byte (bit depth 1, 2, or 4) grayscale samples
// into one full byte per sample, scaled so the output spans the full 0-255
// range — e.g. 1-bit {0,1} becomes {0,255}, 2-bit becomes {0,85,170,255}.
//
// Rows may be wider than a whole number of bytes (width*bit_depth not a
// multiple of 8); the padding bits added to complete the scanline's last
// byte are simply never read here, since the loop is driven by width, not
// by scanline_size.
func unpackGrayscale(h *header, defiltered []byte) []byte {
	width, height := h.Width, h.Height
	bitDepth := uint32(h.BitDepth)
	samplesPerByte := 8 / bitDepth
	mask := byte(1<<bitDepth - 1)
	maxValue := float64(int(1<<bitDepth) - 1)
	scalingFactor := 255.0 / maxValue

	dest := make([]byte, int64(width)*int64(height))
	destIdx := 0
	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			byteIndex := row*h.ScanlineSize + col/samplesPerByte
			bitsOffset := (samplesPerByte - 1 - (col % samplesPerByte)) * bitDepth
			sample := (defiltered[byteIndex] >> bitsOffset) & mask
			dest[destIdx] = byte(math.Round(float64(sample) * scalingFactor))
			destIdx++
		}
	}
	return dest
}

// unpackIndexed resolves every pixel's palette index — whether packed
// several to a byte (bit depth < 8) or one per byte (bit depth 8) — to its
// three palette RGB bytes.
func unpackIndexed(h *header, pal *palette, defiltered []byte) ([]byte, error) {
	width, height := h.Width, h.Height
	bitDepth := uint32(h.BitDepth)
	samplesPerByte := 8 / bitDepth
	mask := byte(1<<bitDepth - 1)

	dest := make([]byte, int64(width)*int64(height)*3)
	destIdx := 0
	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			byteIndex := row*h.ScanlineSize + col/samplesPerByte
			bitsOffset := (samplesPerByte - 1 - (col % samplesPerByte)) * bitDepth
			sample := (defiltered[byteIndex] >> bitsOffset) & mask

			r, g, b, err := pal.Lookup(sample)
			if err != nil {
				return nil, err
			}
			dest[destIdx] = r
			dest[destIdx+1] = g
			dest[destIdx+2] = b
			destIdx += 3
		}
	}
	return dest, nil
}
