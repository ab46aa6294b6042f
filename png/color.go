package png

import (
	"github.com/shoccho/pngo/imageformat"
	"github.com/shoccho/pngo/internal/assertx"
)

// outputSampleSize returns the per-sample byte width of the canonical
// RGB/RGBA projections: 1 byte unless the source bit depth is 16.
func outputSampleSize(bitDepth uint8) int {
	if bitDepth > 8 {
		return 2
	}
	return 1
}

// convertToRGB projects defiltered bytes onto canonical RGB. RGB input is
// returned unchanged (callers treat this as a borrowed view, never mutating
// it) since the layout already matches.
func convertToRGB(h *header, pal *palette, defiltered []byte) ([]byte, error) {
	switch h.ColorType {
	case imageformat.RGB:
		return defiltered, nil
	case imageformat.Indexed:
		return unpackIndexed(h, pal, defiltered)
	case imageformat.Grayscale:
		gray := defiltered
		if h.BitDepth < 8 {
			gray = unpackGrayscale(h, defiltered)
		}
		return replicateGrayToRGB(gray, outputSampleSize(h.BitDepth)), nil
	case imageformat.GrayscaleAlpha:
		return dropAlphaReplicateGray(h, defiltered), nil
	case imageformat.RGBA:
		return dropAlphaFromRGBA(h, defiltered), nil
	default:
		assertx.Assert(false, "color type reached convertToRGB unvalidated")
		return nil, nil
	}
}

// convertToRGBA projects defiltered bytes onto canonical RGBA, appending a
// fully opaque alpha sample when the source had none.
func convertToRGBA(h *header, pal *palette, defiltered []byte) ([]byte, error) {
	if h.ColorType == imageformat.RGBA {
		return defiltered, nil
	}

	rgb, err := convertToRGB(h, pal, defiltered)
	if err != nil {
		return nil, err
	}

	sampleSize := outputSampleSize(h.BitDepth)
	rgbPixelSize := sampleSize * 3
	rgbaPixelSize := sampleSize * 4
	numPixels := len(rgb) / rgbPixelSize

	opaque := make([]byte, sampleSize)
	for i := range opaque {
		opaque[i] = 0xFF
	}

	dest := make([]byte, numPixels*rgbaPixelSize)
	for i := 0; i < numPixels; i++ {
		srcBase := i * rgbPixelSize
		dstBase := i * rgbaPixelSize
		copy(dest[dstBase:], rgb[srcBase:srcBase+rgbPixelSize])
		copy(dest[dstBase+rgbPixelSize:], opaque)
	}
	return dest, nil
}

// replicateGrayToRGB writes each sampleSize-byte gray sample to all three of
// R, G, and B.
func replicateGrayToRGB(gray []byte, sampleSize int) []byte {
	numSamples := len(gray) / sampleSize
	dest := make([]byte, numSamples*sampleSize*3)
	for i := 0; i < numSamples; i++ {
		sample := gray[i*sampleSize : i*sampleSize+sampleSize]
		base := i * sampleSize * 3
		copy(dest[base:], sample)
		copy(dest[base+sampleSize:], sample)
		copy(dest[base+2*sampleSize:], sample)
	}
	return dest
}

// dropAlphaReplicateGray handles GrayscaleAlpha -> RGB: the gray sample
// replicates to R, G, B and the trailing alpha sample is dropped.
func dropAlphaReplicateGray(h *header, defiltered []byte) []byte {
	sampleSize := outputSampleSize(h.BitDepth)
	pixelSize := sampleSize * 2
	numPixels := len(defiltered) / pixelSize

	dest := make([]byte, numPixels*sampleSize*3)
	for i := 0; i < numPixels; i++ {
		gray := defiltered[i*pixelSize : i*pixelSize+sampleSize]
		base := i * sampleSize * 3
		copy(dest[base:], gray)
		copy(dest[base+sampleSize:], gray)
		copy(dest[base+2*sampleSize:], gray)
	}
	return dest
}

// dropAlphaFromRGBA handles RGBA -> RGB: each pixel's trailing alpha
// sample(s) are skipped.
func dropAlphaFromRGBA(h *header, defiltered []byte) []byte {
	sampleSize := outputSampleSize(h.BitDepth)
	pixelSize := sampleSize * 4
	rgbPixelSize := sampleSize * 3
	numPixels := len(defiltered) / pixelSize

	dest := make([]byte, numPixels*rgbPixelSize)
	for i := 0; i < numPixels; i++ {
		copy(dest[i*rgbPixelSize:], defiltered[i*pixelSize:i*pixelSize+rgbPixelSize])
	}
	return dest
}
