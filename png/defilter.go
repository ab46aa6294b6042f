package png

import (
	"github.com/rs/zerolog"
	"github.com/shoccho/pngo/pngerr"
)

const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// defilter reverses the per-row PNG filter, turning the
// (scanlineSize+1)*height filtered stream (one leading filter-type byte per
// scanline) into scanlineSize*height raw bytes.
//
// Row r's "above" neighbor is row r-1's already-defiltered bytes; row 0
// uses a virtual all-zero row instead, so rows must be processed strictly
// in order. No per-row scratch buffer is allocated: both the "left" and
// "above" neighbors are read straight out of the destination slice being
// built.
func defilter(filtered []byte, scanlineSize uint32, height uint32, stride uint8, log zerolog.Logger) ([]byte, error) {
	filteredRowSize := int64(scanlineSize) + 1
	expected := filteredRowSize * int64(height)
	if int64(len(filtered)) != expected {
		return nil, pngerr.New(pngerr.SizeMismatch, "inflated size does not match (scanline_size + 1) * height").
			WithValue(uint32(len(filtered)))
	}

	dest := make([]byte, int64(scanlineSize)*int64(height))
	strideN := int(stride)

	for row := uint32(0); row < height; row++ {
		rowStart := int64(row) * filteredRowSize
		filterType := filtered[rowStart]
		f := filtered[rowStart+1 : rowStart+1+int64(scanlineSize)]

		d := dest[int64(row)*int64(scanlineSize) : int64(row+1)*int64(scanlineSize)]
		var p []byte
		if row > 0 {
			p = dest[int64(row-1)*int64(scanlineSize) : int64(row)*int64(scanlineSize)]
		}

		if err := defilterRow(filterType, f, p, d, strideN); err != nil {
			return nil, err
		}
		log.Trace().Uint32("row", row).Uint8("filter", filterType).Msg("defiltered row")
	}

	return dest, nil
}

func defilterRow(filterType byte, f, p, d []byte, stride int) error {
	switch filterType {
	case filterNone:
		copy(d, f)
	case filterSub:
		for i := range f {
			var left byte
			if i >= stride {
				left = d[i-stride]
			}
			d[i] = f[i] + left
		}
	case filterUp:
		for i := range f {
			var above byte
			if p != nil {
				above = p[i]
			}
			d[i] = f[i] + above
		}
	case filterAverage:
		for i := range f {
			var left, above int
			if i >= stride {
				left = int(d[i-stride])
			}
			if p != nil {
				above = int(p[i])
			}
			d[i] = f[i] + byte((left+above)/2)
		}
	case filterPaeth:
		for i := range f {
			var left, above, upperLeft int
			if i >= stride {
				left = int(d[i-stride])
			}
			if p != nil {
				above = int(p[i])
				if i >= stride {
					upperLeft = int(p[i-stride])
				}
			}
			d[i] = f[i] + paethPredictor(left, above, upperLeft)
		}
	default:
		return pngerr.New(pngerr.InvalidFilter, "filter type byte must be 0-4").WithValue(uint32(filterType))
	}
	return nil
}

// paethPredictor implements the PNG Paeth predictor: estimate the current
// byte from its left, above, and upper-left neighbors, picking whichever of
// the three comes closest to the linear estimate p. Ties favor left, then
// above, then upper-left.
func paethPredictor(left, above, upperLeft int) byte {
	p := left + above - upperLeft
	pa := absInt(p - left)
	pb := absInt(p - above)
	pc := absInt(p - upperLeft)

	switch {
	case pa <= pb && pa <= pc:
		return byte(left)
	case pb <= pc:
		return byte(above)
	default:
		return byte(upperLeft)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
