package png

import (
	"math"

	"github.com/shoccho/pngo/imageformat"
	"github.com/shoccho/pngo/internal/byteutil"
	"github.com/shoccho/pngo/internal/numeric"
	"github.com/shoccho/pngo/pngerr"
)

const ihdrChunkSize = 13

// header holds the parsed and validated IHDR fields plus every geometry
// value derived from them.
type header struct {
	Width              uint32
	Height             uint32
	BitDepth           uint8
	ColorType          imageformat.ColorType
	CompressionMethod  uint8
	FilterMethod       uint8
	InterlaceMethod    uint8
	SamplesPerPixel    uint8
	ChannelCount       uint8
	Stride             uint8
	ScanlineSize       uint32
	ScanlinesSize      uint32
	RGBScanlineSize    uint32
	RGBScanlinesSize   uint32
	RGBAScanlineSize   uint32
	RGBAScanlinesSize  uint32
}

var bitDepthsByColorType = map[imageformat.ColorType][]uint8{
	imageformat.Grayscale:      {1, 2, 4, 8, 16},
	imageformat.RGB:            {8, 16},
	imageformat.Indexed:        {1, 2, 4, 8},
	imageformat.GrayscaleAlpha: {8, 16},
	imageformat.RGBA:           {8, 16},
}

func allowedBitDepth(colorType imageformat.ColorType, bitDepth uint8) bool {
	for _, d := range bitDepthsByColorType[colorType] {
		if d == bitDepth {
			return true
		}
	}
	return false
}

// parseHeader validates IHDR's 13 raw bytes and derives every scanline
// geometry value the rest of the decoder needs.
func parseHeader(data []byte, maxScanlinesSize uint64) (*header, error) {
	if len(data) != ihdrChunkSize {
		return nil, pngerr.New(pngerr.MalformedIhdr, "IHDR chunk must be exactly 13 bytes").WithValue(uint32(len(data)))
	}

	cursor := byteutil.NewCursor(data)
	width, _ := cursor.ReadUint32()
	height, _ := cursor.ReadUint32()
	bitDepth, _ := cursor.ReadByte()
	colorTypeByte, _ := cursor.ReadByte()
	compressionMethod, _ := cursor.ReadByte()
	filterMethod, _ := cursor.ReadByte()
	interlaceMethod, _ := cursor.ReadByte()

	if width == 0 || height == 0 {
		return nil, pngerr.New(pngerr.MalformedIhdr, "width and height must both be non-zero")
	}

	switch bitDepth {
	case 1, 2, 4, 8, 16:
	default:
		return nil, pngerr.New(pngerr.MalformedIhdr, "bit depth must be one of 1, 2, 4, 8, 16").WithValue(uint32(bitDepth))
	}

	colorType := imageformat.ColorType(colorTypeByte)
	samplesPerPixel, ok := colorType.SamplesPerPixel()
	if !ok {
		return nil, pngerr.New(pngerr.UnsupportedCombination, "unsupported color type").WithValue(uint32(colorTypeByte))
	}
	if !allowedBitDepth(colorType, bitDepth) {
		return nil, pngerr.New(pngerr.UnsupportedCombination, "bit depth not allowed for this color type").
			WithValue(uint32(bitDepth))
	}

	if compressionMethod != 0 {
		return nil, pngerr.New(pngerr.MalformedIhdr, "compression method must be 0").WithValue(uint32(compressionMethod))
	}
	if filterMethod != 0 {
		return nil, pngerr.New(pngerr.MalformedIhdr, "filter method must be 0").WithValue(uint32(filterMethod))
	}
	switch interlaceMethod {
	case 0:
	case 1:
		return nil, pngerr.New(pngerr.UnsupportedInterlace, "Adam7 interlacing is not supported")
	default:
		return nil, pngerr.New(pngerr.MalformedIhdr, "interlace method must be 0 or 1").WithValue(uint32(interlaceMethod))
	}

	channelCount, _ := colorType.ChannelCount()

	h := &header{
		Width:             width,
		Height:            height,
		BitDepth:          bitDepth,
		ColorType:         colorType,
		CompressionMethod: compressionMethod,
		FilterMethod:      filterMethod,
		InterlaceMethod:   interlaceMethod,
		SamplesPerPixel:   samplesPerPixel,
		ChannelCount:      channelCount,
	}

	if err := h.deriveGeometry(maxScanlinesSize); err != nil {
		return nil, err
	}
	return h, nil
}

// deriveGeometry computes stride and the six scanline-size queries, guarding
// against any intermediate value overflowing 32 bits.
func (h *header) deriveGeometry(maxScanlinesSize uint64) error {
	strideBits := uint64(h.BitDepth) * uint64(h.SamplesPerPixel)
	stride := numeric.CeilDiv(strideBits, 8)
	if stride == 0 {
		stride = 1
	}

	scanlineBits := uint64(h.Width) * uint64(h.BitDepth) * uint64(h.SamplesPerPixel)
	scanlineSize := numeric.CeilDiv(scanlineBits, 8)
	scanlinesSize := scanlineSize * uint64(h.Height)

	sampleSize := uint64(1)
	if h.BitDepth == 16 {
		sampleSize = 2
	}
	rgbScanlineSize := uint64(h.Width) * sampleSize * 3
	rgbaScanlineSize := uint64(h.Width) * sampleSize * 4

	if scanlinesSize+uint64(h.Height) > maxScanlinesSize ||
		scanlinesSize > math.MaxUint32 ||
		rgbScanlineSize*uint64(h.Height) > math.MaxUint32 ||
		rgbaScanlineSize*uint64(h.Height) > math.MaxUint32 {
		return pngerr.New(pngerr.TooLarge, "the file exceeds reasonable limits")
	}

	h.Stride = uint8(stride)
	h.ScanlineSize = uint32(scanlineSize)
	h.ScanlinesSize = uint32(scanlinesSize)
	h.RGBScanlineSize = uint32(rgbScanlineSize)
	h.RGBScanlinesSize = uint32(rgbScanlineSize * uint64(h.Height))
	h.RGBAScanlineSize = uint32(rgbaScanlineSize)
	h.RGBAScanlinesSize = uint32(rgbaScanlineSize * uint64(h.Height))
	return nil
}
