// Package png implements a streaming decoder for the subset of the PNG
// format described by the base spec: non-interlaced images in any of the
// five standard color types, defiltered and optionally projected onto
// canonical RGB/RGBA buffers.
package png

import (
	"bytes"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shoccho/pngo/imageformat"
	"github.com/shoccho/pngo/internal/inflate"
	"github.com/shoccho/pngo/pngerr"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// Decoder holds one fully parsed and defiltered PNG image. Construct one
// with Open or Decode; every query method is then a cheap, allocation-free
// lookup except RawCopy, which allocates a fresh copy, and RGB and RGBA,
// which lazily build and cache a projection on first use.
type Decoder struct {
	cfg    decoderConfig
	header header
	pal    *palette

	defiltered []byte
	rgbCache   []byte
	rgbaCache  []byte

	traceID uuid.UUID
	log     zerolog.Logger
}

// Open reads path, validates the signature, decodes every chunk, and
// returns a ready Decoder.
func Open(path string, opts ...DecoderOption) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pngerr.Wrap(pngerr.IoError, "failed to open file", err)
	}
	defer f.Close()
	return Decode(f, opts...)
}

// Decode reads a full PNG stream from r and returns a ready Decoder.
func Decode(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	traceID := uuid.New()
	log := cfg.logger.With().Str("trace_id", traceID.String()).Logger()

	sig := make([]byte, 8)
	if _, err := io.ReadFull(r, sig); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, pngerr.Wrap(pngerr.NotAPng, "stream shorter than the PNG signature", err)
		}
		return nil, pngerr.Wrap(pngerr.IoError, "failed to read signature", err)
	}
	if !bytes.Equal(sig, pngSignature[:]) {
		return nil, pngerr.New(pngerr.NotAPng, "signature does not match the 8-byte PNG magic")
	}
	log.Debug().Msg("signature ok")

	d := &Decoder{cfg: cfg, traceID: traceID, log: log}

	var h *header
	var pal *palette
	var idat *inflate.Adapter
	var sawIDAT bool

	for {
		c, more, err := readChunk(r)
		if err != nil {
			return nil, err
		}

		log.Debug().Str("chunk", c.Type).Int("size", len(c.Data)).Msg("read chunk")

		switch c.Type {
		case chunkTypeIHDR:
			if h != nil {
				return nil, pngerr.New(pngerr.MalformedIhdr, "duplicate IHDR chunk")
			}
			h, err = parseHeader(c.Data, cfg.maxScanlinesSize)
			if err != nil {
				return nil, err
			}
		case chunkTypePLTE:
			if h == nil {
				return nil, pngerr.New(pngerr.MalformedIhdr, "PLTE chunk before IHDR")
			}
			pal, err = newPalette(c.Data)
			if err != nil {
				return nil, err
			}
		case chunkTypeIDAT:
			if h == nil {
				return nil, pngerr.New(pngerr.MalformedIhdr, "IDAT chunk before IHDR")
			}
			if h.ColorType == imageformat.Indexed && pal == nil {
				return nil, pngerr.New(pngerr.MalformedIhdr, "indexed image has no PLTE chunk")
			}
			if idat == nil {
				idat = inflate.NewAdapter()
			}
			sawIDAT = true
			if err := idat.Append(c.Data); err != nil {
				return nil, err
			}
		case chunkTypeIEND:
		default:
			if isCritical(c.Type) {
				return nil, pngerr.New(pngerr.UnknownCriticalChunk, "unrecognized critical chunk").
					WithValue(uint32(c.Type[0])<<24 | uint32(c.Type[1])<<16 | uint32(c.Type[2])<<8 | uint32(c.Type[3]))
			}
			if cfg.strictAncillaryChunk {
				return nil, pngerr.New(pngerr.UnknownCriticalChunk, "unrecognized ancillary chunk rejected by strict mode")
			}
			log.Debug().Str("chunk", c.Type).Msg("skipping unknown ancillary chunk")
		}

		if !more {
			break
		}
	}

	if h == nil {
		return nil, pngerr.New(pngerr.MalformedIhdr, "no IHDR chunk present")
	}
	if !sawIDAT {
		return nil, pngerr.New(pngerr.CorruptStream, "no IDAT chunk present")
	}

	inflated, err := idat.Finish()
	if err != nil {
		return nil, err
	}

	defiltered, err := defilter(inflated, h.ScanlineSize, h.Height, h.Stride, log)
	if err != nil {
		return nil, err
	}

	d.header = *h
	d.pal = pal
	d.defiltered = defiltered
	log.Debug().Msg("decode complete")
	return d, nil
}

func (d *Decoder) Width() uint32                { return d.header.Width }
func (d *Decoder) Height() uint32               { return d.header.Height }
func (d *Decoder) BitDepth() uint8              { return d.header.BitDepth }
func (d *Decoder) ColorType() imageformat.ColorType { return d.header.ColorType }
func (d *Decoder) SamplesPerPixel() uint8       { return d.header.SamplesPerPixel }
func (d *Decoder) ChannelCount() uint8          { return d.header.ChannelCount }
func (d *Decoder) ScanlineSize() uint32         { return d.header.ScanlineSize }
func (d *Decoder) ScanlinesSize() uint32        { return d.header.ScanlinesSize }
func (d *Decoder) RGBScanlineSize() uint32      { return d.header.RGBScanlineSize }
func (d *Decoder) RGBScanlinesSize() uint32     { return d.header.RGBScanlinesSize }
func (d *Decoder) RGBAScanlineSize() uint32     { return d.header.RGBAScanlineSize }
func (d *Decoder) RGBAScanlinesSize() uint32    { return d.header.RGBAScanlinesSize }

// TraceID identifies this decode for correlation with the attached logger's
// output.
func (d *Decoder) TraceID() uuid.UUID { return d.traceID }

// RawView returns the defiltered, still-source-color-typed bytes without
// copying. Callers must not mutate the returned slice.
func (d *Decoder) RawView() []byte {
	return d.defiltered
}

// RawCopy returns a copy of the defiltered bytes, safe to mutate.
func (d *Decoder) RawCopy() []byte {
	out := make([]byte, len(d.defiltered))
	copy(out, d.defiltered)
	return out
}

// RGB returns the canonical RGB projection, building and caching it on
// first call.
func (d *Decoder) RGB() ([]byte, error) {
	if d.rgbCache == nil {
		rgb, err := convertToRGB(&d.header, d.pal, d.defiltered)
		if err != nil {
			return nil, err
		}
		d.rgbCache = rgb
	}
	return d.rgbCache, nil
}

// RGBA returns the canonical RGBA projection, building and caching it on
// first call.
func (d *Decoder) RGBA() ([]byte, error) {
	if d.rgbaCache == nil {
		rgba, err := convertToRGBA(&d.header, d.pal, d.defiltered)
		if err != nil {
			return nil, err
		}
		d.rgbaCache = rgba
	}
	return d.rgbaCache, nil
}

// ResetCache drops any cached RGB/RGBA projection, forcing the next RGB or
// RGBA call to rebuild it from the current raw bytes.
func (d *Decoder) ResetCache() {
	d.rgbCache = nil
	d.rgbaCache = nil
}

// SwapByteOrder reverses the byte order of every 16-bit sample in the raw
// buffer in place, for callers that need little-endian samples. Any cached
// RGB/RGBA projection is invalidated, since it was built from the
// pre-swap bytes.
func (d *Decoder) SwapByteOrder() {
	if d.header.BitDepth != 16 {
		return
	}
	for i := 0; i+1 < len(d.defiltered); i += 2 {
		d.defiltered[i], d.defiltered[i+1] = d.defiltered[i+1], d.defiltered[i]
	}
	d.ResetCache()
}
