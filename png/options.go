package png

import (
	"math"

	"github.com/rs/zerolog"
)

// decoderConfig holds the knobs a caller can set via DecoderOption. It never
// affects decode correctness, only diagnostics and a couple of documented
// size/strictness extensions beyond the base PNG spec.
type decoderConfig struct {
	logger               zerolog.Logger
	maxScanlinesSize     uint64
	strictAncillaryChunk bool
}

func defaultDecoderConfig() decoderConfig {
	return decoderConfig{
		logger:           zerolog.Nop(),
		maxScanlinesSize: math.MaxUint32,
	}
}

// DecoderOption configures a Decoder at construction time.
type DecoderOption func(*decoderConfig)

// WithLogger attaches a zerolog.Logger that receives chunk- and row-level
// diagnostic events. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) DecoderOption {
	return func(c *decoderConfig) {
		c.logger = logger
	}
}

// WithMaxScanlinesSize overrides the default 2^32-1 ceiling on
// scanlines_size + height used to reject unreasonably large images.
func WithMaxScanlinesSize(max uint64) DecoderOption {
	return func(c *decoderConfig) {
		c.maxScanlinesSize = max
	}
}

// WithStrictAncillaryChunks rejects unknown ancillary chunks instead of
// silently skipping them. Off by default, matching the base PNG spec.
func WithStrictAncillaryChunks(strict bool) DecoderOption {
	return func(c *decoderConfig) {
		c.strictAncillaryChunk = strict
	}
}
