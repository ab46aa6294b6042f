package png

import (
	"io"

	"github.com/shoccho/pngo/internal/byteutil"
	"github.com/shoccho/pngo/internal/crc32"
	"github.com/shoccho/pngo/pngerr"
)

const (
	chunkTypeIHDR = "IHDR"
	chunkTypePLTE = "PLTE"
	chunkTypeIDAT = "IDAT"
	chunkTypeIEND = "IEND"

	// chunkDataSizeCeiling guards against allocating a buffer for an
	// attacker-controlled chunk length before any bytes have actually been
	// read; a genuinely truncated read still reports TruncatedFile.
	chunkDataSizeCeiling = 1 << 31
)

// chunk is one length-prefixed, type-tagged, CRC-checked PNG record.
type chunk struct {
	Type string
	Data []byte
}

// isCritical reports whether a chunk's type marks it critical, per the PNG
// convention that bit 5 (0x20) of the first type byte is clear for critical
// chunks and set for ancillary ones.
func isCritical(chunkType string) bool {
	return len(chunkType) == 4 && chunkType[0]&0x20 == 0
}

// readChunk reads one chunk (length, type, data, CRC) from r, validates its
// CRC, and reports whether another chunk may follow (false exactly when the
// type is IEND).
func readChunk(r io.Reader) (chunk, bool, error) {
	lengthBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lengthBuf); err != nil {
		return chunk{}, false, readErr(err)
	}
	length := byteutil.BigEndianUint32(lengthBuf)

	typeBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, typeBuf); err != nil {
		return chunk{}, false, readErr(err)
	}

	if uint64(length) > chunkDataSizeCeiling {
		return chunk{}, false, pngerr.New(pngerr.TooLarge, "chunk length exceeds sanity ceiling").WithValue(length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return chunk{}, false, readErr(err)
	}

	crcBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, crcBuf); err != nil {
		return chunk{}, false, readErr(err)
	}
	storedCRC := byteutil.BigEndianUint32(crcBuf)
	computedCRC := crc32.ChunkCRC(typeBuf, data)
	if computedCRC != storedCRC {
		return chunk{}, false, pngerr.New(pngerr.CrcMismatch, "chunk CRC does not match computed value").WithValue(storedCRC)
	}

	chunkType := string(typeBuf)
	return chunk{Type: chunkType, Data: data}, chunkType != chunkTypeIEND, nil
}

func readErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return pngerr.Wrap(pngerr.TruncatedFile, "stream ended before the declared chunk bytes", err)
	}
	return pngerr.Wrap(pngerr.IoError, "failed reading chunk", err)
}
