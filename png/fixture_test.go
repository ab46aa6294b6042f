package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"

	"github.com/shoccho/pngo/internal/crc32"
)

func writeChunk(buf *bytes.Buffer, chunkType string, data []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf.Write(lenBuf[:])
	buf.WriteString(chunkType)
	buf.Write(data)
	crc := crc32.ChunkCRC([]byte(chunkType), data)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc)
	buf.Write(crcBuf[:])
}

func ihdrBytes(width, height uint32, bitDepth, colorType, interlace byte) []byte {
	var b bytes.Buffer
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], width)
	b.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], height)
	b.Write(u32[:])
	b.WriteByte(bitDepth)
	b.WriteByte(colorType)
	b.WriteByte(0) // compression method
	b.WriteByte(0) // filter method
	b.WriteByte(interlace)
	return b.Bytes()
}

func mustZlib(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// buildPNG assembles a minimal valid PNG stream around caller-supplied
// filtered scanline bytes (one leading filter-type byte per row already
// included).
func buildPNG(width, height uint32, bitDepth, colorType byte, plte []byte, filteredRows []byte) []byte {
	var buf bytes.Buffer
	buf.Write(pngSignature[:])
	writeChunk(&buf, "IHDR", ihdrBytes(width, height, bitDepth, colorType, 0))
	if plte != nil {
		writeChunk(&buf, "PLTE", plte)
	}
	writeChunk(&buf, "IDAT", mustZlib(filteredRows))
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes()
}
