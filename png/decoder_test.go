package png

import (
	"bytes"
	"testing"

	"github.com/shoccho/pngo/imageformat"
	"github.com/shoccho/pngo/pngerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTinyRGB(t *testing.T) {
	filteredRows := []byte{
		filterNone, 10, 20, 30, 40, 50, 60,
		filterNone, 70, 80, 90, 100, 110, 120,
	}
	raw := buildPNG(2, 2, 8, 2, nil, filteredRows)

	d, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), d.Width())
	assert.Equal(t, uint32(2), d.Height())
	assert.Equal(t, imageformat.RGB, d.ColorType())
	assert.Equal(t, []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}, d.RawView())

	rgb, err := d.RGB()
	require.NoError(t, err)
	assert.Equal(t, d.RawView(), rgb)

	rgba, err := d.RGBA()
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 255, 70, 80, 90, 255, 100, 110, 120, 255}, rgba)
}

func TestDecodeIndexedWithPalette(t *testing.T) {
	plte := []byte{1, 2, 3, 4, 5, 6}
	filteredRows := []byte{
		filterNone, 0x01, // pixel0=index0, pixel1=index1, packed 4-bit
	}
	raw := buildPNG(2, 1, 4, 3, plte, filteredRows)

	d, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	rgb, err := d.RGB()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, rgb)
}

func TestDecodeIndexedWithoutPaletteFails(t *testing.T) {
	filteredRows := []byte{filterNone, 0x00}
	raw := buildPNG(2, 1, 4, 3, nil, filteredRows)

	_, err := Decode(bytes.NewReader(raw))
	require.Error(t, err)
	assert.True(t, pngerr.Is(err, pngerr.MalformedIhdr))
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	raw := buildPNG(1, 1, 8, 0, nil, []byte{filterNone, 0x00})
	raw[0] = 0x00

	_, err := Decode(bytes.NewReader(raw))
	require.Error(t, err)
	assert.True(t, pngerr.Is(err, pngerr.NotAPng))
}

func TestDecodeRejectsUnknownCriticalChunk(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(pngSignature[:])
	writeChunk(&buf, "IHDR", ihdrBytes(1, 1, 8, 0, 0))
	writeChunk(&buf, "Zzzz", []byte{1}) // uppercase first letter -> critical bit clear
	writeChunk(&buf, "IDAT", mustZlib([]byte{filterNone, 0x00}))
	writeChunk(&buf, "IEND", nil)

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
	assert.True(t, pngerr.Is(err, pngerr.UnknownCriticalChunk))
}

func TestDecodeSkipsUnknownAncillaryChunk(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(pngSignature[:])
	writeChunk(&buf, "IHDR", ihdrBytes(1, 1, 8, 0, 0))
	writeChunk(&buf, "tEXt", []byte("hello"))
	writeChunk(&buf, "IDAT", mustZlib([]byte{filterNone, 0x00}))
	writeChunk(&buf, "IEND", nil)

	d, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), d.Width())
}

func TestDecodeStrictAncillaryChunksRejectsUnknown(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(pngSignature[:])
	writeChunk(&buf, "IHDR", ihdrBytes(1, 1, 8, 0, 0))
	writeChunk(&buf, "tEXt", []byte("hello"))
	writeChunk(&buf, "IDAT", mustZlib([]byte{filterNone, 0x00}))
	writeChunk(&buf, "IEND", nil)

	_, err := Decode(bytes.NewReader(buf.Bytes()), WithStrictAncillaryChunks(true))
	require.Error(t, err)
}

func TestResetCacheAndSwapByteOrder(t *testing.T) {
	filteredRows := []byte{filterNone, 0x00, 0x01}
	raw := buildPNG(1, 1, 16, 0, nil, filteredRows)

	d, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	rgb1, err := d.RGB()
	require.NoError(t, err)
	before := append([]byte{}, rgb1...)

	d.SwapByteOrder()
	rgb2, err := d.RGB()
	require.NoError(t, err)
	assert.NotEqual(t, before, rgb2)

	d.ResetCache()
	rgb3, err := d.RGB()
	require.NoError(t, err)
	assert.Equal(t, rgb2, rgb3)
}
