package inflate

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/shoccho/pngo/pngerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestAdapterSingleAppend(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated for compressibility")
	compressed := zlibCompress(t, payload)

	a := NewAdapter()
	require.NoError(t, a.Append(compressed))

	got, err := a.Finish()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestAdapterChunkedAppend(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF}, 500)
	compressed := zlibCompress(t, payload)

	a := NewAdapter()
	// Feed the compressed stream back in small, arbitrarily split pieces,
	// mimicking successive IDAT chunks.
	const pieceSize = 7
	for i := 0; i < len(compressed); i += pieceSize {
		end := i + pieceSize
		if end > len(compressed) {
			end = len(compressed)
		}
		require.NoError(t, a.Append(compressed[i:end]))
	}

	got, err := a.Finish()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestAdapterEmptyStreamIsCorrupt(t *testing.T) {
	a := NewAdapter()
	_, err := a.Finish()
	require.Error(t, err)
	assert.True(t, pngerr.Is(err, pngerr.CorruptStream))
}

func TestAdapterInvalidHeaderIsCorrupt(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.Append([]byte{0x00, 0x01, 0x02, 0x03}))
	_, err := a.Finish()
	require.Error(t, err)
	assert.True(t, pngerr.Is(err, pngerr.CorruptStream))
}
