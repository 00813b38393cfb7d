package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/encoding"
)

func TestDetect_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("data;café")...)

	r, charset, err := encoding.Detect(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", charset)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "data;café", string(out))
}

func TestDetect_PlainUTF8(t *testing.T) {
	r, charset, err := encoding.Detect(strings.NewReader("date;descrição;montante"))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", charset)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "date;descrição;montante", string(out))
}

func TestDetect_UTF16LE(t *testing.T) {
	// "ab" in UTF-16LE with BOM.
	input := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}

	r, charset, err := encoding.Detect(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "UTF-16LE", charset)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(out))
}

func TestDetect_Windows1252Fallback(t *testing.T) {
	// "café" in Windows-1252: é is 0xE9, invalid as UTF-8.
	input := []byte{'c', 'a', 'f', 0xE9}

	r, _, err := encoding.Detect(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "café", string(out))
}
