package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billingfiles/internal/encoding"
)

func TestEncode_Latin1(t *testing.T) {
	got, err := encoding.Encode("Åsa Öberg\n", "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC5, 's', 'a', ' ', 0xD6, 'b', 'e', 'r', 'g', '\n'}, got)
}

func TestEncode_UTF8Passthrough(t *testing.T) {
	got, err := encoding.Encode("Åsa", "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, []byte("Åsa"), got)
}

func TestEncode_UnrepresentableRune(t *testing.T) {
	_, err := encoding.Encode("price €", "ISO-8859-1")
	assert.Error(t, err)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := encoding.Lookup("EBCDIC-FANTASY")
	require.ErrorIs(t, err, encoding.ErrUnsupportedCharset)
}

func TestDecodeString_KnownCharset(t *testing.T) {
	got, err := encoding.DecodeString([]byte{'S', 0xE5, 'g'}, "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "Såg", got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "SÅGVERKET AB;Kundfaktura\nÖstra gatan 1\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)), "")
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Östra gatan\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input), "")
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Östra gatan\n", string(got))
}

func TestNewUTF8Reader_DetectsSingleByte(t *testing.T) {
	// "Östra gatan" in ISO-8859-1 / Windows-1252, both decode 0xD6 to Ö.
	input := []byte{0xD6, 's', 't', 'r', 'a', ' ', 'g', 'a', 't', 'a', 'n', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input), "")
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Östra gatan\n", string(got))
}
