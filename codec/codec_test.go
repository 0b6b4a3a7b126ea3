package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Lookup ────────────────────────────────────────────────────────────────────

// TestLookup_KnownNames verifies that common IANA charset names and their
// registered aliases resolve to an implementation.
func TestLookup_KnownNames(t *testing.T) {
	names := []string{"utf-8", "UTF-8", "iso-8859-1", "latin1", "windows-1252", "euc-kr"}

	for _, name := range names {
		enc, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}
}

// TestLookup_DefaultEncoding verifies that the package default resolves.
func TestLookup_DefaultEncoding(t *testing.T) {
	enc, err := Lookup(DefaultEncoding)
	require.NoError(t, err)
	assert.NotNil(t, enc)
}

// TestLookup_UnknownName verifies that an unregistered charset name is
// reported as ErrUnknownEncoding.
func TestLookup_UnknownName(t *testing.T) {
	enc, err := Lookup("no-such-charset")
	assert.Nil(t, enc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

// ── Decode ────────────────────────────────────────────────────────────────────

// TestDecode_Latin1 verifies that high-bit latin-1 bytes decode to the
// corresponding UTF-8 string.
func TestDecode_Latin1(t *testing.T) {
	got, err := Decode("iso-8859-1", []byte{0xE9, 0x74, 0xE9})
	require.NoError(t, err)
	assert.Equal(t, "été", got)
}

// TestDecode_UTF8 verifies that utf-8 input is passed through unchanged.
func TestDecode_UTF8(t *testing.T) {
	got, err := Decode("utf-8", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

// TestDecode_UnknownEncoding verifies that decoding with an unregistered
// charset fails with ErrUnknownEncoding.
func TestDecode_UnknownEncoding(t *testing.T) {
	_, err := Decode("no-such-charset", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

// ── Encode ────────────────────────────────────────────────────────────────────

// TestEncode_Latin1 verifies that a UTF-8 string encodes to the corresponding
// latin-1 bytes.
func TestEncode_Latin1(t *testing.T) {
	got, err := Encode("iso-8859-1", "été")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE9, 0x74, 0xE9}, got)
}

// TestEncode_RoundTrip verifies that text survives an encode and decode round
// trip through a multi-byte charset.
func TestEncode_RoundTrip(t *testing.T) {
	const text = "안녕하세요"

	encoded, err := Encode("euc-kr", text)
	require.NoError(t, err)

	decoded, err := Decode("euc-kr", encoded)
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
}

// TestEncode_UnknownEncoding verifies that encoding with an unregistered
// charset fails with ErrUnknownEncoding.
func TestEncode_UnknownEncoding(t *testing.T) {
	_, err := Encode("no-such-charset", "hello")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}
