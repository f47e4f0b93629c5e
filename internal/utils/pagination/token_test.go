package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 10, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(entryDate, createdAt)
	require.NotEmpty(t, token)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(decodedDate))
	assert.True(t, createdAt.Equal(decodedCreatedAt))
}

func TestDecodeTokenErrors(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but only one field, no separator.
	_, _, err = DecodeToken("MjAyNi0wMy0xMFQwMDowMDowMFo=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Two fields but the first is not a timestamp.
	garbage := EncodeMultiFieldToken("notadate", "2026-03-10T14:30:45.123456789Z")
	_, _, err = DecodeToken(garbage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	fields := []string{"4100", "acc-123"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, fields, decoded)

	// Fields containing the separator split further; callers must not
	// embed pipes in keyset values.
	piped, err := DecodeMultiFieldToken(EncodeMultiFieldToken("a|b", "c"))
	require.NoError(t, err)
	assert.Len(t, piped, 3)
}
