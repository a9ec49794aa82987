package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPNG builds the smallest structurally valid PNG: signature,
// an IHDR chunk and IEND.
func minimalPNG() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})

	ihdr := []byte{
		0, 0, 0, 1, // width
		0, 0, 0, 1, // height
		8, 0, 0, 0, 0, // bit depth, color type, compression, filter, interlace
	}
	writeChunk(&buf, "IHDR", ihdr)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

func TestCharCardRoundTrip(t *testing.T) {
	card := []byte(`{"name":"Barista","first_mes":"Welcome in!"}`)

	png, err := EmbedCharCard(minimalPNG(), card)
	require.NoError(t, err)

	got, err := ExtractCharCard(png)
	require.NoError(t, err)
	assert.Equal(t, card, got)
}

func TestEmbedReplacesExistingCard(t *testing.T) {
	first, err := EmbedCharCard(minimalPNG(), []byte(`{"name":"v1"}`))
	require.NoError(t, err)

	second, err := EmbedCharCard(first, []byte(`{"name":"v2"}`))
	require.NoError(t, err)

	got, err := ExtractCharCard(second)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"v2"}`), got)
}

func TestExtractWithoutCard(t *testing.T) {
	_, err := ExtractCharCard(minimalPNG())
	assert.ErrorIs(t, err, ErrNoCharCard)
}

func TestExtractRejectsNonPNG(t *testing.T) {
	_, err := ExtractCharCard([]byte("not an image at all"))
	assert.ErrorIs(t, err, ErrNotPNG)

	_, err = EmbedCharCard(nil, []byte("{}"))
	assert.ErrorIs(t, err, ErrNotPNG)
}

func TestExtractTruncatedPNG(t *testing.T) {
	png, err := EmbedCharCard(minimalPNG(), []byte(`{"name":"cut"}`))
	require.NoError(t, err)

	// Cut into the middle of the chara chunk
	_, err = ExtractCharCard(png[:len(png)-20])
	assert.ErrorIs(t, err, ErrNotPNG)
}
