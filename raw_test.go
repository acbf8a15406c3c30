package vgacat

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRoundTrip(t *testing.T) {
	t.Parallel()

	frames, _ := Demo().DecodeFrames()

	var b bytes.Buffer
	require.NoError(t, WriteRaw(&b, frames))

	decoded, err := ReadRaw(&b)
	require.NoError(t, err)
	assert.Equal(t, frames, decoded)
}

func TestWriteRawNoFrames(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	require.NoError(t, WriteRaw(&b, nil))

	decoded, err := ReadRaw(&b)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestReadRawRejectsPartialFrames(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	zw, err := zstd.NewWriter(&b)
	require.NoError(t, err)
	_, err = zw.Write(make([]byte, 100))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ReadRaw(&b)
	assert.ErrorIs(t, err, errRawSize)
}

func TestReadRawRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ReadRaw(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(t, err)
}
