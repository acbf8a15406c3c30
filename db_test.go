package vgacat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *AnimDB {
	t.Helper()

	db, err := NewAnimDB(filepath.Join(t.TempDir(), "vgacat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestAnimDBAddGet(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	id, err := db.Add("demo", Demo())
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := db.Get("demo")
	require.NoError(t, err)
	assert.Equal(t, Demo(), got)
}

func TestAnimDBGetMissing(t *testing.T) {
	t.Parallel()

	got, err := testDB(t).Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnimDBDedupesByPayload(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	id1, err := db.Add("demo", Demo())
	require.NoError(t, err)

	id2, err := db.Add("copy", Demo())
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	entries, err := db.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAnimDBRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	_, err := db.Add("demo", Demo())
	require.NoError(t, err)

	other := Demo()
	other.Payload[0] ^= 0xff
	_, err = db.Add("demo", other)
	assert.Error(t, err)
}

func TestAnimDBList(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	other := Demo()
	other.Payload[0] ^= 0xff

	_, err := db.Add("zebra", Demo())
	require.NoError(t, err)
	_, err = db.Add("aardvark", other)
	require.NoError(t, err)

	entries, err := db.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "aardvark", entries[0].Name)
	assert.Equal(t, "zebra", entries[1].Name)
	assert.Equal(t, PayloadCRC(other), entries[0].CRC)
	assert.Equal(t, PayloadCRC(Demo()), entries[1].CRC)
	assert.Equal(t, 1696, entries[0].Bits)
}

func TestAnimDBFindPreviewByCRC(t *testing.T) {
	t.Parallel()

	db := testDB(t)

	_, err := db.Add("demo", Demo())
	require.NoError(t, err)

	preview, err := db.FindPreviewByCRC(PayloadCRC(Demo()))
	require.NoError(t, err)

	frames, _ := Demo().DecodeFrames()
	assert.Equal(t, frames[0].Pack(), preview)

	missing, err := db.FindPreviewByCRC("00000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
