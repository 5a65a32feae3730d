package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	loc := time.FixedZone("BST", 3600)
	ts := time.Date(2025, 6, 23, 11, 47, 24, 890799237, loc)

	assert.Equal(t, "2025-06-23T10:47:24.890799237Z", FormatTimeForDB(ts))
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-01T00:00:00.000000000Z", FormatTimePtrForDB(&ts))
}

func TestFormatTimeForDB_SortsAsText(t *testing.T) {
	whole := FormatTimeForDB(base)
	tenth := FormatTimeForDB(base.Add(100 * time.Millisecond))
	twelfth := FormatTimeForDB(base.Add(120 * time.Millisecond))

	assert.Len(t, tenth, len(whole))
	assert.Less(t, whole, tenth)
	assert.Less(t, tenth, twelfth)
}

func TestParseTimeFromDB(t *testing.T) {
	ts := time.Date(2025, 6, 23, 10, 47, 24, 5000000, time.UTC)

	parsed, err := ParseTimeFromDB(FormatTimeForDB(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	_, err = ParseTimeFromDB("2025-06-23 11:20:10")
	assert.Error(t, err)
}

func TestParseNullTimeFromDB(t *testing.T) {
	got, err := ParseNullTimeFromDB(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseNullTimeFromDB(sql.NullString{String: "2025-01-01T00:00:01Z", Valid: true})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Second())

	_, err = ParseNullTimeFromDB(sql.NullString{String: "yesterday", Valid: true})
	assert.Error(t, err)
}
