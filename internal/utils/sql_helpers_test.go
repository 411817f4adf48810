package utils

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullStringConversions(t *testing.T) {
	valid := sql.NullString{String: "hello", Valid: true}
	invalid := sql.NullString{}

	assert.Equal(t, "hello", NullStringToString(valid))
	assert.Equal(t, "", NullStringToString(invalid))

	ptr := NullStringToPointer(valid)
	assert.NotNil(t, ptr)
	assert.Equal(t, "hello", *ptr)
	assert.Nil(t, NullStringToPointer(invalid))
}

func TestNullNumericConversions(t *testing.T) {
	assert.Equal(t, 42, NullInt64ToInt(sql.NullInt64{Int64: 42, Valid: true}))
	assert.Equal(t, 0, NullInt64ToInt(sql.NullInt64{}))

	assert.Equal(t, 3.14, NullFloat64ToFloat64(sql.NullFloat64{Float64: 3.14, Valid: true}))
	assert.Equal(t, 0.0, NullFloat64ToFloat64(sql.NullFloat64{}))
}

func TestNullTimeConversions(t *testing.T) {
	ts := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	ptr := NullTimeToPointer(sql.NullTime{Time: ts, Valid: true})
	assert.NotNil(t, ptr)
	assert.Equal(t, ts, *ptr)
	assert.Nil(t, NullTimeToPointer(sql.NullTime{}))

	assert.Equal(t, ts, NullTimeToTime(sql.NullTime{Time: ts, Valid: true}))
	assert.True(t, NullTimeToTime(sql.NullTime{}).IsZero())
}
