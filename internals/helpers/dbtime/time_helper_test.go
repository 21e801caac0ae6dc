package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseLocal(t *testing.T) {
	got, ok := ParseLocal("2026-03-01T08:00", "2006-01-02T15:04")
	require.True(t, ok)
	_, offset := got.Zone()
	assert.Equal(t, 7*60*60, offset)

	got, ok = ParseLocal("2026-03-01T08:00:00Z", "2006-01-02T15:04", time.RFC3339)
	require.True(t, ok)
	assert.Equal(t, 8, got.UTC().Hour())

	_, ok = ParseLocal("  ", time.RFC3339)
	assert.False(t, ok)
	_, ok = ParseLocal("besok", "2006-01-02")
	assert.False(t, ok)
}
