package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsStale(t *testing.T) {
	now := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsStale(now.Add(-time.Minute), now, DefaultTTL))
	assert.True(t, IsStale(now.Add(-DefaultTTL), now, DefaultTTL))
	assert.True(t, IsStale(now.Add(-10*time.Minute), now, DefaultTTL))
	assert.True(t, IsStale(time.Time{}, now, DefaultTTL))
}

func TestEntryStale(t *testing.T) {
	now := time.Now()
	e := NewEntry([]string{"a"}, now.Add(-2*time.Minute))

	assert.False(t, e.Stale(now, 0)) // default TTL
	assert.True(t, e.Stale(now, time.Minute))
	assert.Equal(t, []string{"a"}, e.Data)
}
