package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := New[int, string]()
	c.Set(1, "Acme Logistics", 0)

	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, "Acme Logistics", v)

	_, ok = c.Get(2)
	require.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[int, string]()

	base := time.Now()
	now = func() time.Time { return base }
	defer func() { now = time.Now }()

	c.Set(1, "expiring", time.Minute)
	c.Set(2, "forever", 0)

	_, ok := c.Get(1)
	require.True(t, ok)

	now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok = c.Get(1)
	require.False(t, ok)
	_, ok = c.Get(2)
	require.True(t, ok)

	require.Equal(t, 1, c.Len())
	c.PurgeExpired()
	require.Equal(t, 1, c.Len())
}

func TestTTLCache_Delete(t *testing.T) {
	c := New[int, string]()
	c.Set(1, "x", 0)
	c.Delete(1)
	_, ok := c.Get(1)
	require.False(t, ok)
}
