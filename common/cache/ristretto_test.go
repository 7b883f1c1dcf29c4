package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralCacheSetGet(t *testing.T) {
	c, err := NewGeneralCache(1024, 0)
	require.NoError(t, err)
	defer c.Close()

	c.Set("k", 7)
	c.Wait()

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestGeneralCacheRejectsZeroCapacity(t *testing.T) {
	_, err := NewGeneralCache(0, 0)
	assert.Error(t, err)
}
