package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProviderRoundtrip(t *testing.T) {
	p := NewMemoryProvider()

	type item struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	require.NoError(t, p.Set("k", item{Code: "600519", Name: "贵州茅台"}, time.Minute))

	var got item
	require.NoError(t, p.Get("k", &got))
	assert.Equal(t, "600519", got.Code)
	assert.Equal(t, "贵州茅台", got.Name)
}

func TestMemoryProviderMiss(t *testing.T) {
	p := NewMemoryProvider()

	var got string
	assert.Error(t, p.Get("missing", &got))
}

func TestMemoryProviderExpiration(t *testing.T) {
	p := NewMemoryProvider()

	require.NoError(t, p.Set("k", "v", time.Nanosecond))
	time.Sleep(time.Millisecond)

	var got string
	assert.Error(t, p.Get("k", &got))
}

func TestMemoryProviderNoExpiration(t *testing.T) {
	p := NewMemoryProvider()

	require.NoError(t, p.Set("k", "v", 0))

	var got string
	require.NoError(t, p.Get("k", &got))
	assert.Equal(t, "v", got)
}
