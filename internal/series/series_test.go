package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

func TestNormalizeSortsAscending(t *testing.T) {
	bars := []model.Bar{
		{TradeDate: "20260110", Close: 3},
		{TradeDate: "20260108", Close: 1},
		{TradeDate: "20260109", Close: 2},
	}

	out, err := Normalize(bars)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "20260108", out[0].TradeDate)
	assert.Equal(t, "20260109", out[1].TradeDate)
	assert.Equal(t, "20260110", out[2].TradeDate)
}

func TestNormalizeDedupesKeepLast(t *testing.T) {
	bars := []model.Bar{
		{TradeDate: "20260108", Close: 1},
		{TradeDate: "20260108", Close: 9},
	}

	out, err := Normalize(bars)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 9.0, out[0].Close)
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = Normalize([]model.Bar{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	bars := []model.Bar{
		{TradeDate: "20260110", Close: 3},
		{TradeDate: "20260108", Close: 1},
	}

	_, err := Normalize(bars)
	require.NoError(t, err)
	assert.Equal(t, "20260110", bars[0].TradeDate)
	assert.Equal(t, "20260108", bars[1].TradeDate)
}
