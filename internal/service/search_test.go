package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shitianyaa/stock-analysis/internal/cache"
	"github.com/shitianyaa/stock-analysis/internal/model"
)

type fakeLister struct {
	aStocks  []model.Stock
	hkStocks []model.Stock
	aErr     error
	hkErr    error
	calls    int
}

func (f *fakeLister) ListAStocks(_ context.Context) ([]model.Stock, error) {
	f.calls++
	return f.aStocks, f.aErr
}

func (f *fakeLister) ListHKStocks(_ context.Context) ([]model.Stock, error) {
	return f.hkStocks, f.hkErr
}

func TestSearchByNameAndCode(t *testing.T) {
	lister := &fakeLister{
		aStocks: []model.Stock{
			{Code: "600519", Name: "贵州茅台", Market: "A股"},
			{Code: "000858", Name: "五粮液", Market: "A股"},
		},
		hkStocks: []model.Stock{
			{Code: "00700", Name: "腾讯控股", Market: "港股"},
		},
	}
	s := NewSearcher(lister, cache.NewMemoryProvider(), zerolog.Nop())

	hits := s.Search(context.Background(), "茅台")
	require.Len(t, hits, 1)
	assert.Equal(t, "600519", hits[0].Code)

	hits = s.Search(context.Background(), "00700")
	require.Len(t, hits, 1)
	assert.Equal(t, "腾讯控股", hits[0].Name)
}

func TestSearchEmptyKeyword(t *testing.T) {
	s := NewSearcher(&fakeLister{}, cache.NewMemoryProvider(), zerolog.Nop())

	assert.Nil(t, s.Search(context.Background(), ""))
	assert.Nil(t, s.Search(context.Background(), "   "))
}

func TestSearchCapsPerMarket(t *testing.T) {
	var aStocks, hkStocks []model.Stock
	for i := 0; i < 8; i++ {
		aStocks = append(aStocks, model.Stock{Code: fmt.Sprintf("60051%d", i), Name: fmt.Sprintf("测试A%d", i), Market: "A股"})
		hkStocks = append(hkStocks, model.Stock{Code: fmt.Sprintf("0070%d", i), Name: fmt.Sprintf("测试H%d", i), Market: "港股"})
	}
	s := NewSearcher(&fakeLister{aStocks: aStocks, hkStocks: hkStocks}, cache.NewMemoryProvider(), zerolog.Nop())

	hits := s.Search(context.Background(), "测试")
	require.Len(t, hits, 10)

	var aCount, hkCount int
	for _, h := range hits {
		if h.Market == "港股" {
			hkCount++
		} else {
			aCount++
		}
	}
	assert.Equal(t, 5, aCount)
	assert.Equal(t, 5, hkCount)
}

func TestSearchUsesCache(t *testing.T) {
	lister := &fakeLister{aStocks: []model.Stock{{Code: "600519", Name: "贵州茅台", Market: "A股"}}}
	s := NewSearcher(lister, cache.NewMemoryProvider(), zerolog.Nop())

	s.Search(context.Background(), "茅台")
	s.Search(context.Background(), "茅台")
	s.Search(context.Background(), "600519")

	assert.Equal(t, 1, lister.calls)
}

func TestSearchHKFailureDoesNotBlockA(t *testing.T) {
	lister := &fakeLister{
		aStocks: []model.Stock{{Code: "600519", Name: "贵州茅台", Market: "A股"}},
		hkErr:   errors.New("接口超时"),
	}
	s := NewSearcher(lister, cache.NewMemoryProvider(), zerolog.Nop())

	hits := s.Search(context.Background(), "茅台")
	require.Len(t, hits, 1)
}

func TestRefreshForcesRefetch(t *testing.T) {
	lister := &fakeLister{aStocks: []model.Stock{{Code: "600519", Name: "贵州茅台", Market: "A股"}}}
	s := NewSearcher(lister, cache.NewMemoryProvider(), zerolog.Nop())

	s.Search(context.Background(), "茅台")
	count := s.Refresh(context.Background())

	assert.Equal(t, 1, count)
	assert.Equal(t, 2, lister.calls)
}
