package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shitianyaa/stock-analysis/internal/cache"
	"github.com/shitianyaa/stock-analysis/internal/model"
	"github.com/shitianyaa/stock-analysis/internal/provider"
)

const (
	stockListCacheKey = "stock_list:all"
	stockListCacheTTL = 24 * time.Hour

	maxHitsPerMarket = 5
	maxHits          = 10
)

// Searcher 股票搜索服务，列表走缓存，命中关键字后截断返回
type Searcher struct {
	lister provider.StockLister
	cache  cache.Provider
	log    zerolog.Logger
}

// NewSearcher 构造搜索服务
func NewSearcher(lister provider.StockLister, cacheProvider cache.Provider, log zerolog.Logger) *Searcher {
	return &Searcher{lister: lister, cache: cacheProvider, log: log}
}

// Search 按关键字匹配名称或代码，A股、港股各取前5条，合计不超过10条
func (s *Searcher) Search(ctx context.Context, keyword string) []model.Stock {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	all := s.listAll(ctx, false)

	var aHits, hkHits []model.Stock
	for _, stock := range all {
		if !strings.Contains(stock.Name, keyword) && !strings.Contains(stock.Code, keyword) {
			continue
		}
		if stock.Market == "港股" {
			if len(hkHits) < maxHitsPerMarket {
				hkHits = append(hkHits, stock)
			}
		} else if len(aHits) < maxHitsPerMarket {
			aHits = append(aHits, stock)
		}
	}

	hits := append(aHits, hkHits...)
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits
}

// Refresh 强制重新拉取股票列表并刷新缓存（定时任务用）
func (s *Searcher) Refresh(ctx context.Context) int {
	return len(s.listAll(ctx, true))
}

func (s *Searcher) listAll(ctx context.Context, force bool) []model.Stock {
	if !force {
		var cached []model.Stock
		if err := s.cache.Get(stockListCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached
		}
	}

	var all []model.Stock

	aStocks, err := s.lister.ListAStocks(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("A股列表获取失败")
	} else {
		all = append(all, aStocks...)
	}

	// 港股列表拿不到不影响A股搜索
	hkStocks, err := s.lister.ListHKStocks(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("港股列表获取失败")
	} else {
		all = append(all, hkStocks...)
	}

	if len(all) > 0 {
		if err := s.cache.Set(stockListCacheKey, all, stockListCacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("股票列表写缓存失败")
		}
	}
	return all
}
