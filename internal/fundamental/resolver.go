// Package fundamental 解析行业与估值（PE、PB、市值）。
//
// 市值统一换算为"亿"展示。原始单位按市场固定：
// A股 daily_basic 的 total_mv 单位是万元（除以1e4），
// 港股 hk_indicator 的 mkt_cap 单位是港币元（除以1e8）。
package fundamental

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/shitianyaa/stock-analysis/internal/model"
	"github.com/shitianyaa/stock-analysis/internal/provider"
)

const (
	// A股每日基本面发布有延迟，当日没有就回看前几日
	mainlandValuationWindowDays = 5
	// 港股估值记录稀疏，回溯窗口放宽
	hkValuationWindowDays = 60

	hkIndustryFallback = "港股"
)

// Resolver 基本面解析器
type Resolver struct {
	basics       provider.BasicInfoSource
	fundamentals provider.FundamentalSource
	indicators   provider.IndicatorSource
	log          zerolog.Logger
	now          func() time.Time
}

// NewResolver 构造解析器
func NewResolver(basics provider.BasicInfoSource, fundamentals provider.FundamentalSource, indicators provider.IndicatorSource, log zerolog.Logger) *Resolver {
	return &Resolver{
		basics:       basics,
		fundamentals: fundamentals,
		indicators:   indicators,
		log:          log,
		now:          time.Now,
	}
}

// Resolve 解析行业与估值。行业与估值互相独立：
// 一边失败只降级该边的字段，另一边已解析出的结果照常返回。
func (r *Resolver) Resolve(ctx context.Context, id model.InstrumentID) model.FundamentalSnapshot {
	snap := model.FundamentalSnapshot{
		PETTM:     model.Unavailable,
		PB:        model.Unavailable,
		MarketCap: model.Unavailable,
		Industry:  model.UnknownIndustry,
	}

	snap.Industry = r.resolveIndustry(ctx, id)

	if id.Market == model.MarketHK {
		r.resolveHKValuation(ctx, id, &snap)
	} else {
		r.resolveMainlandValuation(ctx, id, &snap)
	}
	return snap
}

func (r *Resolver) resolveIndustry(ctx context.Context, id model.InstrumentID) string {
	info, err := r.basics.BasicInfo(ctx, id)
	if err != nil {
		r.log.Warn().Err(err).Str("ts_code", id.TSCode()).Msg("行业查询失败")
	} else if info != nil && info.Industry != "" {
		return info.Industry
	}

	// 港股基础资料经常没有行业字段，用固定兜底而不是留空
	if id.Market == model.MarketHK {
		return hkIndustryFallback
	}
	return model.UnknownIndustry
}

// resolveMainlandValuation A股估值：回看近几日的 daily_basic，取最新一条
func (r *Resolver) resolveMainlandValuation(ctx context.Context, id model.InstrumentID, snap *model.FundamentalSnapshot) {
	start := r.now().AddDate(0, 0, -mainlandValuationWindowDays).Format("20060102")
	rows, err := r.fundamentals.DailyBasics(ctx, id, start, "")
	if err != nil {
		r.log.Warn().Err(err).Str("ts_code", id.TSCode()).Msg("A股估值查询失败")
		return
	}
	if len(rows) == 0 {
		return
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TradeDate > rows[j].TradeDate
	})
	row := rows[0]
	if row.PETTM != nil {
		snap.PETTM = fmt.Sprintf("%.2f", *row.PETTM)
	}
	if row.PB != nil {
		snap.PB = fmt.Sprintf("%.2f", *row.PB)
	}
	if row.TotalMV != nil {
		snap.MarketCap = fmt.Sprintf("%.2f亿", *row.TotalMV/1e4)
	}
}

// resolveHKValuation 港股估值：回溯 hk_indicator，从新到旧找第一条
// 带 pe_ttm 或 mkt_cap 的记录；两者都没有的记录跳过，不算命中。
func (r *Resolver) resolveHKValuation(ctx context.Context, id model.InstrumentID, snap *model.FundamentalSnapshot) {
	start := r.now().AddDate(0, 0, -hkValuationWindowDays).Format("20060102")
	rows, err := r.indicators.HKIndicators(ctx, id, start, "")
	if err != nil {
		r.log.Warn().Err(err).Str("ts_code", id.TSCode()).Msg("港股估值查询失败")
		return
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TradeDate > rows[j].TradeDate
	})
	for _, row := range rows {
		if row.PETTM == nil && row.MktCap == nil {
			continue
		}
		if row.PETTM != nil {
			snap.PETTM = fmt.Sprintf("%.2f", *row.PETTM)
		}
		if row.PB != nil {
			snap.PB = fmt.Sprintf("%.2f", *row.PB)
		}
		if row.MktCap != nil {
			snap.MarketCap = fmt.Sprintf("%.2f亿", *row.MktCap/1e8)
		}
		return
	}
}
