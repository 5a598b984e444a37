// Package snapshot 把最新一根K线的指标与换手率组装成展示用快照。
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shitianyaa/stock-analysis/internal/indicator"
	"github.com/shitianyaa/stock-analysis/internal/model"
	"github.com/shitianyaa/stock-analysis/internal/provider"
)

// hkTurnoverWindowDays 港股换手率回溯窗口（自然日）
const hkTurnoverWindowDays = 30

// Assembler 快照组装器
type Assembler struct {
	mainland turnoverStrategy
	hk       turnoverStrategy
	log      zerolog.Logger
}

// NewAssembler 构造组装器。indicators 用于港股换手率回溯。
func NewAssembler(indicators provider.IndicatorSource, log zerolog.Logger) *Assembler {
	return &Assembler{
		mainland: mainlandTurnover{},
		hk: hkTurnover{
			indicators: indicators,
			windowDays: hkTurnoverWindowDays,
			now:        time.Now,
		},
		log: log,
	}
}

// Build 取序列最后一根K线的指标向量，合并换手率后输出展示映射。
// bars 必须已升序且非空，vectors 与 bars 等长。映射的键集合固定，
// 缺数据的字段用占位符填充，消费方（提示词模板）永远拿到完整映射。
func (a *Assembler) Build(ctx context.Context, id model.InstrumentID, bars []model.Bar, vectors []indicator.Vector) map[string]string {
	latest := bars[len(bars)-1]
	v := vectors[len(vectors)-1]

	return map[string]string{
		"收盘价":   fmt.Sprintf("%.2f", latest.Close),
		"涨跌幅":   fmt.Sprintf("%.2f%%", latest.PctChg),
		"成交量":   fmt.Sprintf("%.2f万手", latest.Volume/10000),
		"换手率":   a.resolveTurnover(ctx, id, latest),
		"5日均线":  formatIndicator(v.MA5, 2),
		"10日均线": formatIndicator(v.MA10, 2),
		"20日均线": formatIndicator(v.MA20, 2),
		"MACD":  formatIndicator(v.MACD, 4),
		"RSI":   formatIndicator(v.RSI, 2),
		"布林上轨":  formatIndicator(v.BollUp, 2),
		"布林中轨":  formatIndicator(v.BollMid, 2),
		"布林下轨":  formatIndicator(v.BollLow, 2),
		"波动率":   formatIndicator(v.Volatility, 4),
	}
}

// resolveTurnover 按市场选择策略，任何失败只降级为 N/A，绝不让请求失败
func (a *Assembler) resolveTurnover(ctx context.Context, id model.InstrumentID, latest model.Bar) string {
	strategy := a.mainland
	if id.Market == model.MarketHK {
		strategy = a.hk
	}

	rate, err := strategy.resolve(ctx, id, latest)
	if err != nil {
		a.log.Warn().Err(err).Str("ts_code", id.TSCode()).Msg("换手率查询失败")
		return model.TurnoverMissing
	}
	if rate == nil {
		return model.TurnoverMissing
	}
	return fmt.Sprintf("%.2f%%", *rate)
}

// formatIndicator 有定义按给定精度格式化，否则用占位符
func formatIndicator(v float64, precision int) string {
	if !indicator.Defined(v) {
		return model.Unavailable
	}
	return fmt.Sprintf("%.*f", precision, v)
}
