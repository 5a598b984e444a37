package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shitianyaa/stock-analysis/internal/model"
	"github.com/shitianyaa/stock-analysis/internal/provider"
)

// turnoverStrategy 按市场分路的换手率解析策略。
// 返回 nil 表示该字段不可得，错误由上层统一降级，不会中断请求。
type turnoverStrategy interface {
	resolve(ctx context.Context, id model.InstrumentID, latest model.Bar) (*float64, error)
}

// mainlandTurnover A股策略：换手率随日线一起返回，
// 最新一根上没有就算没有，不再回查（保证延迟有界）。
type mainlandTurnover struct{}

func (mainlandTurnover) resolve(_ context.Context, _ model.InstrumentID, latest model.Bar) (*float64, error) {
	return latest.TurnoverRate, nil
}

// hkTurnover 港股策略：日线不含换手率，回溯 hk_indicator
// 最近 windowDays 个自然日，从新到旧取第一条非空记录。
type hkTurnover struct {
	indicators provider.IndicatorSource
	windowDays int
	now        func() time.Time
}

func (s hkTurnover) resolve(ctx context.Context, id model.InstrumentID, _ model.Bar) (*float64, error) {
	start := s.now().AddDate(0, 0, -s.windowDays).Format("20060102")
	rows, err := s.indicators.HKIndicators(ctx, id, start, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrFieldUnavailable, err)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TradeDate > rows[j].TradeDate
	})
	for _, row := range rows {
		if row.TurnoverRate != nil {
			return row.TurnoverRate, nil
		}
	}
	return nil, nil
}
