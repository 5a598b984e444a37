// Package series 把数据源原始顺序的日线整理成可做滚动窗口计算的升序序列。
package series

import (
	"errors"
	"sort"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

// ErrEmptySeries 空序列，调用方应将其视为"暂无行情数据"
var ErrEmptySeries = errors.New("行情序列为空")

// Normalize 按交易日升序排序并去重。
// 同一交易日出现多条时保留输入中最后一条（正常的数据源不会出现重复，
// 但重复不能让流水线崩溃）。不修改输入切片。
func Normalize(bars []model.Bar) ([]model.Bar, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}

	byDate := make(map[string]model.Bar, len(bars))
	for _, b := range bars {
		byDate[b.TradeDate] = b
	}

	out := make([]model.Bar, 0, len(byDate))
	for _, b := range byDate {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TradeDate < out[j].TradeDate
	})
	return out, nil
}
