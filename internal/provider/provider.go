// Package provider 定义行情数据源的接口与错误分级。
// 所有实现必须显式构造后传入各组件，组件内部不做任何惰性重连。
package provider

import (
	"context"
	"errors"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

// 错误分级：
//   - ErrNoData 必需的行情序列缺失，整个快照请求终止；
//   - ErrFieldUnavailable 可选字段（换手率、估值等）解析失败，仅该字段降级为占位符。
//
// 传输层错误由调用方按字段属性映射到以上两类。
var (
	ErrNoData           = errors.New("暂无行情数据")
	ErrFieldUnavailable = errors.New("字段数据不可用")
)

// BarSource 日线行情
type BarSource interface {
	// DailyBars 拉取 [start, end] 区间的日线，不保证顺序
	DailyBars(ctx context.Context, id model.InstrumentID, start, end string) ([]model.Bar, error)
}

// IndicatorSource 港股每日指标（换手率、估值）
type IndicatorSource interface {
	HKIndicators(ctx context.Context, id model.InstrumentID, start, end string) ([]model.IndicatorRow, error)
}

// FundamentalSource A股每日基本面
type FundamentalSource interface {
	DailyBasics(ctx context.Context, id model.InstrumentID, start, end string) ([]model.FundamentalRow, error)
}

// BasicInfoSource 股票基础资料（名称、行业）
type BasicInfoSource interface {
	BasicInfo(ctx context.Context, id model.InstrumentID) (*model.BasicInfo, error)
}

// IndexSource 指数日线
type IndexSource interface {
	IndexDaily(ctx context.Context, indexCode, start, end string) ([]model.IndexBar, error)
}

// StockLister 上市股票列表（搜索用）
type StockLister interface {
	ListAStocks(ctx context.Context) ([]model.Stock, error)
	ListHKStocks(ctx context.Context) ([]model.Stock, error)
}

// DataSource 完整数据源
type DataSource interface {
	BarSource
	IndicatorSource
	FundamentalSource
	BasicInfoSource
	IndexSource
	StockLister
}
