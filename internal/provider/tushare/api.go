package tushare

import (
	"context"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

// DailyBars 拉取日线。A股走 daily（自带换手率字段），港股走 hk_daily。
// 返回顺序为接口原始顺序（Tushare默认最新在前），由 series 包负责排序。
func (c *Client) DailyBars(ctx context.Context, id model.InstrumentID, start, end string) ([]model.Bar, error) {
	apiName := "daily"
	fields := "trade_date,close,pct_chg,vol,turnover_rate"
	if id.Market == model.MarketHK {
		apiName = "hk_daily"
		fields = "trade_date,close,pct_chg,vol"
	}

	rows, err := c.query(ctx, apiName, map[string]any{
		"ts_code":    id.TSCode(),
		"start_date": start,
		"end_date":   end,
	}, fields)
	if err != nil {
		return nil, err
	}

	bars := make([]model.Bar, 0, len(rows))
	for _, row := range rows {
		date := row.str("trade_date")
		if date == "" {
			continue
		}
		bars = append(bars, model.Bar{
			TradeDate:    date,
			Close:        row.floatOr("close", 0),
			PctChg:       row.floatOr("pct_chg", 0),
			Volume:       row.floatOr("vol", 0),
			TurnoverRate: row.float("turnover_rate"),
		})
	}
	return bars, nil
}

// HKIndicators 港股每日指标，换手率与估值都只能从这里拿
func (c *Client) HKIndicators(ctx context.Context, id model.InstrumentID, start, end string) ([]model.IndicatorRow, error) {
	params := map[string]any{
		"ts_code":    id.TSCode(),
		"start_date": start,
	}
	if end != "" {
		params["end_date"] = end
	}

	rows, err := c.query(ctx, "hk_indicator", params, "trade_date,turnover_rate,pe_ttm,pb,mkt_cap")
	if err != nil {
		return nil, err
	}

	out := make([]model.IndicatorRow, 0, len(rows))
	for _, row := range rows {
		date := row.str("trade_date")
		if date == "" {
			continue
		}
		out = append(out, model.IndicatorRow{
			TradeDate:    date,
			TurnoverRate: row.float("turnover_rate"),
			PETTM:        row.float("pe_ttm"),
			PB:           row.float("pb"),
			MktCap:       row.float("mkt_cap"),
		})
	}
	return out, nil
}

// DailyBasics A股每日基本面指标
func (c *Client) DailyBasics(ctx context.Context, id model.InstrumentID, start, end string) ([]model.FundamentalRow, error) {
	params := map[string]any{
		"ts_code":    id.TSCode(),
		"start_date": start,
	}
	if end != "" {
		params["end_date"] = end
	}

	rows, err := c.query(ctx, "daily_basic", params, "trade_date,pe_ttm,pb,total_mv")
	if err != nil {
		return nil, err
	}

	out := make([]model.FundamentalRow, 0, len(rows))
	for _, row := range rows {
		date := row.str("trade_date")
		if date == "" {
			continue
		}
		out = append(out, model.FundamentalRow{
			TradeDate: date,
			PETTM:     row.float("pe_ttm"),
			PB:        row.float("pb"),
			TotalMV:   row.float("total_mv"),
		})
	}
	return out, nil
}

// BasicInfo 股票基础资料。港股资料里 industry 经常缺失，调用方需兜底。
func (c *Client) BasicInfo(ctx context.Context, id model.InstrumentID) (*model.BasicInfo, error) {
	apiName := "stock_basic"
	if id.Market == model.MarketHK {
		apiName = "hk_basic"
	}

	// 不指定fields，行业字段在部分接口上并不保证存在
	rows, err := c.query(ctx, apiName, map[string]any{"ts_code": id.TSCode()}, "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &model.BasicInfo{
		TSCode:   row.str("ts_code"),
		Name:     row.str("name"),
		Industry: row.str("industry"),
	}, nil
}

// IndexDaily 指数日线
func (c *Client) IndexDaily(ctx context.Context, indexCode, start, end string) ([]model.IndexBar, error) {
	rows, err := c.query(ctx, "index_daily", map[string]any{
		"ts_code":    indexCode,
		"start_date": start,
		"end_date":   end,
	}, "trade_date,pct_chg")
	if err != nil {
		return nil, err
	}

	out := make([]model.IndexBar, 0, len(rows))
	for _, row := range rows {
		date := row.str("trade_date")
		if date == "" {
			continue
		}
		out = append(out, model.IndexBar{TradeDate: date, PctChg: row.floatOr("pct_chg", 0)})
	}
	return out, nil
}

// ListAStocks 上市A股列表
func (c *Client) ListAStocks(ctx context.Context) ([]model.Stock, error) {
	rows, err := c.query(ctx, "stock_basic", map[string]any{
		"exchange":    "",
		"list_status": "L",
	}, "ts_code,name")
	if err != nil {
		return nil, err
	}
	return rowsToStocks(rows, "A股"), nil
}

// ListHKStocks 上市港股列表
func (c *Client) ListHKStocks(ctx context.Context) ([]model.Stock, error) {
	rows, err := c.query(ctx, "hk_basic", map[string]any{"list_status": "L"}, "ts_code,name")
	if err != nil {
		return nil, err
	}
	return rowsToStocks(rows, "港股"), nil
}

func rowsToStocks(rows []record, market string) []model.Stock {
	stocks := make([]model.Stock, 0, len(rows))
	for _, row := range rows {
		code := row.str("ts_code")
		if code == "" {
			continue
		}
		stocks = append(stocks, model.Stock{
			Code:   code,
			Name:   row.str("name"),
			Market: market,
		})
	}
	return stocks
}
