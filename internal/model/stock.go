package model

// Market 交易市场
type Market string

const (
	MarketSH Market = "SH" // 上海
	MarketSZ Market = "SZ" // 深圳
	MarketBJ Market = "BJ" // 北京
	MarketHK Market = "HK" // 香港
)

// IsMainland A股市场（沪深京）
func (m Market) IsMainland() bool {
	return m == MarketSH || m == MarketSZ || m == MarketBJ
}

// InstrumentID 交易所限定的证券标识，构造后不可变
type InstrumentID struct {
	Code   string `json:"code"`
	Market Market `json:"market"`
}

// TSCode Tushare格式代码，如 600519.SH / 00700.HK
func (id InstrumentID) TSCode() string {
	return id.Code + "." + string(id.Market)
}

func (id InstrumentID) String() string {
	return id.TSCode()
}

// Bar 单只股票一个交易日的行情记录
type Bar struct {
	TradeDate    string   `json:"trade_date"` // YYYYMMDD
	Close        float64  `json:"close"`
	PctChg       float64  `json:"pct_chg"`
	Volume       float64  `json:"vol"` // 手
	TurnoverRate *float64 `json:"turnover_rate,omitempty"`
}

// Stock 股票基本信息（搜索结果用）
type Stock struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"` // A股 / 港股
}

// IndicatorRow 港股每日指标记录（hk_indicator），字段可能缺失
type IndicatorRow struct {
	TradeDate    string   `json:"trade_date"`
	TurnoverRate *float64 `json:"turnover_rate,omitempty"`
	PETTM        *float64 `json:"pe_ttm,omitempty"`
	PB           *float64 `json:"pb,omitempty"`
	MktCap       *float64 `json:"mkt_cap,omitempty"` // 原始单位：港币元
}

// FundamentalRow A股每日基本面记录（daily_basic）
type FundamentalRow struct {
	TradeDate string   `json:"trade_date"`
	PETTM     *float64 `json:"pe_ttm,omitempty"`
	PB        *float64 `json:"pb,omitempty"`
	TotalMV   *float64 `json:"total_mv,omitempty"` // 原始单位：万元
}

// BasicInfo 股票基础资料
type BasicInfo struct {
	TSCode   string `json:"ts_code"`
	Name     string `json:"name"`
	Industry string `json:"industry"` // 可能为空
}

// IndexBar 指数日线记录
type IndexBar struct {
	TradeDate string  `json:"trade_date"`
	PctChg    float64 `json:"pct_chg"`
}
