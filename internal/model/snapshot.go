package model

// 展示用占位符
const (
	Unavailable     = "-"   // 指标/估值缺数据
	TurnoverMissing = "N/A" // 换手率无法解析
	UnknownIndustry = "未知"  // 行业未解析
)

// FundamentalSnapshot 基本面快照，字段独立降级，互不影响
type FundamentalSnapshot struct {
	PETTM     string `json:"pe_ttm"`
	PB        string `json:"pb"`
	MarketCap string `json:"market_cap"` // 亿
	Industry  string `json:"industry"`
}

// MarketContext 市场环境
type MarketContext struct {
	IndexName string `json:"index_name"`
	Change    string `json:"change"`    // 如 "0.35%"
	Sentiment string `json:"sentiment"` // 乐观 / 中性 / 悲观
}

// Display 模板用展示串，如 "0.35% (沪深300)"
func (m MarketContext) Display() string {
	return m.Change + " (" + m.IndexName + ")"
}

// Snapshot 单只股票的结构化快照，所有数值均已格式化为展示字符串
type Snapshot struct {
	Daily       map[string]string   `json:"daily"`
	Fundamental FundamentalSnapshot `json:"fundamental"`
	Market      MarketContext       `json:"market"`
}
