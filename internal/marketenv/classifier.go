// Package marketenv 抓取基准指数最新涨跌幅并给出三档市场情绪。
package marketenv

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
	// 默认基准：沪深300，对所有股票先兜底
	csi300Code = "399300.SZ"
	csi300Name = "沪深300"
	// 港股基准：恒生指数，拿得到时整体替换沪深300
	hsiCode = "HSI"
	hsiName = "恒生指数"

	indexWindowDays  = 10
	unknownIndexName = "未知"

	SentimentOptimistic  = "乐观"
	SentimentNeutral     = "中性"
	SentimentPessimistic = "悲观"
)

// Classifier 市场环境分类器
type Classifier struct {
	index provider.IndexSource
	log   zerolog.Logger
	now   func() time.Time
}

// NewClassifier 构造分类器
func NewClassifier(index provider.IndexSource, log zerolog.Logger) *Classifier {
	return &Classifier{index: index, log: log, now: time.Now}
}

// Classify 返回基准指数最新涨跌幅与情绪标签。完全拿不到数据时
// 按 0.00%/中性 兜底，绝不让整个请求失败。
func (c *Classifier) Classify(ctx context.Context, id model.InstrumentID) model.MarketContext {
	result := model.MarketContext{
		IndexName: unknownIndexName,
		Change:    "0.00%",
		Sentiment: SentimentNeutral,
	}

	change, ok := c.latestChange(ctx, csi300Code)
	if ok {
		result.IndexName = csi300Name
		result.Change = fmt.Sprintf("%.2f%%", change)
	}

	if id.Market == model.MarketHK {
		if hkChange, hkOK := c.latestChange(ctx, hsiCode); hkOK {
			change, ok = hkChange, true
			result.IndexName = hsiName
			result.Change = fmt.Sprintf("%.2f%%", hkChange)
		}
	}

	if ok {
		result.Sentiment = Classify(change)
	}
	return result
}

// Classify 涨跌幅到情绪标签。[-1%, +1%] 闭区间为中性。
func Classify(changePct float64) string {
	switch {
	case changePct > 1:
		return SentimentOptimistic
	case changePct < -1:
		return SentimentPessimistic
	default:
		return SentimentNeutral
	}
}

func (c *Classifier) latestChange(ctx context.Context, indexCode string) (float64, bool) {
	end := c.now().Format("20060102")
	start := c.now().AddDate(0, 0, -indexWindowDays).Format("20060102")

	bars, err := c.index.IndexDaily(ctx, indexCode, start, end)
	if err != nil {
		c.log.Warn().Err(err).Str("index", indexCode).Msg("指数行情查询失败")
		return 0, false
	}
	if len(bars) == 0 {
		return 0, false
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].TradeDate > bars[j].TradeDate
	})
	return bars[0].PctChg, true
}
