package langchain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		Daily: map[string]string{
			"收盘价": "1500.46", "涨跌幅": "1.23%", "成交量": "12.35万手", "换手率": "0.35%",
			"5日均线": "1480.12", "10日均线": "1475.00", "20日均线": "1460.55",
			"MACD": "0.1234", "RSI": "61.50",
			"布林上轨": "1520.00", "布林中轨": "1460.55", "布林下轨": "1400.00",
			"波动率": "1.2345",
		},
		Fundamental: model.FundamentalSnapshot{
			PETTM: "25.50", PB: "8.30", MarketCap: "19000.00亿", Industry: "白酒",
		},
		Market: model.MarketContext{
			IndexName: "沪深300", Change: "0.35%", Sentiment: "中性",
		},
	}
}

func TestBuildPromptIncludesSnapshotFields(t *testing.T) {
	prompt := BuildPrompt("600519.SH", "贵州茅台", "短线", sampleSnapshot())

	for _, want := range []string{
		"贵州茅台", "600519.SH", "短线",
		"1500.46", "0.35%", "61.50", "0.1234",
		"白酒", "19000.00亿",
		"0.35% (沪深300)", "中性",
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestBuildPromptHKCaveat(t *testing.T) {
	hk := BuildPrompt("00700.HK", "腾讯控股", "短线", sampleSnapshot())
	assert.Contains(t, hk, "港股市场的特殊性")

	mainland := BuildPrompt("600519.SH", "贵州茅台", "短线", sampleSnapshot())
	assert.NotContains(t, mainland, "港股市场的特殊性")
}

func TestBuildPromptPlaceholders(t *testing.T) {
	snap := sampleSnapshot()
	snap.Daily["换手率"] = model.TurnoverMissing
	snap.Fundamental.PETTM = model.Unavailable

	prompt := BuildPrompt("600519.SH", "贵州茅台", "短线", snap)

	// 缺数据的字段以占位符出现，模板不缺行
	assert.Contains(t, prompt, "换手率：N/A")
	assert.Contains(t, prompt, "PE(TTM) -")
}

func TestFallbackAnalysis(t *testing.T) {
	out := fallbackAnalysis("贵州茅台", "600519.SH", sampleSnapshot())

	assert.Contains(t, out, "贵州茅台")
	assert.Contains(t, out, "AI分析暂不可用")
	assert.Contains(t, out, "1500.46")
	assert.True(t, strings.HasPrefix(out, "## "))
}
