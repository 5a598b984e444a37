package langchain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

// BuildPrompt 把结构化快照拼装成分析提示词
func BuildPrompt(code, name, cycle string, snap model.Snapshot) string {
	daily := snap.Daily
	fund := snap.Fundamental
	mkt := snap.Market

	var b strings.Builder
	fmt.Fprintf(&b, `你是一名资深的量化分析师，请基于以下数据进行深度分析。

## 📊 基本信息
- **股票**：%s (%s)
- **预测周期**：%s
- **日期**：%s

## 📈 数据概览
### 1. 技术面
- 收盘价：%s (涨跌幅 %s)
- 成交量：%s，换手率：%s
- 均线系统：MA5 %s, MA10 %s, MA20 %s
- 指标状态：MACD %s, RSI %s
- 布林带位置：%s / %s / %s
- 波动率：%s

### 2. 基本面
- 估值：PE(TTM) %s, PB %s
- 行业：%s
- 市值：%s

### 3. 市场环境
- 市场表现：%s
- 情绪判定：%s

## 📋 分析指令
请输出一份结构清晰的预测报告：
1. **方向预测**：明确看多、看空还是震荡，并给出置信度（高/中/低）。
2. **技术解读**：结合 MACD、RSI 和均线形态分析当前趋势。
3. **基本面评估**：当前估值在行业中的水平（若数据可用）。
4. **操作建议**：针对%s周期的具体操作思路。
5. **风险提示**：至少 2 点风险。
`,
		name, code, cycle, time.Now().Format("2006-01-02"),
		daily["收盘价"], daily["涨跌幅"],
		daily["成交量"], daily["换手率"],
		daily["5日均线"], daily["10日均线"], daily["20日均线"],
		daily["MACD"], daily["RSI"],
		daily["布林上轨"], daily["布林中轨"], daily["布林下轨"],
		daily["波动率"],
		fund.PETTM, fund.PB, fund.Industry, fund.MarketCap,
		mkt.Display(), mkt.Sentiment,
		cycle,
	)

	if strings.HasSuffix(code, "."+string(model.MarketHK)) {
		b.WriteString("\n注意：这是港股数据，请考虑港股市场的特殊性（无涨跌停限制、T+0等）。\n")
	}
	return b.String()
}
