package indicator

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

func makeBars(closes []float64, pcts []float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	for i := range closes {
		bars[i].TradeDate = fmt.Sprintf("%d", 20260101+i)
		bars[i].Close = closes[i]
		if pcts != nil {
			bars[i].PctChg = pcts[i]
		}
	}
	return bars
}

func ascending(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestComputeEmpty(t *testing.T) {
	assert.Nil(t, Compute(nil))
	assert.Nil(t, Compute([]model.Bar{}))
}

func TestComputeLengthMatchesInput(t *testing.T) {
	bars := makeBars(ascending(30), nil)
	vectors := Compute(bars)
	assert.Len(t, vectors, 30)
}

func TestWindowBoundaries(t *testing.T) {
	vectors := Compute(makeBars(ascending(25), nil))

	// 窗口差一根时无定义，刚好够时有定义
	assert.False(t, Defined(vectors[3].MA5))
	assert.True(t, Defined(vectors[4].MA5))

	assert.False(t, Defined(vectors[8].MA10))
	assert.True(t, Defined(vectors[9].MA10))

	assert.False(t, Defined(vectors[18].MA20))
	assert.True(t, Defined(vectors[19].MA20))
	assert.False(t, Defined(vectors[18].BollUp))
	assert.True(t, Defined(vectors[19].BollUp))
	assert.False(t, Defined(vectors[18].Volatility))

	// RSI需要回看14个差值，即至少15根K线
	assert.False(t, Defined(vectors[13].RSI))
	assert.True(t, Defined(vectors[14].RSI))
}

func TestMovingAverages(t *testing.T) {
	vectors := Compute(makeBars(ascending(20), nil))

	last := vectors[19]
	assert.InDelta(t, 18.0, last.MA5, 1e-9)   // (16+...+20)/5
	assert.InDelta(t, 15.5, last.MA10, 1e-9)  // (11+...+20)/10
	assert.InDelta(t, 10.5, last.MA20, 1e-9)  // (1+...+20)/20
	assert.InDelta(t, 3.0, vectors[4].MA5, 1e-9)
}

func TestBollingerBands(t *testing.T) {
	vectors := Compute(makeBars(ascending(20), nil))
	last := vectors[19]

	// 中轨就是MA20，带宽为2倍样本标准差。1..20的样本方差为35。
	sd := math.Sqrt(35)
	assert.Equal(t, last.MA20, last.BollMid)
	assert.InDelta(t, 10.5+2*sd, last.BollUp, 1e-9)
	assert.InDelta(t, 10.5-2*sd, last.BollLow, 1e-9)
}

func TestMACDSeed(t *testing.T) {
	vectors := Compute(makeBars(ascending(5), nil))

	// EMA以首值为种子，首根K线上快慢线重合
	assert.InDelta(t, 0.0, vectors[0].DIF, 1e-12)
	assert.InDelta(t, 0.0, vectors[0].DEA, 1e-12)
	assert.InDelta(t, 0.0, vectors[0].MACD, 1e-12)

	// 持续上涨时快线在慢线上方
	assert.Greater(t, vectors[4].DIF, 0.0)
}

func TestMACDRelation(t *testing.T) {
	vectors := Compute(makeBars(ascending(30), nil))
	for _, v := range vectors {
		assert.InDelta(t, 2*(v.DIF-v.DEA), v.MACD, 1e-9)
	}
}

func TestRSIAllGains(t *testing.T) {
	vectors := Compute(makeBars(ascending(20), nil))
	assert.InDelta(t, 100.0, vectors[19].RSI, 1e-9)
}

func TestRSIFlatSeries(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 10
	}
	vectors := Compute(makeBars(closes, nil))

	// 完全无波动时RSI无定义
	assert.False(t, Defined(vectors[19].RSI))
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{10, 11, 10.5, 12, 11.8, 12.3, 13, 12.1, 12.8, 13.5,
		13.2, 14, 13.7, 14.5, 14.2, 15, 14.8, 15.5, 15.1, 16}
	vectors := Compute(makeBars(closes, nil))

	last := vectors[19].RSI
	require.True(t, Defined(last))
	assert.Greater(t, last, 0.0)
	assert.Less(t, last, 100.0)
	// 涨多跌少，强度应在50之上
	assert.Greater(t, last, 50.0)
}

func TestRSIHandComputed(t *testing.T) {
	// 每日交替 +2 / -1，14个差值中7次涨7次跌
	closes := make([]float64, 20)
	closes[0] = 100
	for i := 1; i < 20; i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 2
		} else {
			closes[i] = closes[i-1] - 1
		}
	}
	vectors := Compute(makeBars(closes, nil))

	// avgGain = 14/14, avgLoss = 7/14, RS = 2, RSI = 100 - 100/3
	assert.InDelta(t, 100.0-100.0/3.0, vectors[19].RSI, 1e-9)
}

func TestVolatilityConstantPct(t *testing.T) {
	closes := ascending(25)
	pcts := make([]float64, 25)
	for i := range pcts {
		pcts[i] = 1.5
	}
	vectors := Compute(makeBars(closes, pcts))

	// 涨跌幅恒定时波动率为0
	assert.InDelta(t, 0.0, vectors[24].Volatility, 1e-12)
}

func TestVolatilityHandComputed(t *testing.T) {
	closes := ascending(20)
	pcts := make([]float64, 20)
	for i := range pcts {
		pcts[i] = float64(i + 1)
	}
	vectors := Compute(makeBars(closes, pcts))

	assert.InDelta(t, math.Sqrt(35), vectors[19].Volatility, 1e-9)
}
