// Package indicator 在升序日线序列上计算逐日技术指标。
//
// 口径约定（与数据源侧滚动窗口一致）：
//   - EMA 递归式 e[i] = α·x[i] + (1-α)·e[i-1]，α = 2/(N+1)，以首个观测值为种子，
//     因此从第一根K线起就有定义；
//   - 标准差统一取样本标准差（除以 N-1），布林带与波动率共用该口径；
//   - 窗口不足时该指标为 NaN，展示层负责替换为占位符。
//
// 每根K线的指标只依赖它及其之前的K线，不存在未来数据。
package indicator

import (
	"math"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

// Vector 一根K线对应的全部指标。NaN 表示窗口不足、无定义。
type Vector struct {
	MA5        float64 `json:"ma5"`
	MA10       float64 `json:"ma10"`
	MA20       float64 `json:"ma20"`
	DIF        float64 `json:"dif"`
	DEA        float64 `json:"dea"`
	MACD       float64 `json:"macd"`
	RSI        float64 `json:"rsi"`
	BollUp     float64 `json:"boll_upper"`
	BollMid    float64 `json:"boll_middle"`
	BollLow    float64 `json:"boll_lower"`
	Volatility float64 `json:"volatility"`
}

// Defined 指标值是否有定义
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// Compute 对升序序列逐根计算指标，结果与输入等长、一一对应。
func Compute(bars []model.Bar) []Vector {
	n := len(bars)
	if n == 0 {
		return nil
	}

	closes := make([]float64, n)
	pcts := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		pcts[i] = b.PctChg
	}

	ema12 := ema(closes, 12)
	ema26 := ema(closes, 26)
	dif := make([]float64, n)
	for i := range dif {
		dif[i] = ema12[i] - ema26[i]
	}
	dea := ema(dif, 9)

	vectors := make([]Vector, n)
	for i := range vectors {
		v := &vectors[i]
		v.MA5 = sma(closes, 5, i)
		v.MA10 = sma(closes, 10, i)
		v.MA20 = sma(closes, 20, i)

		v.DIF = dif[i]
		v.DEA = dea[i]
		v.MACD = 2 * (dif[i] - dea[i])

		v.RSI = rsi(closes, 14, i)

		v.BollMid = v.MA20
		sd := stddev(closes, 20, i)
		if Defined(sd) {
			v.BollUp = v.BollMid + 2*sd
			v.BollLow = v.BollMid - 2*sd
		} else {
			v.BollUp = math.NaN()
			v.BollLow = math.NaN()
		}

		v.Volatility = stddev(pcts, 20, i)
	}
	return vectors
}

// sma 截止 i（含）的 N 日简单均值，窗口不足返回 NaN
func sma(values []float64, window, i int) float64 {
	if i+1 < window {
		return math.NaN()
	}
	sum := 0.0
	for j := i - window + 1; j <= i; j++ {
		sum += values[j]
	}
	return sum / float64(window)
}

// ema 整条序列的指数均线，首值为种子
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// rsi 截止 i（含）的14日RSI。跌幅均值为零且涨幅均值为正时按满强度100处理，
// 完全无波动时无定义。
func rsi(closes []float64, window, i int) float64 {
	if i < window {
		return math.NaN()
	}
	var gainSum, lossSum float64
	for j := i - window + 1; j <= i; j++ {
		delta := closes[j] - closes[j-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(window)
	avgLoss := lossSum / float64(window)
	if avgLoss == 0 {
		if avgGain > 0 {
			return 100
		}
		return math.NaN()
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// stddev 截止 i（含）的 N 日样本标准差（除以 N-1），窗口不足返回 NaN
func stddev(values []float64, window, i int) float64 {
	if i+1 < window {
		return math.NaN()
	}
	mean := 0.0
	for j := i - window + 1; j <= i; j++ {
		mean += values[j]
	}
	mean /= float64(window)

	ss := 0.0
	for j := i - window + 1; j <= i; j++ {
		d := values[j] - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(window-1))
}
