package market

import (
	"fmt"
	"regexp"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// Parse 校验用户输入的证券代码并推导市场后缀。
// 5位数字为港股；6位数字按首位路由：6→SH，0/3→SZ，8/4→BJ。
func Parse(raw string) (model.InstrumentID, error) {
	clean := nonDigitRe.ReplaceAllString(raw, "")

	switch len(clean) {
	case 5:
		return model.InstrumentID{Code: clean, Market: model.MarketHK}, nil
	case 6:
		switch clean[0] {
		case '6':
			return model.InstrumentID{Code: clean, Market: model.MarketSH}, nil
		case '0', '3':
			return model.InstrumentID{Code: clean, Market: model.MarketSZ}, nil
		case '8', '4':
			return model.InstrumentID{Code: clean, Market: model.MarketBJ}, nil
		default:
			return model.InstrumentID{}, fmt.Errorf("未知前缀: %s", clean)
		}
	default:
		return model.InstrumentID{}, fmt.Errorf("代码格式错误: %q", raw)
	}
}
