// Package holiday A股交易日历。周末永不交易，法定节假日通过免费API判定，
// API不可用时按周一到周五交易兜底。
package holiday

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	apiTimeout = 3 * time.Second
	cacheTTL   = 24 * time.Hour
)

// Calendar 交易日历，结果按日期缓存
type Calendar struct {
	mu        sync.RWMutex
	cache     map[string]bool
	cacheTime map[string]time.Time
	custom    map[string]bool // 自定义节假日，日期格式 2006-01-02

	httpc *http.Client
	log   zerolog.Logger
}

// NewCalendar 构造交易日历
func NewCalendar(log zerolog.Logger) *Calendar {
	return &Calendar{
		cache:     make(map[string]bool),
		cacheTime: make(map[string]time.Time),
		custom:    make(map[string]bool),
		httpc:     &http.Client{Timeout: apiTimeout},
		log:       log,
	}
}

// LoadCustomHolidays 从JSON文件加载自定义节假日。
// 文件格式：{"holidays": ["2026-01-01", "2026-02-17", ...]}，文件不存在不算错误。
func (c *Calendar) LoadCustomHolidays(filePath string) error {
	if filePath == "" {
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取节假日配置文件失败: %w", err)
	}

	var config struct {
		Holidays []string `json:"holidays"`
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("解析节假日配置文件失败: %w", err)
	}

	c.mu.Lock()
	for _, date := range config.Holidays {
		c.custom[date] = true
	}
	c.mu.Unlock()

	c.log.Info().Int("count", len(config.Holidays)).Msg("加载自定义节假日配置")
	return nil
}

// IsTradingDay 判断是否为A股交易日。
// 优先级：周末 > 自定义配置 > API > 工作日兜底。
func (c *Calendar) IsTradingDay(date time.Time) bool {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}

	dateStr := date.Format("2006-01-02")

	c.mu.RLock()
	if result, ok := c.cache[dateStr]; ok {
		if t, tok := c.cacheTime[dateStr]; tok && time.Since(t) < cacheTTL {
			c.mu.RUnlock()
			return result
		}
	}
	isCustom := c.custom[dateStr]
	c.mu.RUnlock()

	if isCustom {
		c.updateCache(dateStr, false)
		return false
	}

	if result, ok := c.checkFromAPI(dateStr); ok {
		c.updateCache(dateStr, result)
		return result
	}

	// API失败时周一到周五视为交易日
	c.updateCache(dateStr, true)
	return true
}

func (c *Calendar) updateCache(dateStr string, result bool) {
	c.mu.Lock()
	c.cache[dateStr] = result
	c.cacheTime[dateStr] = time.Now()
	c.mu.Unlock()
}

// checkFromAPI 使用免费节假日API http://timor.tech/api/holiday/info/{date}
func (c *Calendar) checkFromAPI(dateStr string) (bool, bool) {
	url := fmt.Sprintf("http://timor.tech/api/holiday/info/%s", dateStr)

	resp, err := c.httpc.Get(url)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, false
	}

	var result struct {
		Code int `json:"code"`
		Type struct {
			Type int    `json:"type"` // 0工作日 1周末 2节假日 3调休
			Name string `json:"name"`
		} `json:"type"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, false
	}
	if result.Code != 0 {
		return false, false
	}

	isTrading := result.Type.Type == 0 || result.Type.Type == 3
	return isTrading, true
}
