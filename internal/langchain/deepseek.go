// Package langchain 封装大模型调用与提示词构建。
// 走火山方舟的 OpenAI 兼容接口调用 DeepSeek。
package langchain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

const defaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

// Client 大模型客户端。apiKey 或 endpoint 为空时自动退化为本地模板分析。
type Client struct {
	apiKey   string
	endpoint string // 方舟推理接入点ID，作为model字段传入
	baseURL  string
	httpc    *http.Client
	log      zerolog.Logger
}

// NewClient 构造客户端
func NewClient(apiKey, endpoint, baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		baseURL:  baseURL,
		httpc:    &http.Client{Timeout: 60 * time.Second},
		log:      log,
	}
}

// Message 对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest OpenAI兼容的请求体
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// chatResponse OpenAI兼容的响应体
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Analyze 基于快照生成预测报告。调用失败时返回本地模板分析，不向上抛错。
func (c *Client) Analyze(ctx context.Context, code, name, cycle string, snap model.Snapshot) string {
	prompt := BuildPrompt(code, name, cycle, snap)

	if c.apiKey == "" || c.endpoint == "" {
		c.log.Warn().Msg("未配置 ARK_API_KEY 或 ARK_MODEL_ENDPOINT，使用备用分析")
		return fallbackAnalysis(name, code, snap)
	}

	req := chatRequest{
		Model:       c.endpoint,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   4000,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fallbackAnalysis(name, code, snap)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return fallbackAnalysis(name, code, snap)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Msg("大模型调用失败，使用备用分析")
		return fallbackAnalysis(name, code, snap)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fallbackAnalysis(name, code, snap)
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Warn().Err(err).Int("status", resp.StatusCode).Msg("解析大模型响应失败")
		return fallbackAnalysis(name, code, snap)
	}
	if out.Error != nil {
		c.log.Warn().Str("api_error", out.Error.Message).Msg("大模型接口返回错误")
		return fallbackAnalysis(name, code, snap)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		c.log.Warn().Msg("大模型返回空结果，使用备用分析")
		return fallbackAnalysis(name, code, snap)
	}
	return out.Choices[0].Message.Content
}

// fallbackAnalysis 接口不可用时的本地模板分析
func fallbackAnalysis(name, code string, snap model.Snapshot) string {
	daily := snap.Daily
	return fmt.Sprintf(`## %s (%s) 数据摘要（AI分析暂不可用）

- 收盘价：%s（涨跌幅 %s）
- 均线：MA5 %s / MA10 %s / MA20 %s
- MACD %s，RSI %s，波动率 %s
- 估值：PE(TTM) %s，PB %s，市值 %s
- 市场环境：%s，情绪 %s

以上为原始数据快照，请自行结合市场情况判断。`,
		name, code,
		daily["收盘价"], daily["涨跌幅"],
		daily["5日均线"], daily["10日均线"], daily["20日均线"],
		daily["MACD"], daily["RSI"], daily["波动率"],
		snap.Fundamental.PETTM, snap.Fundamental.PB, snap.Fundamental.MarketCap,
		snap.Market.Display(), snap.Market.Sentiment,
	)
}
