// Package tushare 实现基于 Tushare Pro HTTP 接口的数据源。
package tushare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const defaultBaseURL = "http://api.tushare.pro"

// Client Tushare Pro 客户端。进程启动时构造一次，显式传入需要它的组件。
type Client struct {
	token   string
	baseURL string
	httpc   *http.Client
}

// Option 客户端可选配置
type Option func(*Client)

// WithBaseURL 覆盖接口地址（测试用）
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient 覆盖HTTP客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// NewClient 构造客户端
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Fields []string `json:"fields"`
		Items  [][]any  `json:"items"`
	} `json:"data"`
}

// record 一行结果，按字段名索引
type record map[string]any

// str 取字符串字段，缺失返回空串
func (r record) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// float 取数值字段，nil 表示该字段缺失
func (r record) float(key string) *float64 {
	switch v := r[key].(type) {
	case float64:
		return &v
	case string:
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// floatOr 取数值字段，缺失时返回默认值
func (r record) floatOr(key string, def float64) float64 {
	if f := r.float(key); f != nil {
		return *f
	}
	return def
}

// query 调用一个Tushare接口并把 fields/items 组装为按字段名索引的行
func (c *Client) query(ctx context.Context, apiName string, params map[string]any, fields string) ([]record, error) {
	payload, err := json.Marshal(map[string]any{
		"api_name": apiName,
		"token":    c.token,
		"params":   params,
		"fields":   fields,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求tushare失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tushare状态码异常: %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	if out.Code != 0 {
		return nil, fmt.Errorf("tushare接口错误: code=%d msg=%s", out.Code, out.Msg)
	}

	rows := make([]record, 0, len(out.Data.Items))
	for _, item := range out.Data.Items {
		row := record{}
		for i, field := range out.Data.Fields {
			if i < len(item) {
				row[field] = item[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
