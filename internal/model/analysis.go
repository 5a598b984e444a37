package model

import "time"

// AnalyzeRequest 分析请求
type AnalyzeRequest struct {
	Code  string `json:"code" binding:"required"`
	Cycle string `json:"cycle"` // 短线 / 中线 / 长线
}

// AnalyzeResult 分析结果
type AnalyzeResult struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Cycle     string    `json:"cycle"`
	Snapshot  Snapshot  `json:"snapshot"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisRecord 历史记录（sqlite持久化）
type AnalysisRecord struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Cycle     string    `json:"cycle"`
	Snapshot  string    `json:"snapshot"` // JSON串
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}
