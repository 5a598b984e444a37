// Package store 用sqlite持久化分析历史。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

// History 分析历史库
type History struct {
	db *sql.DB
}

// Open 打开（必要时创建）历史库
func Open(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开历史库失败: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS analysis_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	cycle TEXT NOT NULL,
	snapshot TEXT NOT NULL,
	analysis TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_code ON analysis_history(code);
CREATE INDEX IF NOT EXISTS idx_history_created ON analysis_history(created_at);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化历史表失败: %w", err)
	}
	return &History{db: db}, nil
}

// Save 写入一条分析记录
func (h *History) Save(ctx context.Context, rec model.AnalysisRecord) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO analysis_history (code, name, cycle, snapshot, analysis, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Code, rec.Name, rec.Cycle, rec.Snapshot, rec.Analysis, rec.CreatedAt.UTC(),
	)
	return err
}

// Recent 按时间倒序取最近的记录，code非空时只查该股票
func (h *History) Recent(ctx context.Context, code string, limit int) ([]model.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, code, name, cycle, snapshot, analysis, created_at FROM analysis_history `
	args := []any{}
	if code != "" {
		query += `WHERE code = ? `
		args = append(args, code)
	}
	query += `ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AnalysisRecord
	for rows.Next() {
		var rec model.AnalysisRecord
		var created time.Time
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.Name, &rec.Cycle, &rec.Snapshot, &rec.Analysis, &created); err != nil {
			return nil, err
		}
		rec.CreatedAt = created
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close 关闭历史库
func (h *History) Close() error {
	return h.db.Close()
}
