package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shitianyaa/stock-analysis/internal/model"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func record(code string, createdAt time.Time) model.AnalysisRecord {
	return model.AnalysisRecord{
		Code:      code,
		Name:      "测试股票",
		Cycle:     "短线",
		Snapshot:  `{"daily":{}}`,
		Analysis:  "测试分析内容",
		CreatedAt: createdAt,
	}
}

func TestSaveAndRecent(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, h.Save(ctx, record("600519.SH", base)))
	require.NoError(t, h.Save(ctx, record("00700.HK", base.Add(time.Minute))))

	records, err := h.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// 时间倒序
	assert.Equal(t, "00700.HK", records[0].Code)
	assert.Equal(t, "600519.SH", records[1].Code)
	assert.Equal(t, "测试分析内容", records[0].Analysis)
	assert.NotZero(t, records[0].ID)
}

func TestRecentFilterByCode(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, h.Save(ctx, record("600519.SH", base)))
	require.NoError(t, h.Save(ctx, record("00700.HK", base.Add(time.Minute))))

	records, err := h.Recent(ctx, "600519.SH", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "600519.SH", records[0].Code)
}

func TestRecentLimit(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, h.Save(ctx, record("600519.SH", base.Add(time.Duration(i)*time.Minute))))
	}

	records, err := h.Recent(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	// limit非法时退回默认20
	records, err = h.Recent(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestRecentEmpty(t *testing.T) {
	h := openTestHistory(t)

	records, err := h.Recent(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
