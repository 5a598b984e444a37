// Package service 编排一次完整的个股分析请求。
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shitianyaa/stock-analysis/internal/fundamental"
	"github.com/shitianyaa/stock-analysis/internal/indicator"
	"github.com/shitianyaa/stock-analysis/internal/langchain"
	"github.com/shitianyaa/stock-analysis/internal/market"
	"github.com/shitianyaa/stock-analysis/internal/marketenv"
	"github.com/shitianyaa/stock-analysis/internal/model"
	"github.com/shitianyaa/stock-analysis/internal/provider"
	"github.com/shitianyaa/stock-analysis/internal/series"
	"github.com/shitianyaa/stock-analysis/internal/snapshot"
	"github.com/shitianyaa/stock-analysis/internal/store"
)

// historyDays 行情回看天数，足够算满20日窗口并留出节假日余量
const historyDays = 90

// defaultCycle 未指定预测周期时的默认值
const defaultCycle = "短线"

// Analyzer 分析服务。所有外部依赖显式注入，history 可为 nil（不持久化）。
type Analyzer struct {
	data         provider.DataSource
	assembler    *snapshot.Assembler
	fundamentals *fundamental.Resolver
	marketEnv    *marketenv.Classifier
	llm          *langchain.Client
	history      *store.History
	log          zerolog.Logger
	now          func() time.Time
}

// NewAnalyzer 构造分析服务
func NewAnalyzer(
	data provider.DataSource,
	assembler *snapshot.Assembler,
	fundamentals *fundamental.Resolver,
	marketEnv *marketenv.Classifier,
	llm *langchain.Client,
	history *store.History,
	log zerolog.Logger,
) *Analyzer {
	return &Analyzer{
		data:         data,
		assembler:    assembler,
		fundamentals: fundamentals,
		marketEnv:    marketEnv,
		llm:          llm,
		history:      history,
		log:          log,
		now:          time.Now,
	}
}

// Snapshot 只做数据快照，不调用大模型。
// 行情序列是唯一的硬依赖：拿不到就整体失败；换手率、基本面、
// 市场环境三路互相独立，并发解析，各自失败只降级各自的字段。
func (a *Analyzer) Snapshot(ctx context.Context, id model.InstrumentID) (*model.Snapshot, error) {
	end := a.now().Format("20060102")
	start := a.now().AddDate(0, 0, -historyDays).Format("20060102")

	bars, err := a.data.DailyBars(ctx, id, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrNoData, err)
	}

	normalized, err := series.Normalize(bars)
	if err != nil {
		return nil, provider.ErrNoData
	}
	vectors := indicator.Compute(normalized)

	var snap model.Snapshot
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		snap.Daily = a.assembler.Build(ctx, id, normalized, vectors)
	}()
	go func() {
		defer wg.Done()
		snap.Fundamental = a.fundamentals.Resolve(ctx, id)
	}()
	go func() {
		defer wg.Done()
		snap.Market = a.marketEnv.Classify(ctx, id)
	}()
	wg.Wait()

	return &snap, nil
}

// Analyze 完整分析：快照 + 大模型报告 + 历史落库
func (a *Analyzer) Analyze(ctx context.Context, rawCode, cycle string) (*model.AnalyzeResult, error) {
	id, err := market.Parse(rawCode)
	if err != nil {
		return nil, err
	}
	if cycle == "" {
		cycle = defaultCycle
	}

	name := a.stockName(ctx, id)

	snap, err := a.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis := a.llm.Analyze(ctx, id.TSCode(), name, cycle, *snap)

	result := &model.AnalyzeResult{
		Code:      id.TSCode(),
		Name:      name,
		Cycle:     cycle,
		Snapshot:  *snap,
		Analysis:  analysis,
		CreatedAt: a.now(),
	}
	a.saveHistory(ctx, result)
	return result, nil
}

// stockName 查名称失败时退回代码本身，不影响主流程
func (a *Analyzer) stockName(ctx context.Context, id model.InstrumentID) string {
	info, err := a.data.BasicInfo(ctx, id)
	if err != nil || info == nil || info.Name == "" {
		if err != nil {
			a.log.Warn().Err(err).Str("ts_code", id.TSCode()).Msg("名称查询失败")
		}
		return id.TSCode()
	}
	return info.Name
}

// saveHistory 落库尽力而为，失败只记日志
func (a *Analyzer) saveHistory(ctx context.Context, result *model.AnalyzeResult) {
	if a.history == nil {
		return
	}
	snapJSON, err := json.Marshal(result.Snapshot)
	if err != nil {
		return
	}
	rec := model.AnalysisRecord{
		Code:      result.Code,
		Name:      result.Name,
		Cycle:     result.Cycle,
		Snapshot:  string(snapJSON),
		Analysis:  result.Analysis,
		CreatedAt: result.CreatedAt,
	}
	if err := a.history.Save(ctx, rec); err != nil {
		a.log.Warn().Err(err).Str("code", result.Code).Msg("写入分析历史失败")
	}
}
