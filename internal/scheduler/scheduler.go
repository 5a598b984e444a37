// Package scheduler 定时任务：交易日收盘后刷新股票列表缓存。
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/shitianyaa/stock-analysis/internal/holiday"
	"github.com/shitianyaa/stock-analysis/internal/service"
)

// refreshTimeout 单次刷新的超时上限
const refreshTimeout = 5 * time.Minute

// Scheduler 定时任务调度器
type Scheduler struct {
	cron     *cron.Cron
	searcher *service.Searcher
	calendar *holiday.Calendar
	log      zerolog.Logger
}

// New 构造调度器
func New(searcher *service.Searcher, calendar *holiday.Calendar, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		searcher: searcher,
		calendar: calendar,
		log:      log,
	}
}

// Start 注册刷新任务并启动。schedule 为5段cron表达式。
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.refreshStockList)
	if err != nil {
		return fmt.Errorf("注册股票列表刷新任务失败: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("schedule", schedule).Msg("定时任务已启动")
	return nil
}

// Stop 停止调度，等待进行中的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshStockList() {
	if !s.calendar.IsTradingDay(time.Now()) {
		s.log.Info().Msg("非交易日，跳过股票列表刷新")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	count := s.searcher.Refresh(ctx)
	if count == 0 {
		s.log.Warn().Msg("股票列表刷新未取到数据")
		return
	}
	s.log.Info().Int("count", count).Msg("股票列表刷新完成")
}
