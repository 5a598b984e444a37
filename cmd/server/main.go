package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/shitianyaa/stock-analysis/internal/cache"
	"github.com/shitianyaa/stock-analysis/internal/config"
	"github.com/shitianyaa/stock-analysis/internal/fundamental"
	"github.com/shitianyaa/stock-analysis/internal/handler"
	"github.com/shitianyaa/stock-analysis/internal/holiday"
	"github.com/shitianyaa/stock-analysis/internal/langchain"
	"github.com/shitianyaa/stock-analysis/internal/marketenv"
	"github.com/shitianyaa/stock-analysis/internal/provider/tushare"
	"github.com/shitianyaa/stock-analysis/internal/scheduler"
	"github.com/shitianyaa/stock-analysis/internal/service"
	"github.com/shitianyaa/stock-analysis/internal/snapshot"
	"github.com/shitianyaa/stock-analysis/internal/store"
	"github.com/shitianyaa/stock-analysis/pkg/logger"
)

func main() {
	// .env 不存在时直接用系统环境变量
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.TushareToken == "" {
		log.Warn().Msg("未配置 TUSHARE_TOKEN，行情接口将无法使用")
	}

	// 所有依赖在这里构造一次，显式传入各组件
	data := tushare.NewClient(cfg.TushareToken)

	var cacheProvider cache.Provider
	if cfg.RedisAddr != "" {
		redisProvider, err := cache.NewRedisProvider(cfg.RedisAddr)
		if err != nil {
			log.Warn().Err(err).Msg("Redis不可用，退化为内存缓存")
			cacheProvider = cache.NewMemoryProvider()
		} else {
			defer redisProvider.Close()
			cacheProvider = redisProvider
		}
	} else {
		cacheProvider = cache.NewMemoryProvider()
	}

	history, err := store.Open(cfg.HistoryPath)
	if err != nil {
		log.Warn().Err(err).Msg("历史库不可用，分析结果将不做持久化")
		history = nil
	} else {
		defer history.Close()
	}

	assembler := snapshot.NewAssembler(data, log)
	fundamentals := fundamental.NewResolver(data, data, data, log)
	marketEnv := marketenv.NewClassifier(data, log)
	llm := langchain.NewClient(cfg.ArkAPIKey, cfg.ArkModelEndpoint, cfg.ArkBaseURL, log)

	analyzer := service.NewAnalyzer(data, assembler, fundamentals, marketEnv, llm, history, log)
	searcher := service.NewSearcher(data, cacheProvider, log)

	if cfg.RefreshEnabled {
		calendar := holiday.NewCalendar(log)
		if err := calendar.LoadCustomHolidays(cfg.HolidayConfigPath); err != nil {
			log.Warn().Err(err).Msg("加载自定义节假日失败")
		}
		sched := scheduler.New(searcher, calendar, log)
		if err := sched.Start(cfg.RefreshSchedule); err != nil {
			log.Warn().Err(err).Msg("定时任务启动失败")
		} else {
			defer sched.Stop()
		}
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	handler.New(analyzer, searcher, history, log).Register(r)

	log.Info().Str("port", cfg.Port).Msg("服务启动")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("启动服务失败")
	}
}
