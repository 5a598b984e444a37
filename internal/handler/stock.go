package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shitianyaa/stock-analysis/internal/market"
	"github.com/shitianyaa/stock-analysis/internal/model"
	"github.com/shitianyaa/stock-analysis/internal/provider"
	"github.com/shitianyaa/stock-analysis/internal/service"
	"github.com/shitianyaa/stock-analysis/internal/store"
)

// Handler HTTP处理器，依赖由main显式注入
type Handler struct {
	analyzer *service.Analyzer
	searcher *service.Searcher
	history  *store.History
	log      zerolog.Logger
}

// New 构造处理器
func New(analyzer *service.Analyzer, searcher *service.Searcher, history *store.History, log zerolog.Logger) *Handler {
	return &Handler{analyzer: analyzer, searcher: searcher, history: history, log: log}
}

// Register 注册路由
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/stocks/search", h.Search)
		api.GET("/stocks/:code/snapshot", h.Snapshot)
		api.POST("/analyze", h.Analyze)
		api.GET("/history", h.History)
	}
}

// Search 按关键字搜索股票
func (h *Handler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	stocks := h.searcher.Search(c.Request.Context(), keyword)
	c.JSON(http.StatusOK, gin.H{"data": stocks})
}

// Snapshot 返回单只股票的结构化快照（不调用大模型）
func (h *Handler) Snapshot(c *gin.Context) {
	id, err := market.Parse(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.analyzer.Snapshot(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Analyze 完整分析：快照 + 大模型预测报告
func (h *Handler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Code, req.Cycle)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// History 查询分析历史
func (h *Handler) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"data": []model.AnalysisRecord{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.history.Recent(c.Request.Context(), c.Query("code"), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("查询分析历史失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询分析历史失败"})
		return
	}
	if records == nil {
		records = []model.AnalysisRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, provider.ErrNoData) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "暂无行情数据"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
