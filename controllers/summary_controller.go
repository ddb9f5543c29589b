package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/gamification"
	"github.com/organizai/organizai/utils"
)

// SummaryController serves the dashboard's gamification snapshot.
type SummaryController struct {
	engine *gamification.Service
}

// NewSummaryController creates a new controller instance.
func NewSummaryController(engine *gamification.Service) *SummaryController {
	return &SummaryController{engine: engine}
}

// GetSummary returns the aggregated read model for a user. The projection
// is cheap but read often, so it is cached in Redis for a short TTL;
// every point-affecting write invalidates the key.
func (s *SummaryController) GetSummary(ctx *gin.Context) {
	userID, ok := parseUserID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid user id")
		return
	}

	cacheKey := summaryCacheKey(userID)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	summary, err := s.engine.Summarize(userID)
	if err != nil {
		respondEngineError(ctx, err, "failed to build summary")
		return
	}

	ttl := time.Duration(config.Get().SummaryCacheTTLSec) * time.Second
	resp := utils.JSONResponse{Code: 0, Message: "success", Data: summary}
	utils.CacheSetJSON(cacheKey, resp, ttl)

	utils.Success(ctx, summary)
}
