package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/organizai/organizai/gamification"
	"github.com/organizai/organizai/utils"
)

// ActionsController is the endpoint through which the finance, agenda and
// content modules report scorable user actions.
type ActionsController struct {
	engine *gamification.Service
}

// NewActionsController creates a new controller instance.
func NewActionsController(engine *gamification.Service) *ActionsController {
	return &ActionsController{engine: engine}
}

// RecordAction appends one scored action and returns the entry, the streak
// state after the update and any newly unlocked achievements. Idempotent
// repeats of DAILY_FIRST_ACCESS come back flagged as duplicate.
func (a *ActionsController) RecordAction(ctx *gin.Context) {
	var req struct {
		UserID     uint   `json:"user_id" binding:"required"`
		ActionType string `json:"action_type" binding:"required"`
		Meta       string `json:"meta"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	result, err := a.engine.Record(req.UserID, req.ActionType, req.Meta)
	if err != nil {
		respondEngineError(ctx, err, "failed to record action")
		return
	}

	// The summary read model changed; drop the cached copy.
	if !result.Duplicate {
		utils.CacheDel(summaryCacheKey(req.UserID))
	}

	utils.Success(ctx, result)
}

// Evaluate re-checks the achievement catalogue for a user. A call with no
// new points is a no-op and returns an empty set.
func (a *ActionsController) Evaluate(ctx *gin.Context) {
	userID, ok := parseUserID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid user id")
		return
	}

	unlocked, err := a.engine.Evaluate(userID)
	if err != nil {
		respondEngineError(ctx, err, "failed to evaluate achievements")
		return
	}
	if len(unlocked) > 0 {
		utils.CacheDel(summaryCacheKey(userID))
	}
	utils.Success(ctx, gin.H{"unlocked": unlocked})
}

func parseUserID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func summaryCacheKey(userID uint) string {
	return "cache:summary:" + strconv.FormatUint(uint64(userID), 10)
}

// respondEngineError maps the engine error taxonomy onto envelope responses.
// Any failure means the triggering user action must be reported as failed;
// the dashboard never shows inconsistent point/streak state.
func respondEngineError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gamification.ErrInvalidAction):
		utils.Error(ctx, http.StatusBadRequest, 40030, "unknown action type")
	case errors.Is(err, gamification.ErrInvalidGoal):
		utils.Error(ctx, http.StatusBadRequest, 40031, "goal must set exactly one target")
	case errors.Is(err, gamification.ErrInvalidTimezone):
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid timezone")
	case errors.Is(err, gamification.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40410, "not found")
	case errors.Is(err, gamification.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40910, "concurrent update, retry the operation")
	default:
		utils.Sugar.Errorf("%s: %v", fallback, err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, fallback)
	}
}
