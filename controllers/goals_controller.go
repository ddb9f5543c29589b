package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/organizai/organizai/gamification"
	"github.com/organizai/organizai/utils"
)

// GoalsController exposes the goal tracker: creation, listing, the
// periodic/on-demand check against external totals, and explicit
// confirmation of custom goals.
type GoalsController struct {
	engine *gamification.Service
}

// NewGoalsController creates a new controller instance.
func NewGoalsController(engine *gamification.Service) *GoalsController {
	return &GoalsController{engine: engine}
}

// CreateGoal registers a user-defined goal with exactly one target.
func (g *GoalsController) CreateGoal(ctx *gin.Context) {
	var req struct {
		UserID uint                    `json:"user_id" binding:"required"`
		Title  string                  `json:"title" binding:"required,min=1"`
		Target gamification.GoalTarget `json:"target"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	goal, err := g.engine.CreateGoal(req.UserID, req.Title, req.Target)
	if err != nil {
		respondEngineError(ctx, err, "failed to create goal")
		return
	}
	utils.Success(ctx, gin.H{"goal": goal})
}

// ListGoals returns all goals of a user, newest first.
func (g *GoalsController) ListGoals(ctx *gin.Context) {
	userID, ok := parseUserID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid user id")
		return
	}

	goals, err := g.engine.ListGoals(userID)
	if err != nil {
		respondEngineError(ctx, err, "failed to list goals")
		return
	}
	utils.Success(ctx, gin.H{"goals": goals})
}

// CheckGoals evaluates numeric goals against the totals supplied by the
// finance/agenda modules and returns the goals newly marked achieved.
func (g *GoalsController) CheckGoals(ctx *gin.Context) {
	userID, ok := parseUserID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid user id")
		return
	}
	var totals gamification.ExternalTotals
	if err := ctx.ShouldBindJSON(&totals); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	flipped, err := g.engine.CheckGoals(userID, totals)
	if err != nil {
		respondEngineError(ctx, err, "failed to check goals")
		return
	}
	if len(flipped) > 0 {
		utils.CacheDel(summaryCacheKey(userID))
	}
	utils.Success(ctx, gin.H{"achieved": flipped})
}

// ConfirmGoal marks a custom goal achieved on explicit external
// confirmation; repeats are no-ops.
func (g *GoalsController) ConfirmGoal(ctx *gin.Context) {
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid goal id")
		return
	}
	var req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	goal, err := g.engine.ConfirmGoal(req.UserID, goalID)
	if err != nil {
		respondEngineError(ctx, err, "failed to confirm goal")
		return
	}
	utils.CacheDel(summaryCacheKey(req.UserID))
	utils.Success(ctx, gin.H{"goal": goal})
}
