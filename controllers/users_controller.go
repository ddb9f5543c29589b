package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/organizai/organizai/gamification"
	"github.com/organizai/organizai/utils"
)

// UsersController maintains the engine-side user profiles. Identity and
// credentials are owned by the surrounding product; the engine only keeps
// the reference timezone used for day boundaries.
type UsersController struct {
	engine *gamification.Service
}

// NewUsersController creates a new controller instance.
func NewUsersController(engine *gamification.Service) *UsersController {
	return &UsersController{engine: engine}
}

// UpsertProfile creates or updates a profile row.
func (u *UsersController) UpsertProfile(ctx *gin.Context) {
	var req struct {
		UserID   uint   `json:"user_id" binding:"required"`
		Username string `json:"username"`
		Timezone string `json:"timezone"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	user, err := u.engine.UpsertProfile(req.UserID, req.Username, req.Timezone)
	if err != nil {
		respondEngineError(ctx, err, "failed to upsert profile")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// GetProfile returns a profile row.
func (u *UsersController) GetProfile(ctx *gin.Context) {
	userID, ok := parseUserID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid user id")
		return
	}

	user, err := u.engine.GetProfile(userID)
	if err != nil {
		respondEngineError(ctx, err, "failed to load profile")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}
