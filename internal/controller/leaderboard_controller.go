package controller

import (
	"manor_backend/internal/service"
	"manor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary Fastest escapes and the full player roster
// @Tags leaderboard
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	top, err := c.LeaderboardService.Top(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	players, err := c.LeaderboardService.AllPlayers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"leaderboard": top,
		"allPlayers":  players,
	})
}
