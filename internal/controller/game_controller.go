package controller

import (
	"errors"
	"net/http"

	"manor_backend/internal/game"
	"manor_backend/internal/service"
	"manor_backend/internal/util"
	"manor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the active game session token. The client receives it
// from /game/start (or a restore) and sends it on every game request.
const SessionHeader = "X-Game-Session"

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

func gameSessionID(ctx *gin.Context) string {
	return ctx.GetHeader(SessionHeader)
}

func gameError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrUnknownStage):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrGameNotCompleted):
		util.Error(ctx, http.StatusConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// swagger:model StartGameRequest
type StartGameRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
}

// StartGame godoc
// @Summary Start a new play-through
// @Description Creates a fresh game session for the authenticated player
// @Tags game
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartGameRequest true "Player name"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/game/start [post]
func (c *GameController) StartGame(ctx *gin.Context) {
	var req StartGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.GameService.StartGame(req.PlayerName, &claims.UserID)
	if err != nil {
		gameError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"sessionId": session.SessionID,
		"stage":     game.StageRoom1,
	})
}

// GetState godoc
// @Summary Current progress of the active session
// @Tags game
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.GameState}
// @Failure 404 {object} util.Response
// @Router /api/game/state [get]
func (c *GameController) GetState(ctx *gin.Context) {
	sessionID := gameSessionID(ctx)
	if sessionID == "" {
		util.BadRequest(ctx, "missing "+SessionHeader+" header")
		return
	}

	state, err := c.GameService.State(sessionID)
	if err != nil {
		gameError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// GetRoom godoc
// @Summary Room payload, gated on progress
// @Description Returns the puzzle payload for the stage, or a redirect to the
// @Description stage the session is actually at when prerequisites are unmet
// @Tags game
// @Produce json
// @Security ApiKeyAuth
// @Param stage path string true "room1|room2|room3|final"
// @Success 200 {object} util.Response{data=service.RoomView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/game/rooms/{stage} [get]
func (c *GameController) GetRoom(ctx *gin.Context) {
	sessionID := gameSessionID(ctx)
	if sessionID == "" {
		util.BadRequest(ctx, "missing "+SessionHeader+" header")
		return
	}

	stage, err := game.ParseStage(ctx.Param("stage"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.GameService.RoomView(ctx.Request.Context(), sessionID, stage)
	if err != nil {
		gameError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SubmitRoom godoc
// @Summary Submit an answer for a stage
// @Description Logs the attempt and, when correct, advances the session; the
// @Description final room additionally stamps the escape time
// @Tags game
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param stage path string true "room1|room2|room3|final"
// @Param body body service.Submission true "Answer payload"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/game/rooms/{stage}/submit [post]
func (c *GameController) SubmitRoom(ctx *gin.Context) {
	sessionID := gameSessionID(ctx)
	if sessionID == "" {
		util.BadRequest(ctx, "missing "+SessionHeader+" header")
		return
	}

	stage, err := game.ParseStage(ctx.Param("stage"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var sub service.Submission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GameService.SubmitAnswer(ctx.Request.Context(), sessionID, stage, sub)
	if err != nil {
		gameError(ctx, err)
		return
	}
	if result.Redirect == "" {
		monitoring.RecordAttempt(string(stage), result.Correct)
	}
	util.Success(ctx, result)
}

// Success godoc
// @Summary Completion view for a finished run
// @Tags game
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.GameState}
// @Failure 409 {object} util.Response
// @Router /api/game/success [get]
func (c *GameController) Success(ctx *gin.Context) {
	sessionID := gameSessionID(ctx)
	if sessionID == "" {
		util.BadRequest(ctx, "missing "+SessionHeader+" header")
		return
	}

	state, err := c.GameService.Success(sessionID)
	if err != nil {
		gameError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// GetAttempts godoc
// @Summary Attempt audit trail for the active session
// @Tags game
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.PuzzleAttempt}
// @Router /api/game/attempts [get]
func (c *GameController) GetAttempts(ctx *gin.Context) {
	sessionID := gameSessionID(ctx)
	if sessionID == "" {
		util.BadRequest(ctx, "missing "+SessionHeader+" header")
		return
	}

	attempts, err := c.GameService.Attempts(sessionID)
	if err != nil {
		gameError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// Restart godoc
// @Summary Abandon the active session
// @Description The session row stays for the roster; the client simply drops
// @Description its token and starts a new game
// @Tags game
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/game/restart [post]
func (c *GameController) Restart(ctx *gin.Context) {
	util.Success(ctx, gin.H{"stage": game.StageRoom1})
}
