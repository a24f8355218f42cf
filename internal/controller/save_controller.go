package controller

import (
	"errors"
	"strconv"

	"manor_backend/internal/service"
	"manor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SaveController struct {
	SaveService *service.SaveService
}

func NewSaveController(saveService *service.SaveService) *SaveController {
	return &SaveController{SaveService: saveService}
}

func saveError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSaveNotFound), errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// swagger:model SaveGameRequest
type SaveGameRequest struct {
	SaveName string `json:"saveName"`
}

// SaveGame godoc
// @Summary Snapshot the active session under a name
// @Description Saving twice under the same name overwrites the snapshot in place
// @Tags saves
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SaveGameRequest true "Save name (optional, defaults to a timestamp)"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/saves [post]
func (c *SaveController) SaveGame(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := gameSessionID(ctx)
	if sessionID == "" {
		util.BadRequest(ctx, "no active game session")
		return
	}

	var req SaveGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SaveService.SaveGame(claims.UserID, req.SaveName, sessionID); err != nil {
		saveError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Game saved successfully"})
}

// QuickSave godoc
// @Summary Snapshot the active session under a clock-stamped name
// @Tags saves
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/saves/quick [post]
func (c *SaveController) QuickSave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := gameSessionID(ctx)
	if sessionID == "" {
		util.BadRequest(ctx, "no active game session")
		return
	}

	saveName, err := c.SaveService.QuickSave(claims.UserID, sessionID)
	if err != nil {
		saveError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"saveName": saveName})
}

// ListSaves godoc
// @Summary Active saves for the account, newest-updated first
// @Tags saves
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.SaveSummary}
// @Router /api/saves [get]
func (c *SaveController) ListSaves(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	saves, err := c.SaveService.ListSaves(claims.UserID)
	if err != nil {
		saveError(ctx, err)
		return
	}
	util.Success(ctx, saves)
}

// LoadGame godoc
// @Summary Restore a snapshot and rebind its session as active
// @Description Returns the stored stage label so the client can route there;
// @Description a save owned by another account is reported as not found
// @Tags saves
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Save id"
// @Success 200 {object} util.Response{data=service.RestoredGame}
// @Failure 404 {object} util.Response
// @Router /api/saves/{id}/load [post]
func (c *SaveController) LoadGame(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	saveID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid save id")
		return
	}

	restored, err := c.SaveService.RestoreGame(claims.UserID, uint(saveID))
	if err != nil {
		saveError(ctx, err)
		return
	}

	ctx.Header(SessionHeader, restored.SessionID)
	util.Success(ctx, restored)
}

// DeleteSave godoc
// @Summary Soft-delete a save
// @Tags saves
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Save id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/saves/{id} [delete]
func (c *SaveController) DeleteSave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	saveID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid save id")
		return
	}

	deleted, err := c.SaveService.DeleteSave(claims.UserID, uint(saveID))
	if err != nil {
		saveError(ctx, err)
		return
	}
	if !deleted {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"message": "Save deleted successfully"})
}
