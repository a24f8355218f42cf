package controller

import (
	"fmt"
	"path/filepath"

	"manor_backend/internal/service"
	"manor_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

// UpdateProfile godoc
// @Summary Update display name, bio and preferences
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfileUpdate true "Profile fields"
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.UpdateProfile(claims.UserID, req); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Profile updated"})
}

// UploadAvatar godoc
// @Summary Upload a profile avatar
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Avatar image"
// @Success 200 {object} util.Response{data=object}
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing avatar file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("avatars/%d_%s%s", claims.UserID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.SetAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatarUrl": url})
}
