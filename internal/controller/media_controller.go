package controller

import (
	"errors"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// Upload accepts a multipart file, stores it and returns the asset record.
// Videos additionally carry probed duration, dimensions and a thumbnail URL.
func (c *MediaController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	asset, err := c.MediaService.Upload(ctx.Request.Context(), claims.UserID, header)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedMedia) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, asset)
}

func (c *MediaController) Get(ctx *gin.Context) {
	asset, err := c.MediaService.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, asset)
}

func (c *MediaController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assets, err := c.MediaService.ListByUploader(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assets)
}
