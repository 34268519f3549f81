package controller

import (
	"errors"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	CourseService   *service.CourseService
}

func NewProgressController(progressService *service.ProgressService, courseService *service.CourseService) *ProgressController {
	return &ProgressController{ProgressService: progressService, CourseService: courseService}
}

// Get returns the learner's normalized progress state for one course plus the
// aggregate completion stats.
func (c *ProgressController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID := ctx.Param("id")

	outline, err := c.CourseService.Outline(ctx.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	state, err := c.ProgressService.Load(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"byLesson": state,
		"stats":    c.ProgressService.Stats(state, outline.TotalLessons),
	})
}

type VideoEndedRequest struct {
	LessonKey string `json:"lessonKey" binding:"required"`
}

// MarkVideoEnded records that the learner watched a lesson's video to the end.
func (c *ProgressController) MarkVideoEnded(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID := ctx.Param("id")

	var req VideoEndedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outline, err := c.CourseService.Outline(ctx.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if _, ok := service.FindLesson(outline.Units, req.LessonKey); !ok {
		util.Error(ctx, 404, util.ErrLessonNotFound.Error())
		return
	}

	if err := c.ProgressService.MarkVideoEnded(ctx.Request.Context(), claims.UserID, courseID, req.LessonKey); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"lessonKey": req.LessonKey, "videoEnded": true})
}
