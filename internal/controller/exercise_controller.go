package controller

import (
	"errors"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Sessions *service.ExerciseSessionService
	Courses  *service.CourseService
}

func NewExerciseController(sessions *service.ExerciseSessionService, courses *service.CourseService) *ExerciseController {
	return &ExerciseController{Sessions: sessions, Courses: courses}
}

// Open starts or restores a session for one exercise of a lesson. Opening
// again for the same exercise supersedes the previous session token.
func (c *ExerciseController) Open(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		util.BadRequest(ctx, "invalid exercise index")
		return
	}

	course, err := c.Courses.GetCourse(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if !course.IsPublished && !canViewUnpublished(claims, course) {
		util.NotFound(ctx)
		return
	}

	session, err := c.Sessions.Open(ctx.Request.Context(), claims.UserID, ctx.Param("id"), ctx.Param("key"), index)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrExerciseNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

type SaveAnswerRequest struct {
	SubItemID string      `json:"subItemId"`
	Value     interface{} `json:"value"`
}

// SaveAnswer stores one answer in the session. Nothing is persisted until
// submit.
func (c *ExerciseController) SaveAnswer(ctx *gin.Context) {
	var req SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Sessions.SaveAnswer(ctx.Param("token"), req.SubItemID, req.Value)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// Submit grades the session. One attempt per exercise: a second submit, from
// this or any other session, is rejected.
func (c *ExerciseController) Submit(ctx *gin.Context) {
	session, err := c.Sessions.Submit(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

func (c *ExerciseController) Get(ctx *gin.Context) {
	session, err := c.Sessions.Get(ctx.Param("token"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}

func (c *ExerciseController) writeSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionSuperseded):
		util.Conflict(ctx, "session superseded by a newer attempt")
	case errors.Is(err, util.ErrAlreadySubmitted):
		util.Conflict(ctx, "exercise already submitted")
	case errors.Is(err, util.ErrProgressUnavailable):
		util.Error(ctx, http.StatusServiceUnavailable, "progress store unavailable, answers kept, retry submit")
	default:
		util.LogInternalError(ctx, err)
	}
}
