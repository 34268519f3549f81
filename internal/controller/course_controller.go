package controller

import (
	"errors"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// canViewUnpublished reports whether claims may see a course that is not yet
// published: its author, or an admin.
func canViewUnpublished(claims *util.Claims, course *model.Course) bool {
	if claims == nil {
		return false
	}
	return claims.Role == model.Admin || claims.UserID == course.AuthorID
}

func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Param("id"), claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, course)
}

func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	if !course.IsPublished && !canViewUnpublished(claims, course) {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, course)
}

func (c *CourseController) ListPublished(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.CourseService.ListPublished(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

func (c *CourseController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListByAuthor(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// Outline returns the normalized learner view: units with synthetic lessons
// in place, the flattened lesson sequence, and the total lesson count.
func (c *CourseController) Outline(ctx *gin.Context) {
	courseID := ctx.Param("id")

	course, err := c.CourseService.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	if !course.IsPublished && !canViewUnpublished(claims, course) {
		util.NotFound(ctx)
		return
	}

	outline, err := c.CourseService.Outline(ctx.Request.Context(), courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, outline)
}

// GetLesson resolves one lesson by its composite key and returns it together
// with its position and the neighboring lesson keys.
func (c *CourseController) GetLesson(ctx *gin.Context) {
	courseID := ctx.Param("id")
	lessonKey := ctx.Param("key")

	course, err := c.CourseService.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	if !course.IsPublished && !canViewUnpublished(claims, course) {
		util.NotFound(ctx)
		return
	}

	outline, err := c.CourseService.Outline(ctx.Request.Context(), courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	lesson, ok := service.FindLesson(outline.Units, lessonKey)
	if !ok {
		util.Error(ctx, 404, util.ErrLessonNotFound.Error())
		return
	}

	position := -1
	for i, entry := range outline.Sequence {
		if entry.Key == lessonKey {
			position = i
			break
		}
	}

	resp := gin.H{
		"lesson":   lesson,
		"position": position,
		"total":    outline.TotalLessons,
	}
	if position > 0 {
		resp["previousKey"] = outline.Sequence[position-1].Key
	}
	if position >= 0 && position+1 < len(outline.Sequence) {
		resp["nextKey"] = outline.Sequence[position+1].Key
	}

	util.Success(ctx, resp)
}
