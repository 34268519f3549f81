package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseService owns authored courses and their normalized form. The raw
// document is stored verbatim; normalization runs on read and the outline is
// cached per course revision.
type CourseService struct {
	Repo     *repository.CourseRepository
	RDB      *redis.Client
	CacheTTL time.Duration
}

func NewCourseService(repo *repository.CourseRepository, rdb *redis.Client, cacheTTL time.Duration) *CourseService {
	return &CourseService{Repo: repo, RDB: rdb, CacheTTL: cacheTTL}
}

// CourseOutline is the learner-facing normalized view of one course.
type CourseOutline struct {
	CourseID     string                 `json:"courseId"`
	Title        string                 `json:"title"`
	Units        []model.NormalizedUnit `json:"units"`
	Sequence     []model.SequenceEntry  `json:"sequence"`
	TotalLessons int                    `json:"totalLessons"`
}

type CourseRequest struct {
	Title     string          `json:"title" binding:"required"`
	Language  string          `json:"language"`
	Document  json.RawMessage `json:"document"`
	Published *bool           `json:"published"`
	PublishAt *int64          `json:"publishAt"`
}

func (s *CourseService) CreateCourse(authorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:    req.Title,
		Language: req.Language,
		AuthorID: authorID,
		Document: req.Document,
	}
	if course.Language == "" {
		course.Language = "es"
	}
	if req.Published != nil {
		course.IsPublished = *req.Published
	}
	course.PublishAt = req.PublishAt

	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(courseID string, authorID uint, isAdmin bool, req CourseRequest) (*model.Course, error) {
	course, err := s.Repo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if course.AuthorID != authorID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	course.Title = req.Title
	if req.Language != "" {
		course.Language = req.Language
	}
	if req.Document != nil {
		course.Document = req.Document
	}
	if req.Published != nil {
		course.IsPublished = *req.Published
	}
	if req.PublishAt != nil {
		course.PublishAt = req.PublishAt
	}

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}
	s.dropOutlineCache(context.Background(), courseID)
	return course, nil
}

func (s *CourseService) GetCourse(courseID string) (*model.Course, error) {
	course, err := s.Repo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListPublished(page, limit)
}

func (s *CourseService) ListByAuthor(authorID uint) ([]model.Course, error) {
	return s.Repo.ListByAuthor(authorID)
}

func outlineCacheKey(courseID string, revision time.Time) string {
	return fmt.Sprintf("outline:%s:%d", courseID, revision.Unix())
}

// Outline decodes, normalizes and flattens a course. A document that fails to
// decode is treated as empty rather than failing the request: normalization
// tolerates any subset of authored fields.
func (s *CourseService) Outline(ctx context.Context, courseID string) (*CourseOutline, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	cacheKey := outlineCacheKey(courseID, course.UpdatedAt)
	if s.RDB != nil {
		cached, err := s.RDB.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var outline CourseOutline
			if json.Unmarshal(cached, &outline) == nil {
				return &outline, nil
			}
		}
	}

	var doc model.CourseDocument
	if len(course.Document) > 0 {
		if err := json.Unmarshal(course.Document, &doc); err != nil {
			logger.Log.Warn("course document failed to decode, normalizing empty document",
				zap.String("courseId", courseID), zap.Error(err))
			doc = model.CourseDocument{}
		}
	}
	if doc.Title == "" {
		doc.Title = course.Title
	}

	units := NormalizeCourse(&doc)
	seq := BuildSequence(units)

	outline := &CourseOutline{
		CourseID:     course.ID,
		Title:        course.Title,
		Units:        units,
		Sequence:     seq.Entries(),
		TotalLessons: seq.Len(),
	}

	if s.RDB != nil {
		if encoded, err := json.Marshal(outline); err == nil {
			if err := s.RDB.Set(ctx, cacheKey, encoded, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("outline cache set failed", zap.Error(err))
			}
		}
	}

	return outline, nil
}

func (s *CourseService) dropOutlineCache(ctx context.Context, courseID string) {
	if s.RDB == nil {
		return
	}
	iter := s.RDB.Scan(ctx, 0, "outline:"+courseID+":*", 0).Iterator()
	for iter.Next(ctx) {
		s.RDB.Del(ctx, iter.Val())
	}
}

// ProcessScheduledPublishes publishes courses whose scheduled time is due.
func (s *CourseService) ProcessScheduledPublishes() error {
	n, err := s.Repo.PublishDue(time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Log.Info("published scheduled courses", zap.Int64("count", n))
	}
	return nil
}
