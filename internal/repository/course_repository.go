package repository

import (
	"lingua_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByAuthor(authorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

// PublishDue flips courses whose scheduled publish time has passed.
func (r *CourseRepository) PublishDue(now time.Time) (int64, error) {
	res := r.DB.Model(&model.Course{}).
		Where("is_published = ? AND publish_at IS NOT NULL AND publish_at <= ?", false, now.Unix()).
		Update("is_published", true)
	return res.RowsAffected, res.Error
}
