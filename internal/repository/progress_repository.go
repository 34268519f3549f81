package repository

import (
	"encoding/json"
	"errors"
	"lingua_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository stores one byLesson progress document per
// (user, course) pair. It deals in raw state only; legacy key rewriting and
// caching live in the progress service.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetState returns the stored progress map, or an empty map when the learner
// has no record yet.
func (r *ProgressRepository) GetState(userID uint, courseID string) (model.ProgressState, error) {
	var row model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProgressState{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeState(row.State)
}

// MergeState applies a shallow per-key overwrite of partial onto the stored
// document, inside a transaction so concurrent merges do not lose keys. The
// nested answers of an existing record are replaced, not deep-merged.
func (r *ProgressRepository) MergeState(userID uint, courseID string, partial model.ProgressState) error {
	if len(partial) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var row model.CourseProgress
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&row).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = model.CourseProgress{UserID: userID, CourseID: courseID}
			err = nil
		}
		if err != nil {
			return err
		}

		state, err := decodeState(row.State)
		if err != nil {
			return err
		}
		for key, rec := range partial {
			state[key] = rec
		}

		encoded, err := json.Marshal(state)
		if err != nil {
			return err
		}
		row.State = encoded

		if row.ID == 0 {
			return tx.Create(&row).Error
		}
		return tx.Save(&row).Error
	})
}

func decodeState(raw json.RawMessage) (model.ProgressState, error) {
	if len(raw) == 0 {
		return model.ProgressState{}, nil
	}
	var state model.ProgressState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	if state == nil {
		state = model.ProgressState{}
	}
	return state, nil
}
