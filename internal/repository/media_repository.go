package repository

import (
	"lingua_edu_backend/internal/model"

	"gorm.io/gorm"
)

type MediaRepository struct {
	DB *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{DB: db}
}

func (r *MediaRepository) Create(asset *model.MediaAsset) error {
	return r.DB.Create(asset).Error
}

func (r *MediaRepository) FindByID(id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	err := r.DB.Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *MediaRepository) ListByUploader(uploaderID uint) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset
	err := r.DB.Where("uploader_id = ?", uploaderID).
		Order("created_at DESC").
		Find(&assets).Error
	return assets, err
}
