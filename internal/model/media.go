package model

// MediaAsset records an uploaded lesson video or PDF and, for videos, the
// probed metadata.
type MediaAsset struct {
	UUIDBase
	UploaderID   uint    `gorm:"index;type:bigint unsigned" json:"uploaderId"`
	Filename     string  `gorm:"size:255;not null" json:"filename"`
	URL          string  `gorm:"size:512;not null" json:"url"`
	ContentType  string  `gorm:"size:100" json:"contentType"`
	Size         int64   `gorm:"default:0" json:"size"`
	Duration     float64 `gorm:"default:0" json:"duration"` // seconds, videos only
	Width        int     `gorm:"default:0" json:"width"`
	Height       int     `gorm:"default:0" json:"height"`
	ThumbnailURL string  `gorm:"size:512" json:"thumbnailUrl"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}
