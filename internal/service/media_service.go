package service

import (
	"context"
	"fmt"
	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaService handles lesson media uploads. Videos get probed for duration
// and dimensions and a thumbnail frame is extracted; PDFs and audio are stored
// as-is.
type MediaService struct {
	Repo    *repository.MediaRepository
	Storage *StorageService
	Cfg     *config.Config
}

func NewMediaService(repo *repository.MediaRepository, storage *StorageService, cfg *config.Config) *MediaService {
	return &MediaService{Repo: repo, Storage: storage, Cfg: cfg}
}

func isVideo(contentType string) bool {
	return strings.HasPrefix(contentType, util.MimeVideo)
}

func isAudio(contentType string) bool {
	return strings.HasPrefix(contentType, util.MimeAudio)
}

// allowedContentType gates uploads to the media kinds lessons embed.
func allowedContentType(contentType string) bool {
	switch {
	case contentType == "" || contentType == util.MimeOctetStream:
		return false
	case isVideo(contentType), isAudio(contentType):
		return true
	case strings.HasPrefix(contentType, util.MimeImage):
		return true
	case contentType == util.MimePDF:
		return true
	}
	return false
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// Upload stores the file, probes it when it is a video, and records the asset.
func (s *MediaService) Upload(ctx context.Context, uploaderID uint, header *multipart.FileHeader) (*model.MediaAsset, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	storedName := uuid.New().String() + ext
	contentType := header.Header.Get("Content-Type")

	if !allowedContentType(contentType) {
		return nil, fmt.Errorf("%w: content type %q", util.ErrUnsupportedMedia, contentType)
	}
	if isVideo(contentType) && !extensionAllowed(ext, util.AllowedVideoExtensions) {
		return nil, fmt.Errorf("%w: video extension %q", util.ErrUnsupportedMedia, ext)
	}
	if isAudio(contentType) && !extensionAllowed(ext, util.AllowedAudioExtensions) {
		return nil, fmt.Errorf("%w: audio extension %q", util.ErrUnsupportedMedia, ext)
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Stage on local disk first so ffprobe can read it.
	tmpDir := filepath.Join(os.TempDir(), "lingua-uploads")
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return nil, err
	}
	tmpPath := filepath.Join(tmpDir, storedName)
	if err := util.SaveToFile(src, tmpPath); err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	url, err := s.Storage.UploadFile(ctx, storedName, tmpPath, contentType)
	if err != nil {
		return nil, err
	}

	asset := &model.MediaAsset{
		UploaderID:  uploaderID,
		Filename:    header.Filename,
		URL:         url,
		ContentType: contentType,
		Size:        header.Size,
	}

	if isVideo(contentType) {
		if info, err := util.GetVideoInfo(tmpPath); err != nil {
			logger.Log.Warn("video probe failed", zap.String("filename", header.Filename), zap.Error(err))
		} else {
			asset.Duration = info.Duration
			asset.Width = info.Width
			asset.Height = info.Height
		}

		thumbName := strings.TrimSuffix(storedName, ext) + "_thumb.jpg"
		thumbPath := filepath.Join(tmpDir, thumbName)
		if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err != nil {
			logger.Log.Warn("thumbnail generation failed", zap.String("filename", header.Filename), zap.Error(err))
		} else {
			defer os.Remove(thumbPath)
			thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg")
			if err != nil {
				logger.Log.Warn("thumbnail upload failed", zap.Error(err))
			} else {
				asset.ThumbnailURL = thumbURL
			}
		}
	}

	if err := s.Repo.Create(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *MediaService) Get(id string) (*model.MediaAsset, error) {
	asset, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("media asset %s: %w", id, err)
	}
	return asset, nil
}

func (s *MediaService) ListByUploader(uploaderID uint) ([]model.MediaAsset, error) {
	return s.Repo.ListByUploader(uploaderID)
}
