package service

import (
	"context"
	"encoding/json"
	"fmt"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// progressRecords is the persistence surface the service needs; satisfied by
// repository.ProgressRepository.
type progressRecords interface {
	GetState(userID uint, courseID string) (model.ProgressState, error)
	MergeState(userID uint, courseID string, partial model.ProgressState) error
}

// ProgressService is the adapter in front of the progress store: it loads a
// learner's byLesson document, rewrites retired key formats, caches the
// normalized result and merges partial updates back.
type ProgressService struct {
	Repo     progressRecords
	RDB      *redis.Client
	CacheTTL time.Duration
}

func NewProgressService(repo progressRecords, rdb *redis.Client, cacheTTL time.Duration) *ProgressService {
	return &ProgressService{Repo: repo, RDB: rdb, CacheTTL: cacheTTL}
}

func progressCacheKey(userID uint, courseID string) string {
	return fmt.Sprintf("progress:%d:%s", userID, courseID)
}

// Load returns the learner's normalized progress state. Legacy keys are
// rewritten on every load; the rewrite is idempotent so cached (already
// normalized) state passes through unchanged.
func (s *ProgressService) Load(ctx context.Context, userID uint, courseID string) (model.ProgressState, error) {
	if s.RDB != nil {
		cached, err := s.RDB.Get(ctx, progressCacheKey(userID, courseID)).Bytes()
		if err == nil {
			var state model.ProgressState
			if json.Unmarshal(cached, &state) == nil {
				return NormalizeProgressState(state), nil
			}
		}
	}

	state, err := s.Repo.GetState(userID, courseID)
	if err != nil {
		return nil, err
	}
	state = NormalizeProgressState(state)

	if s.RDB != nil {
		if encoded, err := json.Marshal(state); err == nil {
			if err := s.RDB.Set(ctx, progressCacheKey(userID, courseID), encoded, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("progress cache set failed", zap.Error(err))
			}
		}
	}

	return state, nil
}

// Merge applies a shallow per-key overwrite and drops the cache entry.
func (s *ProgressService) Merge(ctx context.Context, userID uint, courseID string, partial model.ProgressState) error {
	if err := s.Repo.MergeState(userID, courseID, partial); err != nil {
		return err
	}
	if s.RDB != nil {
		if err := s.RDB.Del(ctx, progressCacheKey(userID, courseID)).Err(); err != nil {
			logger.Log.Warn("progress cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}

// MarkVideoEnded records that the learner finished a lesson's video. The
// merged record keeps an existing exSubmitted flag since merging overwrites
// whole records.
func (s *ProgressService) MarkVideoEnded(ctx context.Context, userID uint, courseID, lessonKey string) error {
	state, err := s.Load(ctx, userID, courseID)
	if err != nil {
		return err
	}
	rec := state[lessonKey]
	if rec.VideoEnded {
		return nil
	}
	rec.VideoEnded = true
	return s.Merge(ctx, userID, courseID, model.ProgressState{lessonKey: rec})
}

// Stats computes the aggregate completion summary for a loaded state.
func (s *ProgressService) Stats(state model.ProgressState, totalLessons int) model.ProgressStats {
	return ComputeStats(state, totalLessons)
}
