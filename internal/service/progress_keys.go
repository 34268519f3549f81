package service

import (
	"lingua_edu_backend/internal/model"
	"math"
	"strings"
)

// Retired key formats rewritten on every load. The rewrite must be idempotent:
// a key already in the current format passes through unchanged, and a rewrite
// never overwrites an existing current-format record.
const (
	legacyClosingCourseUnit = "course-closing"
	legacyClosingLessonID   = "closing-exam"
)

// RewriteLegacyKey maps one retired key variant to the current convention.
func RewriteLegacyKey(key string) string {
	parts := strings.Split(key, keySep)
	if len(parts) == 0 {
		return key
	}
	if parts[0] == legacyClosingCourseUnit {
		parts[0] = model.UnitIDClosingCourse
	}
	if len(parts) > 1 && parts[1] == legacyClosingLessonID {
		parts[1] = model.LessonIDClosing
	}
	return strings.Join(parts, keySep)
}

// NormalizeProgressState rewrites every legacy key in a loaded state map.
// Running it on an already-normalized map is a no-op; when a legacy key and
// its current form both exist, the current record wins.
func NormalizeProgressState(state model.ProgressState) model.ProgressState {
	if state == nil {
		return model.ProgressState{}
	}
	out := make(model.ProgressState, len(state))
	// Current-format keys first so rewritten legacy keys cannot clobber them.
	for key, rec := range state {
		if RewriteLegacyKey(key) == key {
			out[key] = rec
		}
	}
	for key, rec := range state {
		rewritten := RewriteLegacyKey(key)
		if rewritten == key {
			continue
		}
		if _, exists := out[rewritten]; !exists {
			out[rewritten] = rec
		}
	}
	return out
}

// ComputeStats aggregates lesson completion. Only lesson-key records count: a
// lesson is done once its record has videoEnded or exSubmitted set. The
// percentage is rounded, clamped to [0,100] and zero for an empty course.
func ComputeStats(state model.ProgressState, totalLessons int) model.ProgressStats {
	stats := model.ProgressStats{TotalLessons: totalLessons}
	for key, rec := range state {
		if IsExerciseKey(key) {
			continue
		}
		if rec.Completed() {
			stats.CompletedCount++
		}
	}
	if totalLessons <= 0 {
		return stats
	}
	pct := int(math.Round(100 * float64(stats.CompletedCount) / float64(totalLessons)))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	stats.Percentage = pct
	return stats
}
