package service

import (
	"fmt"
	"strings"
)

// Key derivation for lessons, exercises and individual answers. Derivation is
// deterministic and purely positional: identical inputs always produce the
// identical key regardless of render order. Legacy key variants are NOT
// handled here; rewriting old formats is the progress store's job on load.

const keySep = "::"

// LessonKey builds the stable composite lesson identifier "<unitId>::<lessonId>".
func LessonKey(unitID, lessonID string) string {
	return unitID + keySep + lessonID
}

// ExerciseKey builds the per-exercise key "<lessonKey>::ex<index>".
func ExerciseKey(lessonKey string, exerciseIndex int) string {
	return fmt.Sprintf("%s%sex%d", lessonKey, keySep, exerciseIndex)
}

// LocalAnswerKey builds the key under which one answer value is stored inside
// a score record: "<exerciseKey>::<exerciseId>" plus "::<subItemId>" for
// exercises with sub-questions (reading/listening questions, matching pairs,
// reflection ideas, fill-blank slots).
func LocalAnswerKey(exerciseKey, exerciseID, subItemID string) string {
	if subItemID == "" {
		return exerciseKey + keySep + exerciseID
	}
	return exerciseKey + keySep + exerciseID + keySep + subItemID
}

// LessonKeyOf strips the "::ex<N>" suffix from an exercise key. Keys without
// the suffix are returned unchanged.
func LessonKeyOf(key string) string {
	idx := strings.Index(key, keySep+"ex")
	if idx < 0 {
		return key
	}
	return key[:idx]
}

// IsExerciseKey reports whether key addresses an exercise rather than a lesson.
func IsExerciseKey(key string) bool {
	return strings.Contains(key, keySep+"ex")
}
