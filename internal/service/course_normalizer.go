package service

import (
	"fmt"
	"lingua_edu_backend/internal/model"
)

// NormalizeCourse flattens the raw authored course tree into ordered units of
// stably keyed lessons. It is a pure function of its input: normalizing the
// same document twice yields the identical result, and it never fails.
// Missing authored fields default to empty values.
//
// Synthesis rules:
//   - a unit with an intro video or description gets a synthetic "intro"
//     lesson prepended, built from those unit-level fields;
//   - a unit whose closing block has content (exam intro, exercises or PDF)
//     gets a synthetic "closing" lesson appended;
//   - a course with a final message or video gets one trailing
//     "closing-course" unit holding a single "final" lesson.
//
// Nothing is synthesized from empty content, so navigation never stops on a
// phantom lesson.
func NormalizeCourse(doc *model.CourseDocument) []model.NormalizedUnit {
	if doc == nil {
		return nil
	}

	units := make([]model.NormalizedUnit, 0, len(doc.Units)+1)
	seen := make(map[string]bool)

	for ui, unit := range doc.Units {
		unitID := unit.ID
		if unitID == "" {
			unitID = fmt.Sprintf("unit-%d", ui+1)
		}

		lessons := make([]model.NormalizedLesson, 0, len(unit.Lessons)+2)

		if unit.IntroVideoURL != "" || unit.Description != "" {
			lessons = append(lessons, model.NormalizedLesson{
				ID:          model.LessonIDIntro,
				UnitID:      unitID,
				Title:       unit.Title,
				Description: unit.Description,
				VideoURL:    unit.IntroVideoURL,
			})
		}

		for li, lesson := range unit.Lessons {
			lessonID := lesson.ID
			if lessonID == "" {
				lessonID = fmt.Sprintf("lesson-%d-%d", ui+1, li+1)
			}
			lessons = append(lessons, model.NormalizedLesson{
				ID:          lessonID,
				UnitID:      unitID,
				Title:       lesson.Title,
				Description: lesson.Description,
				VideoURL:    lesson.VideoURL,
				PDFURL:      lesson.PDFURL,
				Theory:      lesson.Theory,
				Vocabulary:  lesson.Vocabulary,
				Exercises:   lesson.Exercises,
			})
		}

		if unit.Closing.HasContent() {
			lessons = append(lessons, model.NormalizedLesson{
				ID:          model.LessonIDClosing,
				UnitID:      unitID,
				Title:       unit.Title,
				Description: unit.Closing.ExamIntro,
				PDFURL:      unit.Closing.PDFURL,
				Exercises:   unit.Closing.Exercises,
			})
		}

		for i := range lessons {
			lessons[i].Key = uniqueLessonKey(seen, lessons[i].UnitID, lessons[i].ID)
			seen[lessons[i].Key] = true
		}

		units = append(units, model.NormalizedUnit{
			ID:      unitID,
			Title:   unit.Title,
			Lessons: lessons,
		})
	}

	if doc.Closing.HasContent() {
		final := model.NormalizedLesson{
			ID:          model.LessonIDFinal,
			UnitID:      model.UnitIDClosingCourse,
			Title:       doc.Title,
			Description: doc.Closing.Message,
			VideoURL:    doc.Closing.VideoURL,
		}
		final.Key = uniqueLessonKey(seen, final.UnitID, final.ID)
		seen[final.Key] = true

		units = append(units, model.NormalizedUnit{
			ID:      model.UnitIDClosingCourse,
			Title:   doc.Title,
			Lessons: []model.NormalizedLesson{final},
		})
	}

	return units
}

// uniqueLessonKey derives the lesson key, disambiguating authored ids that
// were reused after edits. Disambiguation is positional, so it stays stable
// across normalizations of the same document.
func uniqueLessonKey(seen map[string]bool, unitID, lessonID string) string {
	key := LessonKey(unitID, lessonID)
	if !seen[key] {
		return key
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", key, n)
		if !seen[candidate] {
			return candidate
		}
	}
}

// FindLesson returns the normalized lesson with the given key.
func FindLesson(units []model.NormalizedUnit, lessonKey string) (*model.NormalizedLesson, bool) {
	for ui := range units {
		for li := range units[ui].Lessons {
			if units[ui].Lessons[li].Key == lessonKey {
				return &units[ui].Lessons[li], true
			}
		}
	}
	return nil, false
}

// FindExercise returns the exercise at exerciseIndex within the lesson.
func FindExercise(units []model.NormalizedUnit, lessonKey string, exerciseIndex int) (*model.Exercise, bool) {
	lesson, ok := FindLesson(units, lessonKey)
	if !ok {
		return nil, false
	}
	if exerciseIndex < 0 || exerciseIndex >= len(lesson.Exercises) {
		return nil, false
	}
	return &lesson.Exercises[exerciseIndex], true
}
