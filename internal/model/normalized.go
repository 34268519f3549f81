package model

// Synthetic lesson and unit ids produced by normalization.
const (
	LessonIDIntro   = "intro"
	LessonIDClosing = "closing"
	LessonIDFinal   = "final"

	UnitIDClosingCourse = "closing-course"
)

// NormalizedUnit is one unit after normalization: authored units in original
// order, plus at most one trailing closing-course unit.
type NormalizedUnit struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Lessons []NormalizedLesson `json:"lessons"`
}

// NormalizedLesson is a flat, stably keyed lesson. Key is "<unitId>::<lessonId>"
// and is unique across the whole course.
type NormalizedLesson struct {
	Key         string            `json:"key"`
	ID          string            `json:"id"`
	UnitID      string            `json:"unitId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	VideoURL    string            `json:"videoUrl"`
	PDFURL      string            `json:"pdfUrl"`
	Theory      string            `json:"theory"`
	Vocabulary  []VocabularyEntry `json:"vocabulary"`
	Exercises   []Exercise        `json:"exercises"`
}

// SequenceEntry locates one lesson in the flattened course order.
type SequenceEntry struct {
	UnitIndex   int    `json:"unitIndex"`
	LessonIndex int    `json:"lessonIndex"`
	Key         string `json:"key"`
}

// ProgressStats is the aggregate completion summary shown to the learner.
type ProgressStats struct {
	CompletedCount int `json:"completedCount"`
	TotalLessons   int `json:"totalLessons"`
	Percentage     int `json:"percentage"`
}
