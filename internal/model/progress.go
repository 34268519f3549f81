package model

import "encoding/json"

// CourseProgress is one learner's permanent record for one course. State is
// the byLesson document: progress records keyed by lesson key or exercise key.
type CourseProgress struct {
	BaseModel
	UserID   uint            `gorm:"index:idx_user_course,unique;type:bigint unsigned" json:"userId"`
	CourseID string          `gorm:"index:idx_user_course,unique;type:varchar(36)" json:"courseId"`
	State    json.RawMessage `gorm:"type:json" json:"state"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// ProgressState is the decoded byLesson map.
type ProgressState map[string]ProgressRecord

// ProgressRecord is the persisted outcome for one lesson or one exercise.
// Lesson-key records carry the flags; exercise-key records carry the score.
// Records are written once on first submission and never mutated afterwards.
type ProgressRecord struct {
	VideoEnded  bool         `json:"videoEnded,omitempty"`
	ExSubmitted bool         `json:"exSubmitted,omitempty"`
	ExPassed    bool         `json:"exPassed,omitempty"`
	Score       *ScoreRecord `json:"score,omitempty"`
}

// ScoreRecord is the graded result of one exercise submission, including the
// raw answers so the UI can be restored later.
type ScoreRecord struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Answers AnswerMap `json:"answers"`
}

// Completed reports whether this record marks its lesson as done.
func (r ProgressRecord) Completed() bool {
	return r.VideoEnded || r.ExSubmitted
}
