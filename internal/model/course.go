package model

import "encoding/json"

// Course is the stored authoring record. Document holds the raw author-edited
// course tree verbatim; the normalizer works on the decoded CourseDocument and
// never mutates it.
type Course struct {
	UUIDBase
	Title       string          `gorm:"size:255;not null" json:"title"`
	Language    string          `gorm:"size:10;default:'es'" json:"language"`
	AuthorID    uint            `gorm:"index;type:bigint unsigned" json:"authorId"`
	Document    json.RawMessage `gorm:"type:json" json:"document"`
	IsPublished bool            `gorm:"default:false" json:"isPublished"`
	PublishAt   *int64          `json:"publishAt,omitempty"` // unix seconds, scheduled publish
}

func (Course) TableName() string {
	return "courses"
}

// CourseDocument is the raw authored course tree. Every field is optional:
// legacy documents miss ids, empty drafts miss whole blocks. Decoding must
// never fail on absent fields.
type CourseDocument struct {
	Title   string         `json:"title"`
	Units   []UnitDoc      `json:"units"`
	Closing *CourseClosing `json:"closing,omitempty"`
}

type UnitDoc struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	IntroVideoURL string      `json:"introVideoUrl"`
	Lessons       []LessonDoc `json:"lessons"`
	Closing       *UnitClosing `json:"closing,omitempty"`
}

type LessonDoc struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	VideoURL    string            `json:"videoUrl"`
	PDFURL      string            `json:"pdfUrl"`
	Theory      string            `json:"theory"`
	Vocabulary  []VocabularyEntry `json:"vocabulary"`
	Exercises   []Exercise        `json:"exercises"`
}

type VocabularyEntry struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
	Example     string `json:"example"`
}

// UnitClosing is the optional unit-level wrap-up exam block.
type UnitClosing struct {
	ExamIntro string     `json:"examIntro"`
	Exercises []Exercise `json:"exercises"`
	PDFURL    string     `json:"pdfUrl"`
}

// CourseClosing is the optional course-level final message block.
type CourseClosing struct {
	Message  string `json:"message"`
	VideoURL string `json:"videoUrl"`
}

// HasContent reports whether the closing block would produce a closing lesson.
func (c *UnitClosing) HasContent() bool {
	if c == nil {
		return false
	}
	return c.ExamIntro != "" || len(c.Exercises) > 0 || c.PDFURL != ""
}

// HasContent reports whether the course defines a final closing lesson.
func (c *CourseClosing) HasContent() bool {
	if c == nil {
		return false
	}
	return c.Message != "" || c.VideoURL != ""
}
