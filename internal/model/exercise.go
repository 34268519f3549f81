package model

type ExerciseKind string

const (
	KindMultipleChoice     ExerciseKind = "multiple_choice"
	KindTrueFalse          ExerciseKind = "true_false"
	KindFillBlank          ExerciseKind = "fill_blank"
	KindText               ExerciseKind = "text"
	KindReorder            ExerciseKind = "reorder"
	KindMatching           ExerciseKind = "matching"
	KindReading            ExerciseKind = "reading"
	KindListening          ExerciseKind = "listening"
	KindReflection         ExerciseKind = "reflection"
	KindSentenceCorrection ExerciseKind = "sentence_correction"
	KindSpeaking           ExerciseKind = "speaking"
)

// SubQuestionKind tags the embedded questions of reading/listening exercises.
type SubQuestionKind string

const (
	SubQuestionMC SubQuestionKind = "mc"
	SubQuestionTF SubQuestionKind = "tf"
)

// Exercise is the authoring shape of a single exercise. The Kind tag decides
// which of the optional field groups is meaningful and which evaluator runs;
// every field is optional on the wire so malformed authored content decodes
// to zero values instead of failing.
type Exercise struct {
	ID     string       `json:"id"`
	Kind   ExerciseKind `json:"kind"`
	Prompt string       `json:"prompt"`

	// multiple_choice
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"correctOption,omitempty"`

	// true_false
	CorrectBool bool `json:"correctBool,omitempty"`

	// fill_blank: Sentence uses *** markers, Blanks holds expected answers in order
	Sentence string   `json:"sentence,omitempty"`
	Blanks   []string `json:"blanks,omitempty"`

	// reorder
	Items        []string `json:"items,omitempty"`
	CorrectOrder []int    `json:"correctOrder,omitempty"`

	// matching
	Pairs []MatchingPair `json:"pairs,omitempty"`

	// reading / listening
	Text      string        `json:"text,omitempty"`
	AudioURL  string        `json:"audioUrl,omitempty"`
	Questions []SubQuestion `json:"questions,omitempty"`

	// reflection
	IdeaCount int `json:"ideaCount,omitempty"`

	// sentence_correction
	Accepted []string `json:"accepted,omitempty"`
}

type MatchingPair struct {
	ID    string `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

type SubQuestion struct {
	ID            string          `json:"id"`
	Kind          SubQuestionKind `json:"kind"`
	Prompt        string          `json:"prompt"`
	Options       []string        `json:"options,omitempty"`
	CorrectOption int             `json:"correctOption,omitempty"`
	CorrectBool   bool            `json:"correctBool,omitempty"`
}

// AnswerMap holds a learner's answers keyed by local answer key. Values come
// from JSON, so numbers arrive as float64 and orderings as []interface{};
// evaluators coerce as needed.
type AnswerMap map[string]interface{}

// Clone returns an independent shallow copy.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
