package service

import (
	"lingua_edu_backend/internal/model"
	"strconv"
	"strings"
)

// EvalResult is the outcome of grading one exercise.
type EvalResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Passed reports the uniform pass rule: every scorable item correct. There is
// no partial-credit threshold for any kind. A degenerate 0/0 result passes:
// with one attempt per exercise, an exercise authored without scorable items
// must not fail the learner forever.
func (r EvalResult) Passed() bool {
	return r.Correct == r.Total
}

// EvaluatorFunc grades one exercise kind. Evaluators are pure: no persistence,
// no side effects, same inputs always give the same result.
type EvaluatorFunc func(ex *model.Exercise, answers model.AnswerMap) EvalResult

// evaluators dispatches by kind. Adding a kind means adding one entry here.
var evaluators = map[model.ExerciseKind]EvaluatorFunc{
	model.KindMultipleChoice:     evaluateMultipleChoice,
	model.KindTrueFalse:          evaluateTrueFalse,
	model.KindFillBlank:          evaluateFillBlank,
	model.KindText:               evaluateCompletionOnly,
	model.KindReorder:            evaluateReorder,
	model.KindMatching:           evaluateMatching,
	model.KindReading:            evaluateComprehension,
	model.KindListening:          evaluateComprehension,
	model.KindReflection:         evaluateReflection,
	model.KindSentenceCorrection: evaluateSentenceCorrection,
	model.KindSpeaking:           evaluateCompletionOnly,
}

// EvaluateExercise dispatches to the kind's evaluator. An unknown kind is
// graded as failed (0/1) so one bad exercise cannot block a whole lesson.
func EvaluateExercise(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	eval, ok := evaluators[ex.Kind]
	if !ok {
		return EvalResult{Correct: 0, Total: 1}
	}
	return eval(ex, answers)
}

func evaluateMultipleChoice(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	res := EvalResult{Total: 1}
	if v, ok := lookupAnswer(answers, ex.ID, ""); ok {
		if choice, ok := answerInt(v); ok && choice == ex.CorrectOption {
			res.Correct = 1
		}
	}
	return res
}

func evaluateTrueFalse(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	res := EvalResult{Total: 1}
	if v, ok := lookupAnswer(answers, ex.ID, ""); ok {
		if b, ok := answerBool(v); ok && b == ex.CorrectBool {
			res.Correct = 1
		}
	}
	return res
}

// evaluateFillBlank is all-or-nothing: every blank must match its expected
// answer after trimming, case-insensitively. No authored blanks means nothing
// to get wrong.
func evaluateFillBlank(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	res := EvalResult{Total: 1}
	for i, expected := range ex.Blanks {
		v, ok := lookupAnswer(answers, ex.ID, BlankSubID(i))
		if !ok {
			return res
		}
		got, ok := answerString(v)
		if !ok || !textMatches(got, expected) {
			return res
		}
	}
	res.Correct = 1
	return res
}

func evaluateReorder(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	res := EvalResult{Total: 1}
	if v, ok := lookupAnswer(answers, ex.ID, ""); ok {
		if order, ok := answerIntSlice(v); ok && intSlicesEqual(order, ex.CorrectOrder) {
			res.Correct = 1
		}
	}
	return res
}

func evaluateMatching(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	res := EvalResult{Total: len(ex.Pairs)}
	for i, pair := range ex.Pairs {
		v, ok := lookupAnswer(answers, ex.ID, PairSubID(pair, i))
		if !ok {
			continue
		}
		if got, ok := answerString(v); ok && got == pair.Right {
			res.Correct++
		}
	}
	return res
}

// evaluateComprehension scores reading and listening exercises: one point per
// sub-question, each graded by its own mc/tf rule.
func evaluateComprehension(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	res := EvalResult{Total: len(ex.Questions)}
	for i, q := range ex.Questions {
		v, ok := lookupAnswer(answers, ex.ID, QuestionSubID(q, i))
		if !ok {
			continue
		}
		switch q.Kind {
		case model.SubQuestionMC:
			if choice, ok := answerInt(v); ok && choice == q.CorrectOption {
				res.Correct++
			}
		case model.SubQuestionTF:
			if b, ok := answerBool(v); ok && b == q.CorrectBool {
				res.Correct++
			}
		}
	}
	return res
}

// evaluateReflection is a content-free completion check: one point per idea
// with non-empty trimmed text.
func evaluateReflection(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	count := ex.IdeaCount
	if count <= 0 {
		count = defaultReflectionIdeas
	}
	res := EvalResult{Total: count}
	for i := 0; i < count; i++ {
		v, ok := lookupAnswer(answers, ex.ID, IdeaSubID(i))
		if !ok {
			continue
		}
		if got, ok := answerString(v); ok && strings.TrimSpace(got) != "" {
			res.Correct++
		}
	}
	return res
}

func evaluateSentenceCorrection(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	res := EvalResult{Total: 1}
	v, ok := lookupAnswer(answers, ex.ID, "")
	if !ok {
		return res
	}
	got, ok := answerString(v)
	if !ok {
		return res
	}
	for _, accepted := range ex.Accepted {
		if textMatches(got, accepted) {
			res.Correct = 1
			break
		}
	}
	return res
}

// evaluateCompletionOnly covers text and speaking: not machine-gradable, the
// submission itself counts as completion.
func evaluateCompletionOnly(ex *model.Exercise, answers model.AnswerMap) EvalResult {
	return EvalResult{Correct: 1, Total: 1}
}

const defaultReflectionIdeas = 3

// Sub-item id helpers; authored ids win, positional ids fill the gaps.

func BlankSubID(i int) string {
	return "blank-" + strconv.Itoa(i+1)
}

func IdeaSubID(i int) string {
	return "idea-" + strconv.Itoa(i+1)
}

func PairSubID(pair model.MatchingPair, i int) string {
	if pair.ID != "" {
		return pair.ID
	}
	return "pair-" + strconv.Itoa(i+1)
}

func QuestionSubID(q model.SubQuestion, i int) string {
	if q.ID != "" {
		return q.ID
	}
	return "q-" + strconv.Itoa(i+1)
}

func textMatches(got, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(expected))
}

// lookupAnswer finds the value for (exerciseID, subItemID) inside an answer
// map whose keys are full local answer keys. Stored keys carry the exercise
// key prefix, so matching is by exact local suffix.
func lookupAnswer(answers model.AnswerMap, exerciseID, subItemID string) (interface{}, bool) {
	local := exerciseID
	if subItemID != "" {
		local = exerciseID + keySep + subItemID
	}
	if v, ok := answers[local]; ok {
		return v, true
	}
	suffix := keySep + local
	for k, v := range answers {
		if strings.HasSuffix(k, suffix) {
			return v, true
		}
	}
	return nil, false
}

func answerString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func answerInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func answerBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func answerIntSlice(v interface{}) ([]int, bool) {
	switch s := v.(type) {
	case []int:
		return s, true
	case []interface{}:
		out := make([]int, 0, len(s))
		for _, e := range s {
			n, ok := answerInt(e)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}

func intSlicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
