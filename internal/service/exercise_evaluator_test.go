package service

import (
	"lingua_edu_backend/internal/model"
	"testing"
)

func TestEvaluateMultipleChoice(t *testing.T) {
	ex := &model.Exercise{ID: "e1", Kind: model.KindMultipleChoice, Options: []string{"a", "b", "c"}, CorrectOption: 2}

	res := EvaluateExercise(ex, model.AnswerMap{"e1": 2})
	if res.Correct != 1 || !res.Passed() {
		t.Fatalf("correct option should pass, got %+v", res)
	}

	// JSON decoding delivers numbers as float64.
	res = EvaluateExercise(ex, model.AnswerMap{"e1": float64(2)})
	if !res.Passed() {
		t.Fatalf("float64 choice should pass, got %+v", res)
	}

	res = EvaluateExercise(ex, model.AnswerMap{"e1": 0})
	if res.Correct != 0 || res.Passed() {
		t.Fatalf("wrong option should fail, got %+v", res)
	}

	res = EvaluateExercise(ex, model.AnswerMap{})
	if res.Correct != 0 || res.Total != 1 {
		t.Fatalf("missing answer should fail 0/1, got %+v", res)
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	ex := &model.Exercise{ID: "e1", Kind: model.KindTrueFalse, CorrectBool: true}

	if res := EvaluateExercise(ex, model.AnswerMap{"e1": true}); !res.Passed() {
		t.Fatalf("expected pass, got %+v", res)
	}
	if res := EvaluateExercise(ex, model.AnswerMap{"e1": false}); res.Passed() {
		t.Fatalf("expected fail, got %+v", res)
	}
	if res := EvaluateExercise(ex, model.AnswerMap{"e1": "true"}); res.Passed() {
		t.Fatalf("non-bool answer must not pass, got %+v", res)
	}
}

func TestEvaluateFillBlank(t *testing.T) {
	ex := &model.Exercise{
		ID:       "e1",
		Kind:     model.KindFillBlank,
		Sentence: "I ***. You ***.",
		Blanks:   []string{"run", "walk"},
	}

	res := EvaluateExercise(ex, model.AnswerMap{
		"e1::blank-1": " Run",
		"e1::blank-2": "walk ",
	})
	if res.Correct != 1 || res.Total != 1 {
		t.Fatalf("trimmed case-insensitive blanks should pass, got %+v", res)
	}

	res = EvaluateExercise(ex, model.AnswerMap{
		"e1::blank-1": "run",
		"e1::blank-2": "",
	})
	if res.Correct != 0 {
		t.Fatalf("all-or-nothing: one empty blank fails the whole exercise, got %+v", res)
	}

	res = EvaluateExercise(ex, model.AnswerMap{"e1::blank-1": "run"})
	if res.Correct != 0 {
		t.Fatalf("missing blank fails, got %+v", res)
	}
}

func TestEvaluateFillBlankNoBlanks(t *testing.T) {
	ex := &model.Exercise{ID: "e1", Kind: model.KindFillBlank}
	if res := EvaluateExercise(ex, model.AnswerMap{}); res.Correct != 1 || res.Total != 1 {
		t.Fatalf("zero authored blanks leave nothing to get wrong, got %+v", res)
	}
}

func TestEvaluateReorder(t *testing.T) {
	ex := &model.Exercise{ID: "e1", Kind: model.KindReorder, Items: []string{"yo", "como", "pan"}, CorrectOrder: []int{0, 1, 2}}

	if res := EvaluateExercise(ex, model.AnswerMap{"e1": []int{0, 1, 2}}); !res.Passed() {
		t.Fatalf("correct order should pass, got %+v", res)
	}
	// JSON decoding delivers arrays as []interface{} of float64.
	if res := EvaluateExercise(ex, model.AnswerMap{"e1": []interface{}{float64(0), float64(1), float64(2)}}); !res.Passed() {
		t.Fatalf("decoded order should pass, got %+v", res)
	}
	if res := EvaluateExercise(ex, model.AnswerMap{"e1": []int{2, 1, 0}}); res.Passed() {
		t.Fatalf("wrong order should fail, got %+v", res)
	}
	if res := EvaluateExercise(ex, model.AnswerMap{"e1": []int{0, 1}}); res.Passed() {
		t.Fatalf("short order should fail, got %+v", res)
	}
}

func TestEvaluateMatching(t *testing.T) {
	ex := &model.Exercise{
		ID:   "e1",
		Kind: model.KindMatching,
		Pairs: []model.MatchingPair{
			{ID: "p1", Left: "perro", Right: "dog"},
			{Left: "gato", Right: "cat"},
		},
	}

	res := EvaluateExercise(ex, model.AnswerMap{
		"e1::p1":     "dog",
		"e1::pair-2": "cat",
	})
	if res.Correct != 2 || res.Total != 2 || !res.Passed() {
		t.Fatalf("both pairs matched should pass, got %+v", res)
	}

	res = EvaluateExercise(ex, model.AnswerMap{
		"e1::p1":     "dog",
		"e1::pair-2": "dog",
	})
	if res.Correct != 1 || res.Passed() {
		t.Fatalf("one wrong pair gives 1/2 failed, got %+v", res)
	}
}

// An exercise authored without scorable items grades 0/0 and passes; under
// the one-attempt policy a failing 0/0 would lock the learner out forever.
func TestEvaluateDegenerateExercisePasses(t *testing.T) {
	noPairs := &model.Exercise{ID: "e1", Kind: model.KindMatching}
	if res := EvaluateExercise(noPairs, model.AnswerMap{}); res.Total != 0 || !res.Passed() {
		t.Fatalf("matching without pairs should pass vacuously, got %+v", res)
	}

	noQuestions := &model.Exercise{ID: "e1", Kind: model.KindReading, Text: "Hola."}
	if res := EvaluateExercise(noQuestions, model.AnswerMap{}); res.Total != 0 || !res.Passed() {
		t.Fatalf("reading without sub-questions should pass vacuously, got %+v", res)
	}

	// Unknown kinds still grade 0/1 and fail.
	unknown := &model.Exercise{ID: "e1", Kind: "karaoke"}
	if res := EvaluateExercise(unknown, model.AnswerMap{}); res.Passed() {
		t.Fatalf("unknown kind must not pass, got %+v", res)
	}
}

func TestEvaluateComprehension(t *testing.T) {
	ex := &model.Exercise{
		ID:   "e1",
		Kind: model.KindReading,
		Text: "Un texto corto.",
		Questions: []model.SubQuestion{
			{ID: "q-a", Kind: model.SubQuestionMC, CorrectOption: 1},
			{Kind: model.SubQuestionTF, CorrectBool: false},
		},
	}

	res := EvaluateExercise(ex, model.AnswerMap{
		"e1::q-a": 1,
		"e1::q-2": true,
	})
	if res.Correct != 1 || res.Total != 2 || res.Passed() {
		t.Fatalf("one of two sub-questions right must be 1/2 failed, got %+v", res)
	}

	res = EvaluateExercise(ex, model.AnswerMap{
		"e1::q-a": 1,
		"e1::q-2": false,
	})
	if !res.Passed() {
		t.Fatalf("all sub-questions right should pass, got %+v", res)
	}

	// listening shares the comprehension rule
	ex.Kind = model.KindListening
	ex.AudioURL = "https://cdn/audio.mp3"
	if res := EvaluateExercise(ex, model.AnswerMap{"e1::q-a": 1, "e1::q-2": false}); !res.Passed() {
		t.Fatalf("listening should grade like reading, got %+v", res)
	}
}

func TestEvaluateReflection(t *testing.T) {
	ex := &model.Exercise{ID: "e1", Kind: model.KindReflection}

	res := EvaluateExercise(ex, model.AnswerMap{
		"e1::idea-1": "una idea",
		"e1::idea-2": "otra",
		"e1::idea-3": "   ",
	})
	if res.Total != 3 || res.Correct != 2 || res.Passed() {
		t.Fatalf("default 3 ideas, blank text does not count: got %+v", res)
	}

	ex.IdeaCount = 2
	res = EvaluateExercise(ex, model.AnswerMap{
		"e1::idea-1": "una idea",
		"e1::idea-2": "otra",
	})
	if !res.Passed() {
		t.Fatalf("authored idea count should be honored, got %+v", res)
	}
}

func TestEvaluateSentenceCorrection(t *testing.T) {
	ex := &model.Exercise{
		ID:       "e1",
		Kind:     model.KindSentenceCorrection,
		Accepted: []string{"Yo soy alto", "Soy alto"},
	}

	if res := EvaluateExercise(ex, model.AnswerMap{"e1": "soy alto "}); !res.Passed() {
		t.Fatalf("any accepted variant should pass, got %+v", res)
	}
	if res := EvaluateExercise(ex, model.AnswerMap{"e1": "Yo es alto"}); res.Passed() {
		t.Fatalf("unaccepted answer should fail, got %+v", res)
	}
}

func TestEvaluateCompletionOnlyKinds(t *testing.T) {
	for _, kind := range []model.ExerciseKind{model.KindText, model.KindSpeaking} {
		ex := &model.Exercise{ID: "e1", Kind: kind}
		res := EvaluateExercise(ex, model.AnswerMap{})
		if res.Correct != 1 || res.Total != 1 || !res.Passed() {
			t.Fatalf("%s must always grade 1/1, got %+v", kind, res)
		}
	}
}

func TestEvaluateUnknownKind(t *testing.T) {
	ex := &model.Exercise{ID: "e1", Kind: "hologram"}
	res := EvaluateExercise(ex, model.AnswerMap{"e1": "anything"})
	if res.Correct != 0 || res.Total != 1 || res.Passed() {
		t.Fatalf("unknown kind must grade 0/1 failed, got %+v", res)
	}
}

func TestEvaluatorsArePure(t *testing.T) {
	ex := &model.Exercise{
		ID:    "e1",
		Kind:  model.KindMatching,
		Pairs: []model.MatchingPair{{ID: "p1", Right: "dog"}, {ID: "p2", Right: "cat"}},
	}
	answers := model.AnswerMap{"e1::p1": "dog"}

	first := EvaluateExercise(ex, answers)
	second := EvaluateExercise(ex, answers)
	if first != second {
		t.Fatalf("same inputs graded differently: %+v vs %+v", first, second)
	}
	if len(answers) != 1 {
		t.Fatal("grading must not mutate the answer map")
	}
}

func TestLookupAnswerFullLocalKeys(t *testing.T) {
	// Answers restored from a score record carry the full local key prefix.
	ex := &model.Exercise{ID: "e1", Kind: model.KindTrueFalse, CorrectBool: true}
	answers := model.AnswerMap{"u::l::ex0::e1": true}
	if res := EvaluateExercise(ex, answers); !res.Passed() {
		t.Fatalf("prefixed local keys must resolve by suffix, got %+v", res)
	}
}
