package service

import "testing"

func TestLessonKey(t *testing.T) {
	got := LessonKey("unit-1", "lesson-1-2")
	if got != "unit-1::lesson-1-2" {
		t.Fatalf("unexpected lesson key: %s", got)
	}
}

func TestExerciseKey(t *testing.T) {
	got := ExerciseKey("unit-1::lesson-1-2", 0)
	if got != "unit-1::lesson-1-2::ex0" {
		t.Fatalf("unexpected exercise key: %s", got)
	}
}

func TestLocalAnswerKey(t *testing.T) {
	exKey := "unit-1::lesson-1-2::ex0"

	got := LocalAnswerKey(exKey, "item-1", "")
	if got != "unit-1::lesson-1-2::ex0::item-1" {
		t.Fatalf("unexpected local key: %s", got)
	}

	got = LocalAnswerKey(exKey, "item-1", "blank-2")
	if got != "unit-1::lesson-1-2::ex0::item-1::blank-2" {
		t.Fatalf("unexpected local key with sub item: %s", got)
	}
}

func TestLessonKeyOf(t *testing.T) {
	if got := LessonKeyOf("unit-1::intro::ex3"); got != "unit-1::intro" {
		t.Fatalf("expected lesson key, got %s", got)
	}
	if got := LessonKeyOf("unit-1::intro"); got != "unit-1::intro" {
		t.Fatalf("lesson key should pass through, got %s", got)
	}
}

func TestIsExerciseKey(t *testing.T) {
	if !IsExerciseKey("unit-1::intro::ex0") {
		t.Fatal("exercise key not recognized")
	}
	if IsExerciseKey("unit-1::intro") {
		t.Fatal("lesson key misclassified as exercise key")
	}
}
