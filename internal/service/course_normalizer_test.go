package service

import (
	"lingua_edu_backend/internal/model"
	"reflect"
	"testing"
)

func sampleDocument() *model.CourseDocument {
	return &model.CourseDocument{
		Title: "Spanish A1",
		Units: []model.UnitDoc{
			{
				Title:         "Greetings",
				Description:   "Say hello",
				IntroVideoURL: "https://cdn/intro.mp4",
				Lessons: []model.LessonDoc{
					{Title: "Hola", VideoURL: "https://cdn/hola.mp4"},
					{Title: "Adios"},
				},
				Closing: &model.UnitClosing{ExamIntro: "Unit exam"},
			},
			{
				ID:      "numbers",
				Title:   "Numbers",
				Lessons: []model.LessonDoc{{ID: "counting", Title: "Counting"}},
			},
		},
		Closing: &model.CourseClosing{Message: "Well done"},
	}
}

func TestNormalizeCourseSynthesis(t *testing.T) {
	units := NormalizeCourse(sampleDocument())

	if len(units) != 3 {
		t.Fatalf("expected 2 authored units plus closing-course, got %d", len(units))
	}

	first := units[0]
	if first.ID != "unit-1" {
		t.Fatalf("expected default unit id, got %s", first.ID)
	}
	if len(first.Lessons) != 4 {
		t.Fatalf("expected intro + 2 lessons + closing, got %d", len(first.Lessons))
	}
	if first.Lessons[0].ID != model.LessonIDIntro {
		t.Fatalf("expected synthetic intro first, got %s", first.Lessons[0].ID)
	}
	if first.Lessons[0].VideoURL != "https://cdn/intro.mp4" {
		t.Fatalf("intro lesson should carry the unit intro video")
	}
	if first.Lessons[1].ID != "lesson-1-1" || first.Lessons[2].ID != "lesson-1-2" {
		t.Fatalf("expected default lesson ids, got %s and %s", first.Lessons[1].ID, first.Lessons[2].ID)
	}
	if last := first.Lessons[3]; last.ID != model.LessonIDClosing || last.Description != "Unit exam" {
		t.Fatalf("expected synthetic closing lesson, got %+v", last)
	}

	second := units[1]
	if second.ID != "numbers" {
		t.Fatalf("authored unit id should win, got %s", second.ID)
	}
	if len(second.Lessons) != 1 {
		t.Fatalf("no intro or closing without content, got %d lessons", len(second.Lessons))
	}
	if second.Lessons[0].Key != "numbers::counting" {
		t.Fatalf("unexpected lesson key: %s", second.Lessons[0].Key)
	}

	closing := units[2]
	if closing.ID != model.UnitIDClosingCourse {
		t.Fatalf("expected closing-course unit, got %s", closing.ID)
	}
	if len(closing.Lessons) != 1 || closing.Lessons[0].ID != model.LessonIDFinal {
		t.Fatalf("expected single final lesson, got %+v", closing.Lessons)
	}
	if closing.Lessons[0].Key != "closing-course::final" {
		t.Fatalf("unexpected final lesson key: %s", closing.Lessons[0].Key)
	}
}

func TestNormalizeCourseNoPhantomLessons(t *testing.T) {
	doc := &model.CourseDocument{
		Units: []model.UnitDoc{
			{
				Title:   "Plain",
				Lessons: []model.LessonDoc{{ID: "a", Title: "A"}},
				Closing: &model.UnitClosing{},
			},
		},
		Closing: &model.CourseClosing{},
	}

	units := NormalizeCourse(doc)
	if len(units) != 1 {
		t.Fatalf("empty course closing must not synthesize a unit, got %d units", len(units))
	}
	if len(units[0].Lessons) != 1 {
		t.Fatalf("empty closing block must not synthesize a lesson, got %d", len(units[0].Lessons))
	}
}

func TestNormalizeCourseDeterministic(t *testing.T) {
	doc := sampleDocument()
	a := NormalizeCourse(doc)
	b := NormalizeCourse(doc)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("normalization of the same document differed between runs")
	}
}

func TestNormalizeCourseDedupesReusedIDs(t *testing.T) {
	doc := &model.CourseDocument{
		Units: []model.UnitDoc{
			{
				ID: "u",
				Lessons: []model.LessonDoc{
					{ID: "dup"},
					{ID: "dup"},
					{ID: "dup"},
				},
			},
		},
	}

	units := NormalizeCourse(doc)
	keys := []string{
		units[0].Lessons[0].Key,
		units[0].Lessons[1].Key,
		units[0].Lessons[2].Key,
	}
	want := []string{"u::dup", "u::dup-2", "u::dup-3"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("positional dedupe failed: got %v, want %v", keys, want)
	}

	// Dedupe must be stable: same input, same disambiguation.
	again := NormalizeCourse(doc)
	if again[0].Lessons[1].Key != "u::dup-2" {
		t.Fatalf("dedupe unstable: got %s", again[0].Lessons[1].Key)
	}
}

func TestNormalizeCourseNilDocument(t *testing.T) {
	if units := NormalizeCourse(nil); units != nil {
		t.Fatalf("nil document should normalize to nil, got %v", units)
	}
}

func TestFindExercise(t *testing.T) {
	doc := &model.CourseDocument{
		Units: []model.UnitDoc{
			{
				ID: "u",
				Lessons: []model.LessonDoc{
					{
						ID: "l",
						Exercises: []model.Exercise{
							{ID: "e1", Kind: model.KindTrueFalse},
							{ID: "e2", Kind: model.KindText},
						},
					},
				},
			},
		},
	}
	units := NormalizeCourse(doc)

	ex, ok := FindExercise(units, "u::l", 1)
	if !ok || ex.ID != "e2" {
		t.Fatalf("expected e2, got %v %v", ex, ok)
	}

	if _, ok := FindExercise(units, "u::l", 2); ok {
		t.Fatal("out-of-range index must not resolve")
	}
	if _, ok := FindExercise(units, "u::missing", 0); ok {
		t.Fatal("unknown lesson must not resolve")
	}
}
