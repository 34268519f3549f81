package service

import (
	"lingua_edu_backend/internal/model"
	"testing"
)

func sequenceFixture() *LessonSequence {
	units := []model.NormalizedUnit{
		{ID: "u1", Lessons: []model.NormalizedLesson{
			{Key: "u1::intro"},
			{Key: "u1::a"},
		}},
		{ID: "u2", Lessons: []model.NormalizedLesson{
			{Key: "u2::b"},
		}},
	}
	return BuildSequence(units)
}

func TestBuildSequenceOrder(t *testing.T) {
	seq := sequenceFixture()

	if seq.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", seq.Len())
	}

	keys := []string{"u1::intro", "u1::a", "u2::b"}
	for i, e := range seq.Entries() {
		if e.Key != keys[i] {
			t.Fatalf("entry %d: got %s, want %s", i, e.Key, keys[i])
		}
	}

	if e := seq.Entries()[2]; e.UnitIndex != 1 || e.LessonIndex != 0 {
		t.Fatalf("unexpected indices for last entry: %+v", e)
	}
}

func TestSequenceNavigation(t *testing.T) {
	seq := sequenceFixture()

	pos := seq.PositionOf("u1::a")
	if pos != 1 {
		t.Fatalf("expected position 1, got %d", pos)
	}

	next, ok := seq.Next(pos)
	if !ok || next.Key != "u2::b" {
		t.Fatalf("next across unit boundary failed: %+v %v", next, ok)
	}

	prev, ok := seq.Previous(pos)
	if !ok || prev.Key != "u1::intro" {
		t.Fatalf("previous failed: %+v %v", prev, ok)
	}

	if _, ok := seq.Next(seq.Len() - 1); ok {
		t.Fatal("next past the last lesson must report course end")
	}
	if _, ok := seq.Previous(0); ok {
		t.Fatal("previous before the first lesson must fail")
	}
	if _, ok := seq.Next(-1); ok {
		t.Fatal("next from an unknown position must fail")
	}
}

func TestSequenceInverse(t *testing.T) {
	seq := sequenceFixture()
	for pos := 0; pos < seq.Len(); pos++ {
		if next, ok := seq.Next(pos); ok {
			back, ok := seq.Previous(seq.PositionOf(next.Key))
			if !ok || back.Key != seq.Entries()[pos].Key {
				t.Fatalf("previous(next(%d)) != identity", pos)
			}
		}
	}
}

func TestPositionOfUnknownKey(t *testing.T) {
	if pos := sequenceFixture().PositionOf("nope"); pos != -1 {
		t.Fatalf("expected -1 for unknown key, got %d", pos)
	}
}
