package service

import (
	"lingua_edu_backend/internal/model"
	"testing"
)

func TestRewriteLegacyKey(t *testing.T) {
	cases := map[string]string{
		"course-closing::final":      "closing-course::final",
		"unit-1::closing-exam":       "unit-1::closing",
		"unit-1::closing-exam::ex0":  "unit-1::closing::ex0",
		"course-closing::final::ex1": "closing-course::final::ex1",
		"closing-course::final":      "closing-course::final",
		"unit-1::lesson-1-1":         "unit-1::lesson-1-1",
	}
	for in, want := range cases {
		if got := RewriteLegacyKey(in); got != want {
			t.Fatalf("RewriteLegacyKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRewriteLegacyKeyIdempotent(t *testing.T) {
	keys := []string{"course-closing::final", "unit-1::closing-exam", "unit-1::a"}
	for _, k := range keys {
		once := RewriteLegacyKey(k)
		if twice := RewriteLegacyKey(once); twice != once {
			t.Fatalf("rewrite not idempotent for %q: %q then %q", k, once, twice)
		}
	}
}

func TestNormalizeProgressState(t *testing.T) {
	state := model.ProgressState{
		"unit-1::a":             {VideoEnded: true},
		"course-closing::final": {ExSubmitted: true},
	}

	out := NormalizeProgressState(state)
	if _, exists := out["course-closing::final"]; exists {
		t.Fatal("legacy key must not survive normalization")
	}
	if rec := out["closing-course::final"]; !rec.ExSubmitted {
		t.Fatal("rewritten record lost its flags")
	}
	if rec := out["unit-1::a"]; !rec.VideoEnded {
		t.Fatal("current-format record must pass through")
	}
}

func TestNormalizeProgressStateCurrentWins(t *testing.T) {
	state := model.ProgressState{
		"course-closing::final": {ExSubmitted: true, ExPassed: false},
		"closing-course::final": {ExSubmitted: true, ExPassed: true},
	}

	out := NormalizeProgressState(state)
	if len(out) != 1 {
		t.Fatalf("expected single merged record, got %d", len(out))
	}
	if !out["closing-course::final"].ExPassed {
		t.Fatal("current-format record must win over the rewritten legacy one")
	}
}

func TestNormalizeProgressStateNil(t *testing.T) {
	out := NormalizeProgressState(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("nil state should normalize to an empty map, got %v", out)
	}
}

func TestComputeStats(t *testing.T) {
	state := model.ProgressState{
		"u::a":           {VideoEnded: true},
		"u::b":           {ExSubmitted: true},
		"u::c":           {},
		"u::a::ex0":      {ExSubmitted: true, ExPassed: true},
		"u::closing":     {VideoEnded: true, ExSubmitted: true},
		"u::closing::ex": {ExSubmitted: true},
	}

	stats := ComputeStats(state, 4)
	if stats.CompletedCount != 3 {
		t.Fatalf("exercise keys must not count as lessons, got %d completed", stats.CompletedCount)
	}
	if stats.Percentage != 75 {
		t.Fatalf("expected 75%%, got %d", stats.Percentage)
	}
}

func TestComputeStatsEmptyCourse(t *testing.T) {
	stats := ComputeStats(model.ProgressState{}, 0)
	if stats.Percentage != 0 || stats.CompletedCount != 0 {
		t.Fatalf("empty course must report zero, got %+v", stats)
	}
}

func TestComputeStatsClamped(t *testing.T) {
	// Stale records for lessons removed from the course can push the raw count
	// over the total; the percentage still clamps to 100.
	state := model.ProgressState{
		"u::a": {VideoEnded: true},
		"u::b": {VideoEnded: true},
		"u::c": {VideoEnded: true},
	}
	stats := ComputeStats(state, 2)
	if stats.Percentage != 100 {
		t.Fatalf("percentage must clamp to 100, got %d", stats.Percentage)
	}
}

func TestComputeStatsRounding(t *testing.T) {
	state := model.ProgressState{"u::a": {VideoEnded: true}}
	stats := ComputeStats(state, 3)
	if stats.Percentage != 33 {
		t.Fatalf("expected 33, got %d", stats.Percentage)
	}

	state["u::b"] = model.ProgressRecord{ExSubmitted: true}
	stats = ComputeStats(state, 3)
	if stats.Percentage != 67 {
		t.Fatalf("expected rounded 67, got %d", stats.Percentage)
	}
}
