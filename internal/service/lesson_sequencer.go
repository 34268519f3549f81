package service

import "lingua_edu_backend/internal/model"

// LessonSequence is the flattened course order for next/previous navigation.
// Pure index arithmetic over the normalized units, no I/O.
type LessonSequence struct {
	entries []model.SequenceEntry
	byKey   map[string]int
}

// BuildSequence flattens normalized units into a single ordered sequence.
func BuildSequence(units []model.NormalizedUnit) *LessonSequence {
	seq := &LessonSequence{byKey: make(map[string]int)}
	for ui := range units {
		for li := range units[ui].Lessons {
			seq.byKey[units[ui].Lessons[li].Key] = len(seq.entries)
			seq.entries = append(seq.entries, model.SequenceEntry{
				UnitIndex:   ui,
				LessonIndex: li,
				Key:         units[ui].Lessons[li].Key,
			})
		}
	}
	return seq
}

// Entries returns the flat ordered lesson positions.
func (s *LessonSequence) Entries() []model.SequenceEntry {
	return s.entries
}

// Len returns the total lesson count.
func (s *LessonSequence) Len() int {
	return len(s.entries)
}

// IndexOf maps (unitIndex, lessonIndex) to the flat position, or -1.
func (s *LessonSequence) IndexOf(unitIndex, lessonIndex int) int {
	for i, e := range s.entries {
		if e.UnitIndex == unitIndex && e.LessonIndex == lessonIndex {
			return i
		}
	}
	return -1
}

// PositionOf maps a lesson key to its flat position, or -1.
func (s *LessonSequence) PositionOf(key string) int {
	if pos, ok := s.byKey[key]; ok {
		return pos
	}
	return -1
}

// Next returns the entry after flatPosition. ok is false at the end of the
// course (course complete) or for an out-of-range position.
func (s *LessonSequence) Next(flatPosition int) (model.SequenceEntry, bool) {
	next := flatPosition + 1
	if flatPosition < 0 || next >= len(s.entries) {
		return model.SequenceEntry{}, false
	}
	return s.entries[next], true
}

// Previous returns the entry before flatPosition, the symmetric inverse of Next.
func (s *LessonSequence) Previous(flatPosition int) (model.SequenceEntry, bool) {
	prev := flatPosition - 1
	if prev < 0 || flatPosition >= len(s.entries) {
		return model.SequenceEntry{}, false
	}
	return s.entries[prev], true
}
