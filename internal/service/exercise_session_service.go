package service

import (
	"context"
	"fmt"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"
	"lingua_edu_backend/pkg/monitoring"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session states. A session is created Restoring, immediately resolves to
// Unanswered or a terminal state, and a terminal state is final: submission
// is a one-attempt policy.
const (
	SessionUnanswered = "unanswered"
	SessionPassed     = "passed"
	SessionFailed     = "failed"
)

// ExerciseSession is one learner's attempt at one exercise. Answers live in
// memory until submission; the token identifies the attempt so a write from a
// superseded session can be recognized and discarded.
type ExerciseSession struct {
	Token         string          `json:"token"`
	UserID        uint            `json:"-"`
	CourseID      string          `json:"courseId"`
	LessonKey     string          `json:"lessonKey"`
	ExerciseIndex int             `json:"exerciseIndex"`
	ExerciseKey   string          `json:"exerciseKey"`
	State         string          `json:"state"`
	Result        *EvalResult     `json:"result,omitempty"`
	Answers       model.AnswerMap `json:"answers"`

	exercise  model.Exercise
	createdAt time.Time
}

// ExerciseSessionService coordinates exercise attempts: restore on open,
// in-memory answer collection, grading on submit, and the progress write.
// Course loading and progress loading are independent; a session only exists
// once the exercise definition is actually available, so grading never runs
// against a not-yet-loaded definition.
type ExerciseSessionService struct {
	Courses  outlineProvider
	Progress *ProgressService
	TTL      time.Duration

	mu      sync.Mutex
	byToken map[string]*ExerciseSession
	current map[string]string // attempt scope -> live token
}

// outlineProvider is the slice of CourseService the session controller needs.
type outlineProvider interface {
	Outline(ctx context.Context, courseID string) (*CourseOutline, error)
}

func NewExerciseSessionService(courses outlineProvider, progress *ProgressService, ttl time.Duration) *ExerciseSessionService {
	return &ExerciseSessionService{
		Courses:  courses,
		Progress: progress,
		TTL:      ttl,
		byToken:  make(map[string]*ExerciseSession),
		current:  make(map[string]string),
	}
}

func attemptScope(userID uint, courseID, exerciseKey string) string {
	return fmt.Sprintf("%d:%s:%s", userID, courseID, exerciseKey)
}

// Open starts (or restores) a session for one exercise. An existing progress
// record puts the session straight into its terminal state with the persisted
// answers reconstructed; otherwise the session is Unanswered. Opening
// supersedes any previous session for the same exercise: the old token stays
// known but its writes will be discarded.
func (s *ExerciseSessionService) Open(ctx context.Context, userID uint, courseID, lessonKey string, exerciseIndex int) (*ExerciseSession, error) {
	outline, err := s.Courses.Outline(ctx, courseID)
	if err != nil {
		return nil, err
	}
	ex, ok := FindExercise(outline.Units, lessonKey, exerciseIndex)
	if !ok {
		return nil, util.ErrExerciseNotFound
	}

	exCopy := *ex
	if exCopy.ID == "" {
		exCopy.ID = "item-" + strconv.Itoa(exerciseIndex+1)
	}

	exerciseKey := ExerciseKey(lessonKey, exerciseIndex)

	state, err := s.Progress.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	session := &ExerciseSession{
		Token:         uuid.New().String(),
		UserID:        userID,
		CourseID:      courseID,
		LessonKey:     lessonKey,
		ExerciseIndex: exerciseIndex,
		ExerciseKey:   exerciseKey,
		State:         SessionUnanswered,
		Answers:       model.AnswerMap{},
		exercise:      exCopy,
		createdAt:     time.Now(),
	}

	if rec, ok := state[exerciseKey]; ok && rec.ExSubmitted {
		session.State = SessionFailed
		if rec.ExPassed {
			session.State = SessionPassed
		}
		if rec.Score != nil {
			session.Result = &EvalResult{Correct: rec.Score.Correct, Total: rec.Score.Total}
			session.Answers = rec.Score.Answers.Clone()
		}
	}

	s.mu.Lock()
	s.byToken[session.Token] = session
	s.current[attemptScope(userID, courseID, exerciseKey)] = session.Token
	s.mu.Unlock()

	return session, nil
}

// SaveAnswer records one answer value in the session's in-memory map. Nothing
// is persisted here. Superseded sessions are rejected, terminal sessions
// refuse further input.
func (s *ExerciseSessionService) SaveAnswer(token, subItemID string, value interface{}) (*ExerciseSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.liveSession(token)
	if err != nil {
		return nil, err
	}
	if session.State != SessionUnanswered {
		return nil, util.ErrAlreadySubmitted
	}

	localKey := LocalAnswerKey(session.ExerciseKey, session.exercise.ID, subItemID)
	session.Answers[localKey] = value
	return session, nil
}

// Submit grades the collected answers and commits one progress record. The
// exercise record and the lesson-level exSubmitted flag are written in a
// single merge. A store failure, on the pre-submit load or on the merge,
// leaves the session Unanswered with its answers intact so the learner can
// retry; a stale token is discarded.
func (s *ExerciseSessionService) Submit(ctx context.Context, token string) (*ExerciseSession, error) {
	s.mu.Lock()
	session, err := s.liveSession(token)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.State != SessionUnanswered {
		s.mu.Unlock()
		return nil, util.ErrAlreadySubmitted
	}
	answers := session.Answers.Clone()
	exercise := session.exercise
	s.mu.Unlock()

	// Double-check the store: a record written by another device still blocks
	// resubmission even if this session never saw it. Without the snapshot the
	// lesson record below would be built from nothing and the merge would
	// erase flags already earned, so a failed load aborts the submit.
	state, err := s.Progress.Load(ctx, session.UserID, session.CourseID)
	if err != nil {
		logger.Log.Warn("progress load before submit failed, keeping session for retry", zap.Error(err))
		return nil, util.ErrProgressUnavailable
	}
	if rec, ok := state[session.ExerciseKey]; ok && rec.ExSubmitted {
		s.markTerminal(session, rec)
		return nil, util.ErrAlreadySubmitted
	}

	result := EvaluateExercise(&exercise, answers)
	passed := result.Passed()

	lessonRec := state[session.LessonKey]
	lessonRec.ExSubmitted = true

	partial := model.ProgressState{
		session.ExerciseKey: {
			ExSubmitted: true,
			ExPassed:    passed,
			Score: &model.ScoreRecord{
				Correct: result.Correct,
				Total:   result.Total,
				Answers: answers,
			},
		},
		session.LessonKey: lessonRec,
	}

	if err := s.Progress.Merge(ctx, session.UserID, session.CourseID, partial); err != nil {
		logger.Log.Error("progress merge failed, keeping session for retry", zap.Error(err))
		return nil, util.ErrProgressUnavailable
	}

	s.mu.Lock()
	session.State = SessionFailed
	if passed {
		session.State = SessionPassed
	}
	session.Result = &result
	s.mu.Unlock()

	monitoring.ObserveSubmission(string(exercise.Kind), passed)
	return session, nil
}

// Get returns a session by token, superseded or not.
func (s *ExerciseSessionService) Get(token string) (*ExerciseSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byToken[token]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// liveSession resolves a token and rejects it if a newer session for the same
// exercise has been opened. Callers hold s.mu.
func (s *ExerciseSessionService) liveSession(token string) (*ExerciseSession, error) {
	session, ok := s.byToken[token]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	scope := attemptScope(session.UserID, session.CourseID, session.ExerciseKey)
	if s.current[scope] != token {
		return nil, util.ErrSessionSuperseded
	}
	return session, nil
}

func (s *ExerciseSessionService) markTerminal(session *ExerciseSession, rec model.ProgressRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.State = SessionFailed
	if rec.ExPassed {
		session.State = SessionPassed
	}
	if rec.Score != nil {
		session.Result = &EvalResult{Correct: rec.Score.Correct, Total: rec.Score.Total}
		session.Answers = rec.Score.Answers.Clone()
	}
}

// CleanupExpired drops sessions past their TTL. Run periodically.
func (s *ExerciseSessionService) CleanupExpired() {
	cutoff := time.Now().Add(-s.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.byToken {
		if session.createdAt.Before(cutoff) {
			delete(s.byToken, token)
			scope := attemptScope(session.UserID, session.CourseID, session.ExerciseKey)
			if s.current[scope] == token {
				delete(s.current, scope)
			}
		}
	}
}
