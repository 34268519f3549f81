package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrSessionNotFound     = errors.New("exercise session not found or expired")
	ErrSessionSuperseded   = errors.New("exercise session superseded")
	ErrAlreadySubmitted    = errors.New("exercise already submitted")
	ErrProgressUnavailable = errors.New("progress store unavailable, please retry")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
)
