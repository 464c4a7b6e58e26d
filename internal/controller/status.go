package controller

import (
	"errors"
	"net/http"

	"lms-quiz-service/internal/service"
)

// StatusForError maps service sentinel errors onto HTTP status codes. Unknown
// errors are internal.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrNoQuiz),
		errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrMaterialNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrNotSubmitted),
		errors.Is(err, service.ErrQuizExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidOption),
		errors.Is(err, service.ErrQuestionNotInQuiz),
		errors.Is(err, service.ErrNoQuestions):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
