package service

import "errors"

var (
	// ErrNoQuiz marks the defined "no quiz for this material" state, not a failure.
	ErrNoQuiz = errors.New("no quiz available for this material")
	// ErrQuizExists is returned when a second quiz is authored for a material.
	ErrQuizExists = errors.New("material already has a quiz")
	// ErrQuizNotFound indicates the referenced quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates the referenced question does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAttemptNotFound indicates an unknown attempt id, or one owned by another student.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAlreadySubmitted guards the frozen post-submission state: no further
	// selections and no second submit until a reattempt resets the attempt.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	// ErrNotSubmitted is returned when review is requested before a result exists.
	ErrNotSubmitted = errors.New("attempt not submitted yet")
	// ErrNoQuestions prevents submitting a quiz with an empty question set.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrInvalidOption rejects selection labels outside A-D.
	ErrInvalidOption = errors.New("invalid option label")
	// ErrQuestionNotInQuiz rejects selections for questions outside the attempt's snapshot.
	ErrQuestionNotInQuiz = errors.New("question does not belong to this quiz")
)
