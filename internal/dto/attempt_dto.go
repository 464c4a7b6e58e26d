package dto

import "time"

// SelectAnswerDTO records the student's current choice for one question.
type SelectAnswerDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Option     string `json:"option" binding:"required,oneof=A B C D"`
}

// AttemptQuestionDTO is a question as presented within an attempt, in
// presentation order. SelectedOption is empty while unanswered.
type AttemptQuestionDTO struct {
	QuestionID     uint   `json:"question_id"`
	Text           string `json:"text"`
	OptionA        string `json:"option_a"`
	OptionB        string `json:"option_b"`
	OptionC        string `json:"option_c"`
	OptionD        string `json:"option_d"`
	SelectedOption string `json:"selected_option,omitempty"`
}

// SubmissionResultDTO is the score for one submitted attempt.
type SubmissionResultDTO struct {
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	Band           string    `json:"band"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// AttemptStateDTO is the full working state of one attempt: the shuffled
// question sequence, the current selections and the result once submitted.
type AttemptStateDTO struct {
	AttemptID  string               `json:"attempt_id"`
	QuizID     uint                 `json:"quiz_id"`
	QuizTitle  string               `json:"quiz_title"`
	MaterialID uint                 `json:"material_id"`
	Questions  []AttemptQuestionDTO `json:"questions"`
	Result     *SubmissionResultDTO `json:"result,omitempty"`
}

// ReviewOptionDTO classifies a single option after submission.
type ReviewOptionDTO struct {
	Option  string `json:"option"`
	Text    string `json:"text"`
	Verdict string `json:"verdict"`
}

// ReviewQuestionDTO reveals correctness for one question in the review state.
type ReviewQuestionDTO struct {
	QuestionID     uint              `json:"question_id"`
	Text           string            `json:"text"`
	SelectedOption string            `json:"selected_option,omitempty"`
	CorrectOption  string            `json:"correct_option"`
	Options        []ReviewOptionDTO `json:"options"`
}

// AttemptReviewDTO is the read-only post-submission view, in presentation order.
type AttemptReviewDTO struct {
	AttemptID string              `json:"attempt_id"`
	QuizID    uint                `json:"quiz_id"`
	QuizTitle string              `json:"quiz_title"`
	Result    SubmissionResultDTO `json:"result"`
	Questions []ReviewQuestionDTO `json:"questions"`
}

// QuizResultDTO is one row of the results history.
type QuizResultDTO struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title,omitempty"`
	StudentID      uint      `json:"student_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	Band           string    `json:"band"`
	SubmittedAt    time.Time `json:"submitted_at"`
}
