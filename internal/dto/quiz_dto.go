package dto

import "time"

// QuizCreateDTO is the teacher request for attaching a quiz to a material.
type QuizCreateDTO struct {
	Title string `json:"title" binding:"required"`
}

type QuizResponseDTO struct {
	ID         uint      `json:"id"`
	MaterialID uint      `json:"material_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionCreateDTO carries one authored question. CorrectAnswer is one of the
// four option labels.
type QuestionCreateDTO struct {
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
}

// BulkQuestionsCreateDTO mirrors the bulk authoring form: one request, many
// questions, all-or-nothing.
type BulkQuestionsCreateDTO struct {
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// QuestionResponseDTO is the student-facing view of a question. CorrectAnswer
// is only populated for teachers; students never see it before submission.
type QuestionResponseDTO struct {
	ID            uint   `json:"id"`
	QuizID        uint   `json:"quiz_id"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}
