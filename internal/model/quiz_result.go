package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizResult is the persisted outcome of one submitted attempt. The working
// attempt state itself (presentation order, answer set) is never stored.
type QuizResult struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	QuizID         uint           `json:"quiz_id" gorm:"not null;index"`
	Quiz           Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	StudentID      uint           `json:"student_id" gorm:"not null;index"`
	Score          int            `json:"score" gorm:"not null"`
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	SubmittedAt    time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
