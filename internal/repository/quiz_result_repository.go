package repository

import (
	"lms-quiz-service/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository interface {
	Create(result *model.QuizResult) error
	FindByStudentID(studentID uint) ([]model.QuizResult, error)
	FindAll() ([]model.QuizResult, error)
}

type quizResultRepository struct {
	db *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) Create(result *model.QuizResult) error {
	return r.db.Create(result).Error
}

func (r *quizResultRepository) FindByStudentID(studentID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.db.Preload("Quiz").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

func (r *quizResultRepository) FindAll() ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.db.Preload("Quiz").Order("submitted_at DESC").Find(&results).Error
	return results, err
}
