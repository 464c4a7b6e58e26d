package repository

import (
	"lms-quiz-service/internal/model"

	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	// FindByMaterialID returns quizzes ordered by id; the material contract
	// expects at most one, but the loader handles surplus rows itself.
	FindByMaterialID(materialID uint) ([]model.Quiz, error)
	CountByMaterialID(materialID uint) (int64, error)
	Delete(id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByMaterialID(materialID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.Where("material_id = ?", materialID).Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) CountByMaterialID(materialID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Quiz{}).Where("material_id = ?", materialID).Count(&count).Error
	return count, err
}

func (r *quizRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}
