package service

import (
	"errors"
	"fmt"

	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/model"
	"lms-quiz-service/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrMaterialNotFound indicates the referenced material does not exist.
var ErrMaterialNotFound = errors.New("material not found")

// MaterialService is the course-content collaborator: the materials quizzes
// attach to. Courses themselves live in an external system; only their ids
// are carried here.
type MaterialService interface {
	ListAll() ([]dto.MaterialResponseDTO, error)
	ListByCourse(courseID uint) ([]dto.MaterialResponseDTO, error)
	Create(courseID uint, req dto.MaterialCreateDTO) (*dto.MaterialResponseDTO, error)
	Delete(materialID uint) error
}

type materialService struct {
	materialRepo repository.MaterialRepository
}

func NewMaterialService(materialRepo repository.MaterialRepository) MaterialService {
	return &materialService{materialRepo: materialRepo}
}

func (s *materialService) ListAll() ([]dto.MaterialResponseDTO, error) {
	materials, err := s.materialRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to list materials")
		return nil, fmt.Errorf("error fetching materials: %w", err)
	}
	return materialDTOs(materials)
}

func (s *materialService) ListByCourse(courseID uint) ([]dto.MaterialResponseDTO, error) {
	materials, err := s.materialRepo.FindByCourseID(courseID)
	if err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("failed to list materials for course")
		return nil, fmt.Errorf("error fetching materials for course %d: %w", courseID, err)
	}
	return materialDTOs(materials)
}

func (s *materialService) Create(courseID uint, req dto.MaterialCreateDTO) (*dto.MaterialResponseDTO, error) {
	material := model.Material{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
	}
	if err := s.materialRepo.Create(&material); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("failed to create material")
		return nil, fmt.Errorf("database error creating material: %w", err)
	}

	var resp dto.MaterialResponseDTO
	if err := copier.Copy(&resp, &material); err != nil {
		return nil, fmt.Errorf("error preparing material response: %w", err)
	}
	return &resp, nil
}

func (s *materialService) Delete(materialID uint) error {
	if _, err := s.materialRepo.FindByID(materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("error fetching material %d: %w", materialID, err)
	}
	if err := s.materialRepo.Delete(materialID); err != nil {
		log.Error().Err(err).Uint("materialID", materialID).Msg("failed to delete material")
		return fmt.Errorf("database error deleting material %d: %w", materialID, err)
	}
	return nil
}

func materialDTOs(materials []model.Material) ([]dto.MaterialResponseDTO, error) {
	dtos := make([]dto.MaterialResponseDTO, 0, len(materials))
	for _, material := range materials {
		var resp dto.MaterialResponseDTO
		if err := copier.Copy(&resp, &material); err != nil {
			return nil, fmt.Errorf("error preparing material response: %w", err)
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}
