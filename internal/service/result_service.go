package service

import (
	"fmt"

	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/model"
	"lms-quiz-service/internal/repository"

	"github.com/rs/zerolog/log"
)

// ResultService serves the results history screens: a student's own
// submissions and the teacher's overview of all of them.
type ResultService interface {
	ResultsForStudent(studentID uint) ([]dto.QuizResultDTO, error)
	AllResults() ([]dto.QuizResultDTO, error)
}

type resultService struct {
	resultRepo repository.QuizResultRepository
	scoreBands ScoreBandService
}

func NewResultService(resultRepo repository.QuizResultRepository, scoreBands ScoreBandService) ResultService {
	return &resultService{resultRepo: resultRepo, scoreBands: scoreBands}
}

func (s *resultService) ResultsForStudent(studentID uint) ([]dto.QuizResultDTO, error) {
	results, err := s.resultRepo.FindByStudentID(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("failed to fetch results for student")
		return nil, fmt.Errorf("error fetching results for student %d: %w", studentID, err)
	}
	return s.resultDTOs(results), nil
}

func (s *resultService) AllResults() ([]dto.QuizResultDTO, error) {
	results, err := s.resultRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch results overview")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}
	return s.resultDTOs(results), nil
}

func (s *resultService) resultDTOs(results []model.QuizResult) []dto.QuizResultDTO {
	dtos := make([]dto.QuizResultDTO, 0, len(results))
	for _, r := range results {
		pct := s.scoreBands.Percentage(r.Score, r.TotalQuestions)
		dtos = append(dtos, dto.QuizResultDTO{
			ID:             r.ID,
			QuizID:         r.QuizID,
			QuizTitle:      r.Quiz.Title,
			StudentID:      r.StudentID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     pct,
			Band:           s.scoreBands.BandFor(pct),
			SubmittedAt:    r.SubmittedAt,
		})
	}
	return dtos
}
