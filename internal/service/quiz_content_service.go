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

// QuizContentService owns the quiz/question content collaborators: the read
// contracts the attempt engine and the frontend consume, and the teacher
// authoring operations.
type QuizContentService interface {
	QuizzesForMaterial(materialID uint) ([]dto.QuizResponseDTO, error)
	// QuestionsForQuiz hides the correct labels unless includeAnswers is set
	// (teacher view); students must not see them before submission.
	QuestionsForQuiz(quizID uint, includeAnswers bool) ([]dto.QuestionResponseDTO, error)

	CreateQuiz(materialID uint, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	DeleteQuiz(quizID uint) error
	AddQuestion(quizID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	AddQuestionsBulk(quizID uint, req dto.BulkQuestionsCreateDTO) ([]dto.QuestionResponseDTO, error)
	DeleteQuestion(questionID uint) error
}

type quizContentService struct {
	materialRepo repository.MaterialRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

func NewQuizContentService(
	materialRepo repository.MaterialRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
) QuizContentService {
	return &quizContentService{
		materialRepo: materialRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
	}
}

func (s *quizContentService) QuizzesForMaterial(materialID uint) ([]dto.QuizResponseDTO, error) {
	quizzes, err := s.quizRepo.FindByMaterialID(materialID)
	if err != nil {
		log.Error().Err(err).Uint("materialID", materialID).Msg("failed to list quizzes for material")
		return nil, fmt.Errorf("error fetching quizzes for material %d: %w", materialID, err)
	}

	dtos := make([]dto.QuizResponseDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		var resp dto.QuizResponseDTO
		if err := copier.Copy(&resp, &quiz); err != nil {
			return nil, fmt.Errorf("error preparing quiz response: %w", err)
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}

func (s *quizContentService) QuestionsForQuiz(quizID uint, includeAnswers bool) ([]dto.QuestionResponseDTO, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("error fetching quiz %d: %w", quizID, err)
	}

	questions, err := s.questionRepo.FindByQuizID(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("failed to list questions for quiz")
		return nil, fmt.Errorf("error fetching questions for quiz %d: %w", quizID, err)
	}

	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for _, q := range questions {
		var resp dto.QuestionResponseDTO
		if err := copier.Copy(&resp, &q); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		if !includeAnswers {
			resp.CorrectAnswer = ""
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}

// CreateQuiz attaches a quiz to a material. The one-quiz-per-material contract
// is enforced here at the source rather than patched over at read time.
func (s *quizContentService) CreateQuiz(materialID uint, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	if _, err := s.materialRepo.FindByID(materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("material not found with ID %d: %w", materialID, err)
		}
		return nil, fmt.Errorf("error fetching material %d: %w", materialID, err)
	}

	count, err := s.quizRepo.CountByMaterialID(materialID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing quizzes for material %d: %w", materialID, err)
	}
	if count > 0 {
		return nil, ErrQuizExists
	}

	quiz := model.Quiz{
		MaterialID: materialID,
		Title:      req.Title,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Uint("materialID", materialID).Msg("failed to create quiz")
		return nil, fmt.Errorf("database error creating quiz: %w", err)
	}

	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, &quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	return &resp, nil
}

func (s *quizContentService) DeleteQuiz(quizID uint) error {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("error fetching quiz %d: %w", quizID, err)
	}
	if err := s.quizRepo.Delete(quizID); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("failed to delete quiz")
		return fmt.Errorf("database error deleting quiz %d: %w", quizID, err)
	}
	return nil
}

func (s *quizContentService) AddQuestion(quizID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("error fetching quiz %d: %w", quizID, err)
	}

	question := questionFromCreateDTO(quizID, req)
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	var resp dto.QuestionResponseDTO
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

func (s *quizContentService) AddQuestionsBulk(quizID uint, req dto.BulkQuestionsCreateDTO) ([]dto.QuestionResponseDTO, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("error fetching quiz %d: %w", quizID, err)
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for _, qDto := range req.Questions {
		questions = append(questions, questionFromCreateDTO(quizID, qDto))
	}
	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Int("count", len(questions)).Msg("failed to bulk create questions")
		return nil, fmt.Errorf("database error creating questions: %w", err)
	}

	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for _, q := range questions {
		var resp dto.QuestionResponseDTO
		if err := copier.Copy(&resp, &q); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}

func (s *quizContentService) DeleteQuestion(questionID uint) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("error fetching question %d: %w", questionID, err)
	}
	if err := s.questionRepo.Delete(questionID); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("failed to delete question")
		return fmt.Errorf("database error deleting question %d: %w", questionID, err)
	}
	return nil
}

func questionFromCreateDTO(quizID uint, req dto.QuestionCreateDTO) model.Question {
	return model.Question{
		QuizID:        quizID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
	}
}
