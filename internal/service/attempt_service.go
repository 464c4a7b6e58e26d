package service

import (
	"fmt"
	"math/rand"
	"time"

	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/model"
	"lms-quiz-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AttemptService is the quiz-taking engine: it resolves the quiz attached to a
// material, shuffles its questions into a presentation order, tracks the
// student's selections, grades the submission and serves the review state.
type AttemptService interface {
	Start(materialID, studentID uint) (*dto.AttemptStateDTO, error)
	State(attemptID string, studentID uint) (*dto.AttemptStateDTO, error)
	Select(attemptID string, studentID uint, req dto.SelectAnswerDTO) (*dto.AttemptStateDTO, error)
	Submit(attemptID string, studentID uint) (*dto.SubmissionResultDTO, error)
	Review(attemptID string, studentID uint) (*dto.AttemptReviewDTO, error)
	Reattempt(attemptID string, studentID uint) (*dto.AttemptStateDTO, error)
}

type attemptService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.QuizResultRepository
	scoreBands   ScoreBandService
	store        *attemptStore
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.QuizResultRepository,
	scoreBands ScoreBandService,
) AttemptService {
	return &attemptService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		scoreBands:   scoreBands,
		store:        newAttemptStore(),
	}
}

// Start resolves the material's quiz, fetches its question snapshot and opens
// a fresh attempt with a newly shuffled presentation order. Zero quizzes is
// the defined no-quiz state (ErrNoQuiz); the question fetch is skipped then.
func (s *attemptService) Start(materialID, studentID uint) (*dto.AttemptStateDTO, error) {
	quizzes, err := s.quizRepo.FindByMaterialID(materialID)
	if err != nil {
		log.Error().Err(err).Uint("materialID", materialID).Msg("Start: failed to fetch quizzes for material")
		return nil, fmt.Errorf("error fetching quiz for material %d: %w", materialID, err)
	}
	if len(quizzes) == 0 {
		return nil, ErrNoQuiz
	}
	if len(quizzes) > 1 {
		// Backend contract says one quiz per material; tolerate but do not hide it.
		log.Warn().Uint("materialID", materialID).Int("count", len(quizzes)).Msg("Start: material has multiple quizzes, using the first")
	}
	quiz := quizzes[0]

	questions, err := s.questionRepo.FindByQuizID(quiz.ID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Start: failed to fetch questions for quiz")
		return nil, fmt.Errorf("error fetching questions for quiz %d: %w", quiz.ID, err)
	}

	a := &attempt{
		id:         uuid.NewString(),
		quizID:     quiz.ID,
		quizTitle:  quiz.Title,
		materialID: materialID,
		studentID:  studentID,
		snapshot:   questions,
		order:      shuffledOrder(questions),
		answers:    make(map[uint]string),
	}
	state := s.stateDTO(a)
	s.store.Put(a)

	log.Info().Str("attemptID", a.id).Uint("quizID", quiz.ID).Uint("studentID", studentID).Int("questions", len(questions)).Msg("attempt started")
	return state, nil
}

func (s *attemptService) State(attemptID string, studentID uint) (*dto.AttemptStateDTO, error) {
	a, err := s.ownedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return s.stateDTO(a), nil
}

// Select records the student's choice for one question, overwriting any prior
// selection. It is rejected once a result exists for the attempt.
func (s *attemptService) Select(attemptID string, studentID uint, req dto.SelectAnswerDTO) (*dto.AttemptStateDTO, error) {
	a, err := s.ownedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if !validOption(req.Option) {
		return nil, ErrInvalidOption
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil {
		return nil, ErrAlreadySubmitted
	}
	if !a.hasQuestion(req.QuestionID) {
		return nil, ErrQuestionNotInQuiz
	}
	a.answers[req.QuestionID] = req.Option
	return s.stateDTO(a), nil
}

// Submit grades the attempt and persists the result. One entry is built per
// question of the original snapshot, empty for unanswered questions. The
// operation is atomic: if persisting the result fails, answers and attempt
// state are left untouched and submit stays callable.
func (s *attemptService) Submit(attemptID string, studentID uint) (*dto.SubmissionResultDTO, error) {
	a, err := s.ownedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil {
		return nil, ErrAlreadySubmitted
	}
	if len(a.snapshot) == 0 {
		return nil, ErrNoQuestions
	}

	entries := buildAnswerEntries(a.snapshot, a.answers)
	correct := make(map[uint]string, len(a.snapshot))
	for _, q := range a.snapshot {
		correct[q.ID] = q.CorrectAnswer
	}
	score := 0
	for _, e := range entries {
		if e.Selected != "" && e.Selected == correct[e.QuestionID] {
			score++
		}
	}

	result := model.QuizResult{
		QuizID:         a.quizID,
		StudentID:      a.studentID,
		Score:          score,
		TotalQuestions: len(entries),
		SubmittedAt:    time.Now(),
	}
	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Str("attemptID", a.id).Uint("quizID", a.quizID).Msg("Submit: failed to persist quiz result")
		return nil, fmt.Errorf("error recording quiz result: %w", err)
	}

	a.result = &submissionResult{
		score:          score,
		totalQuestions: len(entries),
		submittedAt:    result.SubmittedAt,
	}
	a.correct = correct

	log.Info().Str("attemptID", a.id).Int("score", score).Int("total", len(entries)).Msg("attempt submitted")
	return s.resultDTO(a.result), nil
}

// Review renders the post-submission state: every option of every question in
// presentation order carries exactly one verdict, derived only from the answer
// set and the correct-answer map captured at submission.
func (s *attemptService) Review(attemptID string, studentID uint) (*dto.AttemptReviewDTO, error) {
	a, err := s.ownedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result == nil {
		return nil, ErrNotSubmitted
	}

	byID := a.questionsByID()
	questions := make([]dto.ReviewQuestionDTO, 0, len(a.order))
	for _, qid := range a.order {
		q := byID[qid]
		selected := a.answers[qid]
		correctLabel := a.correct[qid]

		options := make([]dto.ReviewOptionDTO, 0, len(model.OptionLabels))
		for _, label := range model.OptionLabels {
			options = append(options, dto.ReviewOptionDTO{
				Option:  label,
				Text:    q.OptionText(label),
				Verdict: string(ClassifyOption(label, selected, correctLabel)),
			})
		}
		questions = append(questions, dto.ReviewQuestionDTO{
			QuestionID:     q.ID,
			Text:           q.Text,
			SelectedOption: selected,
			CorrectOption:  correctLabel,
			Options:        options,
		})
	}

	return &dto.AttemptReviewDTO{
		AttemptID: a.id,
		QuizID:    a.quizID,
		QuizTitle: a.quizTitle,
		Result:    *s.resultDTO(a.result),
		Questions: questions,
	}, nil
}

// Reattempt resets the attempt in place: result and answers are cleared and
// the already-held snapshot is reshuffled. No fetch is involved.
func (s *attemptService) Reattempt(attemptID string, studentID uint) (*dto.AttemptStateDTO, error) {
	a, err := s.ownedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.result = nil
	a.correct = nil
	a.answers = make(map[uint]string)
	a.order = shuffledOrder(a.snapshot)

	log.Info().Str("attemptID", a.id).Uint("quizID", a.quizID).Msg("attempt reset for a new try")
	return s.stateDTO(a), nil
}

func (s *attemptService) ownedAttempt(attemptID string, studentID uint) (*attempt, error) {
	a, ok := s.store.Get(attemptID)
	if !ok || a.studentID != studentID {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

func (s *attemptService) stateDTO(a *attempt) *dto.AttemptStateDTO {
	byID := a.questionsByID()
	questions := make([]dto.AttemptQuestionDTO, 0, len(a.order))
	for _, qid := range a.order {
		q := byID[qid]
		questions = append(questions, dto.AttemptQuestionDTO{
			QuestionID:     q.ID,
			Text:           q.Text,
			OptionA:        q.OptionA,
			OptionB:        q.OptionB,
			OptionC:        q.OptionC,
			OptionD:        q.OptionD,
			SelectedOption: a.answers[q.ID],
		})
	}
	state := &dto.AttemptStateDTO{
		AttemptID:  a.id,
		QuizID:     a.quizID,
		QuizTitle:  a.quizTitle,
		MaterialID: a.materialID,
		Questions:  questions,
	}
	if a.result != nil {
		state.Result = s.resultDTO(a.result)
	}
	return state
}

func (s *attemptService) resultDTO(r *submissionResult) *dto.SubmissionResultDTO {
	pct := s.scoreBands.Percentage(r.score, r.totalQuestions)
	return &dto.SubmissionResultDTO{
		Score:          r.score,
		TotalQuestions: r.totalQuestions,
		Percentage:     pct,
		Band:           s.scoreBands.BandFor(pct),
		SubmittedAt:    r.submittedAt,
	}
}

func (a *attempt) hasQuestion(questionID uint) bool {
	for _, q := range a.snapshot {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

func (a *attempt) questionsByID() map[uint]model.Question {
	byID := make(map[uint]model.Question, len(a.snapshot))
	for _, q := range a.snapshot {
		byID[q.ID] = q
	}
	return byID
}

// answerEntry is one line of a graded submission: every question of the
// snapshot appears exactly once, unanswered ones with an empty selection.
type answerEntry struct {
	QuestionID uint
	Selected   string
}

func buildAnswerEntries(snapshot []model.Question, answers map[uint]string) []answerEntry {
	entries := make([]answerEntry, 0, len(snapshot))
	for _, q := range snapshot {
		entries = append(entries, answerEntry{
			QuestionID: q.ID,
			Selected:   answers[q.ID],
		})
	}
	return entries
}

// shuffledOrder returns the question ids in a fresh uniform permutation. The
// snapshot itself is never reordered.
func shuffledOrder(questions []model.Question) []uint {
	order := make([]uint, len(questions))
	for i, q := range questions {
		order[i] = q.ID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

func validOption(label string) bool {
	switch label {
	case model.OptionA, model.OptionB, model.OptionC, model.OptionD:
		return true
	}
	return false
}
