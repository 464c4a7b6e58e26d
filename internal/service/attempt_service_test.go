package service

import (
	"errors"
	"testing"

	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/model"

	"gorm.io/gorm"
)

type fakeQuizRepo struct {
	quizzes []model.Quiz
	nextID  uint
	err     error
}

func (f *fakeQuizRepo) Create(quiz *model.Quiz) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	quiz.ID = f.nextID
	f.quizzes = append(f.quizzes, *quiz)
	return nil
}

func (f *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, q := range f.quizzes {
		if q.ID == id {
			quiz := q
			return &quiz, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuizRepo) FindByMaterialID(materialID uint) ([]model.Quiz, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Quiz
	for _, q := range f.quizzes {
		if q.MaterialID == materialID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) CountByMaterialID(materialID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, q := range f.quizzes {
		if q.MaterialID == materialID {
			count++
		}
	}
	return count, nil
}

func (f *fakeQuizRepo) Delete(id uint) error {
	if f.err != nil {
		return f.err
	}
	kept := f.quizzes[:0]
	for _, q := range f.quizzes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	f.quizzes = kept
	return nil
}

type fakeQuestionRepo struct {
	questions     []model.Question
	nextID        uint
	findQuizCalls int
	err           error
}

func (f *fakeQuestionRepo) Create(question *model.Question) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	question.ID = f.nextID
	f.questions = append(f.questions, *question)
	return nil
}

func (f *fakeQuestionRepo) CreateBatch(questions []model.Question) error {
	if f.err != nil {
		return f.err
	}
	for i := range questions {
		f.nextID++
		questions[i].ID = f.nextID
		f.questions = append(f.questions, questions[i])
	}
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, q := range f.questions {
		if q.ID == id {
			question := q
			return &question, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) FindByQuizID(quizID uint) ([]model.Question, error) {
	f.findQuizCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Question
	for _, q := range f.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Delete(id uint) error {
	if f.err != nil {
		return f.err
	}
	kept := f.questions[:0]
	for _, q := range f.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	f.questions = kept
	return nil
}

type fakeResultRepo struct {
	results []model.QuizResult
	err     error
}

func (f *fakeResultRepo) Create(result *model.QuizResult) error {
	if f.err != nil {
		return f.err
	}
	result.ID = uint(len(f.results) + 1)
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultRepo) FindByStudentID(studentID uint) ([]model.QuizResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.QuizResult
	for _, r := range f.results {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) FindAll() ([]model.QuizResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

const (
	testMaterialID = uint(10)
	testStudentID  = uint(42)
)

// newAttemptFixture builds a service over a material with one quiz and three
// questions whose correct answers are A, B and C.
func newAttemptFixture() (AttemptService, *fakeQuizRepo, *fakeQuestionRepo, *fakeResultRepo) {
	quizRepo := &fakeQuizRepo{
		quizzes: []model.Quiz{{ID: 1, MaterialID: testMaterialID, Title: "Chapter Review"}},
		nextID:  1,
	}
	questionRepo := &fakeQuestionRepo{
		questions: []model.Question{
			{ID: 1, QuizID: 1, Text: "First?", OptionA: "a1", OptionB: "b1", OptionC: "c1", OptionD: "d1", CorrectAnswer: "A"},
			{ID: 2, QuizID: 1, Text: "Second?", OptionA: "a2", OptionB: "b2", OptionC: "c2", OptionD: "d2", CorrectAnswer: "B"},
			{ID: 3, QuizID: 1, Text: "Third?", OptionA: "a3", OptionB: "b3", OptionC: "c3", OptionD: "d3", CorrectAnswer: "C"},
		},
		nextID: 3,
	}
	resultRepo := &fakeResultRepo{}
	svc := NewAttemptService(quizRepo, questionRepo, resultRepo, NewScoreBandService())
	return svc, quizRepo, questionRepo, resultRepo
}

func questionIDs(questions []dto.AttemptQuestionDTO) []uint {
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.QuestionID)
	}
	return ids
}

func TestStartPresentsEveryQuestionExactlyOnce(t *testing.T) {
	svc, _, _, _ := newAttemptFixture()

	state, err := svc.Start(testMaterialID, testStudentID)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if state.AttemptID == "" {
		t.Error("expected a non-empty attempt id")
	}
	if state.QuizID != 1 || state.QuizTitle != "Chapter Review" {
		t.Errorf("unexpected quiz identity: id=%d title=%q", state.QuizID, state.QuizTitle)
	}
	if state.Result != nil {
		t.Error("fresh attempt must not carry a result")
	}

	seen := make(map[uint]bool)
	for _, id := range questionIDs(state.Questions) {
		if seen[id] {
			t.Fatalf("question %d presented twice", id)
		}
		seen[id] = true
	}
	for _, want := range []uint{1, 2, 3} {
		if !seen[want] {
			t.Errorf("question %d missing from presentation order", want)
		}
	}
	for _, q := range state.Questions {
		if q.SelectedOption != "" {
			t.Errorf("question %d should start unanswered, got %q", q.QuestionID, q.SelectedOption)
		}
	}
}

func TestStartWithoutQuizSkipsQuestionFetch(t *testing.T) {
	svc, quizRepo, questionRepo, _ := newAttemptFixture()
	quizRepo.quizzes = nil

	_, err := svc.Start(testMaterialID, testStudentID)
	if !errors.Is(err, ErrNoQuiz) {
		t.Fatalf("expected ErrNoQuiz, got %v", err)
	}
	if questionRepo.findQuizCalls != 0 {
		t.Errorf("question fetch should be skipped when no quiz exists, got %d calls", questionRepo.findQuizCalls)
	}
}

func TestStartWithSurplusQuizzesUsesFirst(t *testing.T) {
	svc, quizRepo, _, _ := newAttemptFixture()
	quizRepo.quizzes = append(quizRepo.quizzes, model.Quiz{ID: 2, MaterialID: testMaterialID, Title: "Stray Copy"})

	state, err := svc.Start(testMaterialID, testStudentID)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if state.QuizID != 1 {
		t.Errorf("expected first quiz (id 1), got %d", state.QuizID)
	}
}

func TestSelectOverwritesPreviousChoice(t *testing.T) {
	svc, _, _, _ := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)

	if _, err := svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "A"}); err != nil {
		t.Fatalf("first select failed: %v", err)
	}
	updated, err := svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "C"})
	if err != nil {
		t.Fatalf("second select failed: %v", err)
	}

	for _, q := range updated.Questions {
		if q.QuestionID == 1 && q.SelectedOption != "C" {
			t.Errorf("expected overwritten selection C, got %q", q.SelectedOption)
		}
	}
}

func TestSelectRejectsBadInput(t *testing.T) {
	svc, _, _, _ := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)

	if _, err := svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "E"}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
	if _, err := svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 99, Option: "A"}); !errors.Is(err, ErrQuestionNotInQuiz) {
		t.Errorf("expected ErrQuestionNotInQuiz, got %v", err)
	}
}

func TestSubmitGradesEverySnapshotQuestion(t *testing.T) {
	svc, _, _, resultRepo := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)

	// q1 correct, q2 wrong, q3 left unanswered.
	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "A"})
	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 2, Option: "C"})

	result, err := svc.Submit(state.AttemptID, testStudentID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("expected score 1, got %d", result.Score)
	}
	if result.TotalQuestions != 3 {
		t.Errorf("expected total 3 including the unanswered question, got %d", result.TotalQuestions)
	}
	if result.Percentage != 33.33 {
		t.Errorf("expected percentage 33.33, got %v", result.Percentage)
	}
	if result.Band != BandNeedsWork {
		t.Errorf("expected band %q, got %q", BandNeedsWork, result.Band)
	}

	if len(resultRepo.results) != 1 {
		t.Fatalf("expected one persisted result, got %d", len(resultRepo.results))
	}
	stored := resultRepo.results[0]
	if stored.QuizID != 1 || stored.StudentID != testStudentID || stored.Score != 1 || stored.TotalQuestions != 3 {
		t.Errorf("persisted result mismatch: %+v", stored)
	}
}

func TestSubmissionFreezesTheAttempt(t *testing.T) {
	svc, _, _, _ := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)
	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "A"})

	if _, err := svc.Submit(state.AttemptID, testStudentID); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 2, Option: "B"}); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("select after submission should fail with ErrAlreadySubmitted, got %v", err)
	}
	if _, err := svc.Submit(state.AttemptID, testStudentID); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("second submit should fail with ErrAlreadySubmitted, got %v", err)
	}
}

func TestSubmitPersistFailureLeavesAttemptOpen(t *testing.T) {
	svc, _, _, resultRepo := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)
	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "A"})

	resultRepo.err = errors.New("connection reset")
	if _, err := svc.Submit(state.AttemptID, testStudentID); err == nil {
		t.Fatal("expected submit to fail when persisting the result fails")
	}

	// The attempt stays open: selections survive and submit is retryable.
	current, err := svc.State(state.AttemptID, testStudentID)
	if err != nil {
		t.Fatalf("State returned error: %v", err)
	}
	if current.Result != nil {
		t.Error("failed submit must not leave a result on the attempt")
	}
	for _, q := range current.Questions {
		if q.QuestionID == 1 && q.SelectedOption != "A" {
			t.Errorf("selection lost after failed submit: %q", q.SelectedOption)
		}
	}

	resultRepo.err = nil
	result, err := svc.Submit(state.AttemptID, testStudentID)
	if err != nil {
		t.Fatalf("retry submit failed: %v", err)
	}
	if result.Score != 1 || result.TotalQuestions != 3 {
		t.Errorf("retry graded wrong: score=%d total=%d", result.Score, result.TotalQuestions)
	}
}

func TestSubmitEmptyQuiz(t *testing.T) {
	svc, _, questionRepo, _ := newAttemptFixture()
	questionRepo.questions = nil
	state, _ := svc.Start(testMaterialID, testStudentID)

	if _, err := svc.Submit(state.AttemptID, testStudentID); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("expected ErrNoQuestions, got %v", err)
	}
}

func TestReviewClassifiesEveryOption(t *testing.T) {
	svc, _, _, _ := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)

	if _, err := svc.Review(state.AttemptID, testStudentID); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("review before submission should fail with ErrNotSubmitted, got %v", err)
	}

	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "A"})
	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 2, Option: "C"})
	svc.Submit(state.AttemptID, testStudentID)

	review, err := svc.Review(state.AttemptID, testStudentID)
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if len(review.Questions) != 3 {
		t.Fatalf("expected 3 reviewed questions, got %d", len(review.Questions))
	}

	verdictOf := func(q dto.ReviewQuestionDTO, option string) string {
		for _, o := range q.Options {
			if o.Option == option {
				return o.Verdict
			}
		}
		t.Fatalf("option %q missing from review of question %d", option, q.QuestionID)
		return ""
	}

	for _, q := range review.Questions {
		if len(q.Options) != 4 {
			t.Fatalf("question %d reviewed with %d options", q.QuestionID, len(q.Options))
		}
		switch q.QuestionID {
		case 1: // answered A, correct A
			if got := verdictOf(q, "A"); got != string(VerdictSelectedCorrect) {
				t.Errorf("q1 option A: got %q", got)
			}
			for _, other := range []string{"B", "C", "D"} {
				if got := verdictOf(q, other); got != string(VerdictNeither) {
					t.Errorf("q1 option %s: got %q", other, got)
				}
			}
		case 2: // answered C, correct B
			if got := verdictOf(q, "C"); got != string(VerdictSelectedIncorrect) {
				t.Errorf("q2 option C: got %q", got)
			}
			if got := verdictOf(q, "B"); got != string(VerdictCorrectNotSelected) {
				t.Errorf("q2 option B: got %q", got)
			}
		case 3: // unanswered, correct C
			if q.SelectedOption != "" {
				t.Errorf("q3 should have no selection, got %q", q.SelectedOption)
			}
			if got := verdictOf(q, "C"); got != string(VerdictCorrectNotSelected) {
				t.Errorf("q3 option C: got %q", got)
			}
		}
	}
}

func TestReattemptResetsInPlace(t *testing.T) {
	svc, quizRepo, questionRepo, resultRepo := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)
	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 1, Option: "A"})
	svc.Submit(state.AttemptID, testStudentID)

	// A reattempt must not touch the database: break both repos to prove it.
	quizRepo.err = errors.New("db down")
	questionRepo.err = errors.New("db down")

	fresh, err := svc.Reattempt(state.AttemptID, testStudentID)
	if err != nil {
		t.Fatalf("Reattempt returned error: %v", err)
	}
	if fresh.Result != nil {
		t.Error("reattempt must clear the result")
	}
	if len(fresh.Questions) != 3 {
		t.Fatalf("reattempt lost questions: got %d", len(fresh.Questions))
	}
	for _, q := range fresh.Questions {
		if q.SelectedOption != "" {
			t.Errorf("question %d still carries selection %q after reattempt", q.QuestionID, q.SelectedOption)
		}
	}

	quizRepo.err = nil
	questionRepo.err = nil
	svc.Select(state.AttemptID, testStudentID, dto.SelectAnswerDTO{QuestionID: 2, Option: "B"})
	result, err := svc.Submit(state.AttemptID, testStudentID)
	if err != nil {
		t.Fatalf("submit after reattempt failed: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("expected score 1 on the second try, got %d", result.Score)
	}
	if len(resultRepo.results) != 2 {
		t.Errorf("each submission should persist its own row, got %d", len(resultRepo.results))
	}
}

func TestAttemptOwnership(t *testing.T) {
	svc, _, _, _ := newAttemptFixture()
	state, _ := svc.Start(testMaterialID, testStudentID)

	if _, err := svc.State(state.AttemptID, testStudentID+1); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("foreign student should see ErrAttemptNotFound, got %v", err)
	}
	if _, err := svc.State("no-such-attempt", testStudentID); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("unknown attempt should see ErrAttemptNotFound, got %v", err)
	}
}
