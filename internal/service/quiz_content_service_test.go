package service

import (
	"errors"
	"testing"

	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/model"

	"gorm.io/gorm"
)

type fakeMaterialRepo struct {
	materials []model.Material
	nextID    uint
	err       error
}

func (f *fakeMaterialRepo) Create(material *model.Material) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	material.ID = f.nextID
	f.materials = append(f.materials, *material)
	return nil
}

func (f *fakeMaterialRepo) FindByID(id uint) (*model.Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.materials {
		if m.ID == id {
			material := m
			return &material, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMaterialRepo) FindAll() ([]model.Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.materials, nil
}

func (f *fakeMaterialRepo) FindByCourseID(courseID uint) ([]model.Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Material
	for _, m := range f.materials {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterialRepo) Delete(id uint) error {
	if f.err != nil {
		return f.err
	}
	kept := f.materials[:0]
	for _, m := range f.materials {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	f.materials = kept
	return nil
}

func newContentFixture() (QuizContentService, *fakeMaterialRepo, *fakeQuizRepo, *fakeQuestionRepo) {
	materialRepo := &fakeMaterialRepo{
		materials: []model.Material{{ID: 10, CourseID: 5, Title: "Lecture Notes"}},
		nextID:    10,
	}
	quizRepo := &fakeQuizRepo{}
	questionRepo := &fakeQuestionRepo{}
	svc := NewQuizContentService(materialRepo, quizRepo, questionRepo)
	return svc, materialRepo, quizRepo, questionRepo
}

func TestCreateQuizEnforcesOnePerMaterial(t *testing.T) {
	svc, _, _, _ := newContentFixture()

	first, err := svc.CreateQuiz(10, dto.QuizCreateDTO{Title: "Checkpoint"})
	if err != nil {
		t.Fatalf("CreateQuiz returned error: %v", err)
	}
	if first.MaterialID != 10 || first.Title != "Checkpoint" {
		t.Errorf("unexpected quiz: %+v", first)
	}

	if _, err := svc.CreateQuiz(10, dto.QuizCreateDTO{Title: "Second"}); !errors.Is(err, ErrQuizExists) {
		t.Errorf("expected ErrQuizExists on second quiz, got %v", err)
	}
}

func TestCreateQuizUnknownMaterial(t *testing.T) {
	svc, _, _, _ := newContentFixture()

	if _, err := svc.CreateQuiz(99, dto.QuizCreateDTO{Title: "Orphan"}); err == nil {
		t.Error("expected an error for a missing material")
	}
}

func TestQuestionsForQuizHidesCorrectAnswers(t *testing.T) {
	svc, _, quizRepo, questionRepo := newContentFixture()
	quizRepo.quizzes = []model.Quiz{{ID: 1, MaterialID: 10, Title: "Checkpoint"}}
	quizRepo.nextID = 1
	questionRepo.questions = []model.Question{
		{ID: 1, QuizID: 1, Text: "Q?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "B"},
	}
	questionRepo.nextID = 1

	hidden, err := svc.QuestionsForQuiz(1, false)
	if err != nil {
		t.Fatalf("QuestionsForQuiz returned error: %v", err)
	}
	if hidden[0].CorrectAnswer != "" {
		t.Errorf("student view must not expose the correct answer, got %q", hidden[0].CorrectAnswer)
	}

	visible, err := svc.QuestionsForQuiz(1, true)
	if err != nil {
		t.Fatalf("QuestionsForQuiz returned error: %v", err)
	}
	if visible[0].CorrectAnswer != "B" {
		t.Errorf("teacher view should expose the correct answer, got %q", visible[0].CorrectAnswer)
	}
}

func TestQuestionsForUnknownQuiz(t *testing.T) {
	svc, _, _, _ := newContentFixture()

	if _, err := svc.QuestionsForQuiz(123, false); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestAddQuestionsBulk(t *testing.T) {
	svc, _, quizRepo, questionRepo := newContentFixture()
	quizRepo.quizzes = []model.Quiz{{ID: 1, MaterialID: 10, Title: "Checkpoint"}}
	quizRepo.nextID = 1

	req := dto.BulkQuestionsCreateDTO{Questions: []dto.QuestionCreateDTO{
		{Text: "One?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "A"},
		{Text: "Two?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "D"},
	}}
	created, err := svc.AddQuestionsBulk(1, req)
	if err != nil {
		t.Fatalf("AddQuestionsBulk returned error: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created questions, got %d", len(created))
	}
	for _, q := range created {
		if q.ID == 0 || q.QuizID != 1 {
			t.Errorf("created question not bound to quiz: %+v", q)
		}
	}
	if len(questionRepo.questions) != 2 {
		t.Errorf("expected 2 stored questions, got %d", len(questionRepo.questions))
	}
}

func TestDeleteQuestionNotFound(t *testing.T) {
	svc, _, _, _ := newContentFixture()

	if err := svc.DeleteQuestion(77); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestDeleteQuiz(t *testing.T) {
	svc, _, quizRepo, _ := newContentFixture()
	quizRepo.quizzes = []model.Quiz{{ID: 1, MaterialID: 10, Title: "Checkpoint"}}
	quizRepo.nextID = 1

	if err := svc.DeleteQuiz(1); err != nil {
		t.Fatalf("DeleteQuiz returned error: %v", err)
	}
	if err := svc.DeleteQuiz(1); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("expected ErrQuizNotFound after deletion, got %v", err)
	}
}
