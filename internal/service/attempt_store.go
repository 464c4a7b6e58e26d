package service

import (
	"sync"
	"time"

	"lms-quiz-service/internal/model"
)

// submissionResult is the terminal per-attempt score. Once set, the attempt is
// frozen until a reattempt resets it.
type submissionResult struct {
	score          int
	totalQuestions int
	submittedAt    time.Time
}

// attempt holds the working state of one quiz-taking cycle. The question
// snapshot is immutable for the attempt's lifetime; order, answers, result and
// the captured correct-answer map are reset together on reattempt.
type attempt struct {
	id         string
	quizID     uint
	quizTitle  string
	materialID uint
	studentID  uint

	mu       sync.Mutex
	snapshot []model.Question // original storage order
	order    []uint           // question ids in presentation order
	answers  map[uint]string  // question id -> selected label, absent = unanswered
	result   *submissionResult
	correct  map[uint]string // captured at submission for review rendering
}

// attemptStore keeps live attempts in memory. Attempt state is deliberately
// unpersisted; losing the process loses in-flight attempts, never results.
type attemptStore struct {
	mu       sync.RWMutex
	attempts map[string]*attempt
}

func newAttemptStore() *attemptStore {
	return &attemptStore{attempts: make(map[string]*attempt)}
}

func (s *attemptStore) Put(a *attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[a.id] = a
}

func (s *attemptStore) Get(id string) (*attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attempts[id]
	return a, ok
}
