package service

import "math"

// ScoreBandService maps a score into the percentage band the result screens
// colour by. Display only; the stored score is the authority.
type ScoreBandService interface {
	Percentage(score, totalQuestions int) float64
	BandFor(percentage float64) string
}

const (
	BandExcellent = "excellent"
	BandPassing   = "passing"
	BandNeedsWork = "needs_work"
)

const (
	excellentCutoff = 80.0
	passingCutoff   = 50.0
)

type scoreBandService struct{}

func NewScoreBandService() ScoreBandService {
	return &scoreBandService{}
}

func (s *scoreBandService) Percentage(score, totalQuestions int) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	pct := float64(score) / float64(totalQuestions) * 100.0
	return math.Round(pct*100) / 100
}

func (s *scoreBandService) BandFor(percentage float64) string {
	switch {
	case percentage >= excellentCutoff:
		return BandExcellent
	case percentage >= passingCutoff:
		return BandPassing
	default:
		return BandNeedsWork
	}
}
