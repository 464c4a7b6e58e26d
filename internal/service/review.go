package service

// OptionVerdict classifies one option of one question in the review state.
type OptionVerdict string

const (
	VerdictSelectedCorrect    OptionVerdict = "selected_correct"
	VerdictSelectedIncorrect  OptionVerdict = "selected_incorrect"
	VerdictCorrectNotSelected OptionVerdict = "correct_not_selected"
	VerdictNeither            OptionVerdict = "neither"
)

// ClassifyOption derives the verdict for a single option from the student's
// recorded selection and the correct label captured at submission time. The
// four verdicts are mutually exclusive; an unanswered question (empty
// selection) can only yield correct_not_selected or neither.
func ClassifyOption(option, selected, correct string) OptionVerdict {
	switch {
	case option == selected && option == correct:
		return VerdictSelectedCorrect
	case option == selected:
		return VerdictSelectedIncorrect
	case option == correct:
		return VerdictCorrectNotSelected
	default:
		return VerdictNeither
	}
}
