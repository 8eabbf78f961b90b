package entities

// NoCorrectIndex marks a question whose source did not name the correct option.
const NoCorrectIndex = -1

// Question is a single multiple-choice question.
type Question struct {
	Text         string   // prompt shown to the user
	Image        string   // optional illustration URL
	Options      []string // answer options, at least two
	CorrectIndex int      // 0-based index into Options, or NoCorrectIndex
	Explanation  string   // optional text shown after answering
}

// Validate checks the option list and the correct index.
func (q Question) Validate() error {
	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}
	if q.CorrectIndex == NoCorrectIndex {
		return ErrMissingCorrectIndex
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ErrCorrectIndexRange
	}
	return nil
}

// IsCorrect reports whether option is the correct one.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	return out
}
