package entities

// Unanswered marks an answer slot with no recorded choice.
const Unanswered = -1

// AnswerRecord holds one slot per question: either Unanswered or the selected option index.
type AnswerRecord []int

// NewAnswerRecord creates a record of n unanswered slots.
func NewAnswerRecord(n int) AnswerRecord {
	r := make(AnswerRecord, n)
	for i := range r {
		r[i] = Unanswered
	}
	return r
}

// Get returns the selected option for question i and whether it was answered.
func (r AnswerRecord) Get(i int) (int, bool) {
	if i < 0 || i >= len(r) || r[i] == Unanswered {
		return Unanswered, false
	}
	return r[i], true
}

// Answered reports whether question i has a recorded answer.
func (r AnswerRecord) Answered(i int) bool {
	_, ok := r.Get(i)
	return ok
}

// Set records option for question i. A slot is written at most once;
// Set returns false if the slot is already taken or i is out of range.
func (r AnswerRecord) Set(i, option int) bool {
	if i < 0 || i >= len(r) || r[i] != Unanswered || option < 0 {
		return false
	}
	r[i] = option
	return true
}

// Clone returns an independent copy of the record.
func (r AnswerRecord) Clone() AnswerRecord {
	if r == nil {
		return nil
	}
	return append(AnswerRecord(nil), r...)
}
