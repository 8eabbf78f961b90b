package service

import (
	"math"
	"strings"
	"unicode"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

const (
	excellentThreshold = 80
	needsWorkThreshold = 50
)

// Score counts answer slots equal to the correct index of their question.
// Unanswered slots never match.
func Score(questions []entities.Question, answers entities.AnswerRecord) int {
	score := 0
	for i, q := range questions {
		if a, ok := answers.Get(i); ok && q.IsCorrect(a) {
			score++
		}
	}
	return score
}

// ProgressPercent returns floor(100 * index / total): the share of questions
// completed before the current one, not counting the current question.
func ProgressPercent(index, total int) int {
	if total <= 0 || index <= 0 {
		return 0
	}
	return index * 100 / total
}

// ScorePercent returns the score as a percentage rounded to the nearest integer.
func ScorePercent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}

// TierFor maps a result percentage to its feedback tier.
func TierFor(percent int) entities.ResultTier {
	switch {
	case percent >= excellentThreshold:
		return entities.TierExcellent
	case percent < needsWorkThreshold:
		return entities.TierNeedsWork
	default:
		return entities.TierGood
	}
}

// ClassifyOption derives how option should be rendered for a question
// whose answer slot holds selected (or entities.Unanswered).
func ClassifyOption(q entities.Question, option, selected int) entities.OptionState {
	if selected == entities.Unanswered {
		return entities.OptionNeutral
	}
	if q.IsCorrect(option) {
		return entities.OptionCorrect
	}
	if option == selected {
		return entities.OptionWrong
	}
	return entities.OptionNeutral
}

// ExplanationPrefixes are the markers used to flip the polarity of an explanation.
type ExplanationPrefixes struct {
	Correct   string // leading marker of authored explanations, e.g. "Correct:"
	Incorrect string // marker shown instead when the answer was wrong, e.g. "Incorrect:"
}

// DefaultExplanationPrefixes returns the English markers.
func DefaultExplanationPrefixes() ExplanationPrefixes {
	return ExplanationPrefixes{Correct: "Correct:", Incorrect: "Incorrect:"}
}

// Polarize returns the explanation as shown after answering. For a correct answer
// it is returned as authored; otherwise the leading Correct marker is stripped
// and the Incorrect marker is prepended.
func (p ExplanationPrefixes) Polarize(explanation string, correct bool) string {
	if explanation == "" || correct {
		return explanation
	}
	return p.Incorrect + " " + p.Strip(explanation)
}

// Strip removes a leading Correct marker and the whitespace after it.
func (p ExplanationPrefixes) Strip(explanation string) string {
	if p.Correct == "" || !strings.HasPrefix(explanation, p.Correct) {
		return explanation
	}
	return strings.TrimLeftFunc(explanation[len(p.Correct):], unicode.IsSpace)
}
