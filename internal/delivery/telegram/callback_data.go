package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionHome   = "home"
	actionStart  = "start"
	actionAnswer = "answer"
	actionNext   = "next"
	actionPrev   = "prev"
	actionFinish = "finish"
)

var ErrMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// navAction is a decoded user action, mapped 1:1 to a navigator operation.
type navAction struct {
	Kind     string
	QuizID   string
	Question int
	Option   int
}

// parseAction decodes callback data into a navigator action.
func parseAction(data string) (navAction, error) {
	cd := decodeCallback(data)

	switch cd.Action {
	case actionHome, actionNext, actionPrev, actionFinish:
		if len(cd.Params) != 0 {
			break
		}
		return navAction{Kind: cd.Action}, nil

	case actionStart:
		// Quiz ids may contain the separator.
		id := strings.Join(cd.Params, ":")
		if id == "" {
			break
		}
		return navAction{Kind: actionStart, QuizID: id}, nil

	case actionAnswer:
		if len(cd.Params) != 2 {
			break
		}
		question, err1 := strconv.Atoi(cd.Params[0])
		option, err2 := strconv.Atoi(cd.Params[1])
		if err1 != nil || err2 != nil || question < 0 {
			break
		}
		return navAction{Kind: actionAnswer, Question: question, Option: option}, nil
	}

	return navAction{}, fmt.Errorf("%w: %q", ErrMalformedCallback, data)
}

func buildHomeCallback() string {
	return actionHome
}

// buildStartCallback builds callback data for starting (or restarting) a quiz.
func buildStartCallback(quizID string) string {
	return callbackData{
		Action: actionStart,
		Params: []string{quizID},
	}.encode()
}

// buildAnswerCallback builds callback data for answering question with option.
// The question index lets stale buttons be told apart from the current question.
func buildAnswerCallback(question, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(question), strconv.Itoa(option)},
	}.encode()
}

func buildNextCallback() string {
	return actionNext
}

func buildPrevCallback() string {
	return actionPrev
}

func buildFinishCallback() string {
	return actionFinish
}
