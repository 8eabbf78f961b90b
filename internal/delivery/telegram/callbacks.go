package telegram

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/service"
)

// ErrStaleAction is returned for an answer button of a question that is no longer shown.
var ErrStaleAction = errors.New("action refers to another question")

func (h *Handler) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	nav := h.navigators.Get(chatID)

	act, err := parseAction(cb.Data)
	if err == nil {
		err = applyAction(nav, act)
	}
	if err != nil {
		h.logger.Debug("callback rejected",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.answerCallback(cb.ID, toastFor(err))
		return
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, "")

	h.edit(chatID, cb.Message.MessageID, h.render(chatID, nav))
}

// applyAction runs the navigator operation behind a user action.
func applyAction(nav *service.Navigator, act navAction) error {
	switch act.Kind {
	case actionHome:
		nav.GoHome()
		return nil
	case actionStart:
		return nav.StartQuiz(act.QuizID)
	case actionAnswer:
		if index, ok := nav.CurrentIndex(); ok && index != act.Question {
			return ErrStaleAction
		}
		return nav.SelectAnswer(act.Option)
	case actionNext:
		return nav.Next()
	case actionPrev:
		return nav.Prev()
	case actionFinish:
		return nav.Finish()
	}
	return ErrMalformedCallback
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// edit replaces the screen in place. Further pages follow as new messages.
// When the update fails the error screen is sent instead.
func (h *Handler) edit(chatID int64, messageID int, s screen) {
	e := newEdit(chatID, messageID, s.pages[0])
	if len(s.pages) == 1 {
		e.ReplyMarkup = s.kb
	}

	err := h.send(e)
	if err != nil && isNotModified(err) {
		err = nil
	}
	if err == nil && len(s.pages) > 1 {
		err = h.sendScreen(chatID, screen{pages: s.pages[1:], kb: s.kb})
	}
	if err == nil {
		return
	}

	h.logger.Error("failed to edit telegram message",
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", messageID),
		zap.Error(err),
	)
	if err := h.sendScreen(chatID, renderView(entities.ErrorView{})); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// isNotModified reports the Bot API rejection of an edit that changes nothing.
func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
