package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/service"
)

// screen is a rendered view: one or more MarkdownV2 pages with the keyboard
// attached under the last one.
type screen struct {
	pages []string
	kb    *tgbotapi.InlineKeyboardMarkup
}

// render turns the navigator state into a screen.
// A failed build or a panic while rendering falls back to the error screen.
func (h *Handler) render(chatID int64, nav *service.Navigator) (s screen) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("render panic",
				zap.Int64("chat_id", chatID),
				zap.Any("panic", r),
			)
			s = renderView(entities.ErrorView{})
		}
	}()

	view, err := h.views.Build(nav.Snapshot())
	if err != nil {
		h.logger.Error("failed to build view",
			zap.Int64("chat_id", chatID),
			zap.String("view", string(nav.View())),
			zap.Error(err),
		)
		view = entities.ErrorView{}
	}

	return renderView(view)
}

// renderView maps a view model to message pages and keyboard.
func renderView(view entities.View) screen {
	switch v := view.(type) {
	case entities.HomeView:
		return screen{pages: []string{formatHome(v)}, kb: buildHomeKeyboard(v)}
	case entities.QuizView:
		return screen{pages: []string{formatQuiz(v)}, kb: buildQuizKeyboard(v)}
	case entities.ResultView:
		return screen{pages: formatResult(v), kb: buildResultKeyboard(v)}
	default:
		return screen{pages: []string{formatError()}, kb: buildErrorKeyboard()}
	}
}
