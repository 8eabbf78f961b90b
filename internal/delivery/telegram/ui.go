package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// buildHomeKeyboard builds one button per quiz. An empty catalog has no keyboard.
func buildHomeKeyboard(v entities.HomeView) *tgbotapi.InlineKeyboardMarkup {
	if len(v.Quizzes) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(v.Quizzes))
	for _, card := range v.Quizzes {
		label := fmt.Sprintf("%s %s", colorDot(card.Color), card.Title)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildStartCallback(card.ID)),
		))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildQuizKeyboard builds option buttons while the question is open and
// navigation buttons once it is answered.
func buildQuizKeyboard(v entities.QuizView) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if !v.Answered {
		for _, opt := range v.Options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(opt.Text, buildAnswerCallback(v.Number-1, opt.Index)),
			))
		}
	}

	var nav []tgbotapi.InlineKeyboardButton
	if v.CanPrev {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", buildPrevCallback()))
	}
	if v.CanNext {
		if v.IsLast {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("🏁 Завершить", buildFinishCallback()))
		} else {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Далее ▶️", buildNextCallback()))
		}
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 На главную", buildHomeCallback()),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildResultKeyboard builds keyboard for quiz results screen.
func buildResultKeyboard(v entities.ResultView) *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Пройти снова", buildStartCallback(v.QuizID)),
			tgbotapi.NewInlineKeyboardButtonData("📋 Выбрать другую", buildHomeCallback()),
		),
	)
	return &kb
}

func buildErrorKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Вернуться на главную", buildHomeCallback()),
		),
	)
	return &kb
}
