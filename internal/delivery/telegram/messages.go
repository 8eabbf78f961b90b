// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/service"
)

// Plain texts, escaped with md before sending.
const (
	msgInternalError  = "Что‑то пошло не так. Попробуйте позже."
	msgUnknownCommand = "Неизвестная команда. Список доступных команд:\n\n/quizzes — выбрать викторину\n/help — помощь"
	msgUseButtons     = "Пользуйтесь кнопками под сообщениями. Список викторин: /quizzes"
	msgActionFailed   = "Действие недоступно."
)

const progressBarLength = 10

// maxMessageLength is Telegram's limit on message text. Lengths are counted
// in UTF-16 units of the escaped text, which never undercounts.
const maxMessageLength = 4096

// Caps on catalog text, in runes before escaping. An escaped breakdown item
// stays well under maxMessageLength.
const (
	maxTitleRunes = 200
	maxTextRunes  = 800
)

// toasts maps navigation diagnostics to callback answers.
var toasts = []struct {
	err  error
	text string
}{
	{service.ErrQuizNotFound, "Викторина не найдена."},
	{service.ErrNotInQuiz, "Викторина уже завершена."},
	{service.ErrAlreadyAnswered, "Вы уже ответили на этот вопрос."},
	{service.ErrOptionOutOfRange, "Такого варианта нет."},
	{service.ErrUnanswered, "Сначала выберите ответ."},
	{service.ErrFirstQuestion, "Это первый вопрос."},
	{ErrStaleAction, "Эта кнопка устарела."},
	{ErrMalformedCallback, "Неизвестное действие."},
}

func toastFor(err error) string {
	for _, t := range toasts {
		if errors.Is(err, t.err) {
			return t.text
		}
	}
	return msgActionFailed
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Quiz Bot"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Выберите викторину, отвечайте на вопросы по одному и смотрите результат с разбором ответов."))

	return sb.String()
}

func helpMessage() string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s\n\n%s",
		bold("Помощь"),
		md("/quizzes — список викторин"),
		md("/start — начать сначала"),
		md("/help — эта справка"),
		md("Ответ на вопрос изменить нельзя. «Назад» показывает уже отвеченные вопросы."),
	)
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	filled := 0
	if total > 0 {
		filled = current * length / total
	}
	filled = max(0, min(filled, length))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("[%s]", bar)
}

func formatHome(v entities.HomeView) string {
	var sb strings.Builder
	sb.WriteString(bold("Выберите викторину"))

	if len(v.Quizzes) == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md("Нет доступных викторин"))
		return sb.String()
	}

	for _, card := range v.Quizzes {
		sb.WriteString("\n\n")
		sb.WriteString(md(colorDot(card.Color) + " "))
		sb.WriteString(bold(card.Title))
		sb.WriteString("\n")

		line := fmt.Sprintf("%d %s", card.QuestionCount, questionsWord(card.QuestionCount))
		if card.Difficulty != "" {
			line += " • Сложность: " + card.Difficulty
		}
		sb.WriteString(md(line))
	}

	return sb.String()
}

func formatQuiz(v entities.QuizView) string {
	var sb strings.Builder

	sb.WriteString(bold(clip(v.Title, maxTitleRunes)))
	sb.WriteString("\n")

	header := fmt.Sprintf("Вопрос %d из %d", v.Number, v.Total)
	if v.Difficulty != "" {
		header += " • " + v.Difficulty
	}
	sb.WriteString(md(header))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%s %d%%", buildProgressBar(v.Progress, 100, progressBarLength), v.Progress)))

	sb.WriteString("\n\n")
	sb.WriteString(bold(clip(v.Text, maxTextRunes)))

	if v.Image != "" {
		sb.WriteString("\n")
		sb.WriteString(formatImage(v.Image))
	}

	if v.Answered {
		sb.WriteString("\n")
		for _, opt := range v.Options {
			sb.WriteString("\n")
			line := optionMarker(opt.State) + " " + opt.Text
			if opt.Selected {
				line += " ← выбрано"
			}
			sb.WriteString(md(line))
		}
	}

	if v.Explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md("💡 "))
		sb.WriteString(italic(clip(v.Explanation, maxTextRunes)))
	}

	return sb.String()
}

// formatResult renders the score and the breakdown. Long breakdowns are
// split into pages that each fit into one message.
func formatResult(v entities.ResultView) []string {
	var head strings.Builder

	head.WriteString(bold("Результат: " + clip(v.Title, maxTitleRunes)))
	head.WriteString("\n\n")
	head.WriteString(md(fmt.Sprintf("%s %d / %d правильных (%d%%)", tierEmoji(v.Tier), v.Score, v.Total, v.Percent)))
	head.WriteString("\n")
	head.WriteString(md(buildProgressBar(v.Score, v.Total, progressBarLength)))

	if v.Difficulty != "" {
		head.WriteString("\n")
		head.WriteString(md("Сложность: " + clip(v.Difficulty, maxTitleRunes)))
	}

	head.WriteString("\n\n")
	head.WriteString(bold("Разбор ответов"))

	blocks := []string{head.String()}
	for _, item := range v.Breakdown {
		var sb strings.Builder
		sb.WriteString(md(breakdownMarker(item) + " "))
		sb.WriteString(bold(fmt.Sprintf("Вопрос %d.", item.Number)))
		sb.WriteString(" ")
		sb.WriteString(md(clip(item.Text, maxTextRunes)))
		if item.Explanation != "" {
			sb.WriteString("\n")
			sb.WriteString(italic(clip(item.Explanation, maxTextRunes)))
		}
		blocks = append(blocks, sb.String())
	}

	return paginate(blocks, maxMessageLength)
}

// paginate joins blocks with blank lines and starts a new page whenever the
// next block would push the current one past limit.
func paginate(blocks []string, limit int) []string {
	var (
		pages []string
		page  strings.Builder
		size  int
	)

	for _, b := range blocks {
		n := textLength(b)
		if size > 0 && size+2+n > limit {
			pages = append(pages, page.String())
			page.Reset()
			size = 0
		}
		if size > 0 {
			page.WriteString("\n\n")
			size += 2
		}
		page.WriteString(b)
		size += n
	}

	if size > 0 || len(pages) == 0 {
		pages = append(pages, page.String())
	}
	return pages
}

func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// clip shortens s to at most n runes, marking the cut with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatError() string {
	return fmt.Sprintf("%s\n\n%s",
		bold("⚠️ Произошла ошибка"),
		md("Не удалось показать этот экран."),
	)
}

// formatImage renders http(s) images as a link and anything else as plain text.
func formatImage(ref string) string {
	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") {
		url := strings.NewReplacer(`\`, `\\`, `)`, `\)`).Replace(ref)
		return "[" + md("🖼 Иллюстрация") + "](" + url + ")"
	}
	return md("🖼 " + ref)
}

func optionMarker(state entities.OptionState) string {
	switch state {
	case entities.OptionCorrect:
		return "✅"
	case entities.OptionWrong:
		return "❌"
	default:
		return "▫️"
	}
}

func breakdownMarker(item entities.BreakdownItem) string {
	switch {
	case item.Correct:
		return "✅"
	case item.Answered:
		return "❌"
	default:
		return "➖"
	}
}

func tierEmoji(tier entities.ResultTier) string {
	switch tier {
	case entities.TierExcellent:
		return "🎉"
	case entities.TierNeedsWork:
		return "🤔"
	default:
		return "🙂"
	}
}

// questionsWord picks the Russian plural form of "вопрос" for n.
func questionsWord(n int) string {
	n %= 100
	if n >= 11 && n <= 14 {
		return "вопросов"
	}
	switch n % 10 {
	case 1:
		return "вопрос"
	case 2, 3, 4:
		return "вопроса"
	default:
		return "вопросов"
	}
}

// colorDot approximates a "#rrggbb" card color with a colored circle emoji.
func colorDot(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return "⚪"
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "⚪"
	}

	r := float64(rgb >> 16 & 0xff)
	g := float64(rgb >> 8 & 0xff)
	b := float64(rgb & 0xff)

	hi, lo := max(r, g, b), min(r, g, b)
	if hi-lo < 32 {
		if hi < 128 {
			return "⚫"
		}
		return "⚪"
	}

	var hue float64
	switch hi {
	case r:
		hue = 60 * (g - b) / (hi - lo)
	case g:
		hue = 60*(b-r)/(hi-lo) + 120
	default:
		hue = 60*(r-g)/(hi-lo) + 240
	}
	if hue < 0 {
		hue += 360
	}

	switch {
	case hue < 15 || hue >= 330:
		return "🔴"
	case hue < 45:
		return "🟠"
	case hue < 70:
		return "🟡"
	case hue < 170:
		return "🟢"
	case hue < 260:
		return "🔵"
	default:
		return "🟣"
	}
}
