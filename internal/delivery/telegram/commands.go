package telegram

import (
	"context"
)

// Bot commands.
const (
	cmdStart   = "start"
	cmdQuizzes = "quizzes"
	cmdHelp    = "help"
)

func (h *Handler) commandHandler(command string) HandlerFunc {
	switch command {
	case cmdStart:
		return h.handleStart()
	case cmdQuizzes:
		return h.handleQuizzes()
	case cmdHelp:
		return h.handleHelp()
	default:
		return h.handleUnknown()
	}
}

// handleStart drops the chat's navigator, so the chat starts from a clean state.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.navigators.Delete(chatID)

		if err := h.send(newMessage(chatID, welcomeMessage())); err != nil {
			return err
		}
		return h.showHome(chatID)
	}
}

// handleQuizzes abandons any attempt and lists the catalog in a new message.
func (h *Handler) handleQuizzes() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.showHome(chatID)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMessage()))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

// handleText answers free text. All navigation happens through buttons.
func (h *Handler) handleText() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, md(msgUseButtons)))
	}
}

func (h *Handler) showHome(chatID int64) error {
	nav := h.navigators.Get(chatID)
	nav.GoHome()

	return h.sendScreen(chatID, h.render(chatID, nav))
}
