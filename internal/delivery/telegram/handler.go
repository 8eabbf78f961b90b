package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/service"
)

// Sender is the part of the Bot API client the handler uses. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type NavigatorStorage interface {
	Get(chatID int64) *service.Navigator
	Delete(chatID int64)
}

type ViewBuilder interface {
	Build(s entities.State) (entities.View, error)
}

type Handler struct {
	bot           Sender
	logger        *zap.Logger
	navigators    NavigatorStorage
	views         ViewBuilder
	updateTimeout int
}

func NewHandler(
	bot Sender,
	logger *zap.Logger,
	navigators NavigatorStorage,
	views ViewBuilder,
	updateTimeout int,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		navigators:    navigators,
		views:         views,
		updateTimeout: updateTimeout,
	}
}

// Run handles updates one at a time until ctx is done or the update channel is closed.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.updateTimeout

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		_ = h.withErrorHandling(h.commandHandler(update.Message.Command()))(ctx, chatID)
		return
	}

	_ = h.withErrorHandling(h.handleText())(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	_, err := h.bot.Send(c)
	return err
}

// sendScreen posts every page of s as a new message.
func (h *Handler) sendScreen(chatID int64, s screen) error {
	for i, page := range s.pages {
		msg := newMessage(chatID, page)
		if i == len(s.pages)-1 && s.kb != nil {
			msg.ReplyMarkup = s.kb
		}
		if err := h.send(msg); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) sendError(chatID int64, text string) {
	if err := h.send(newMessage(chatID, md(text))); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
