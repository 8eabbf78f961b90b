package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc handles one command or text message of a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports a failed or panicking handler to the chat
// with a generic message and keeps the update loop running.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) (err error) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("handler panic",
					zap.Int64("chat_id", chatID),
					zap.Any("panic", r),
				)
				h.sendError(chatID, msgInternalError)
				err = nil
			}
		}()

		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
