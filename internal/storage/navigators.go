package storage

import (
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/service"
)

// NavigatorStorage keeps one in-memory Navigator per chat.
// Navigators are created on first use and loaded with the shared catalog.
type NavigatorStorage struct {
	mu         sync.RWMutex
	navigators map[int64]*service.Navigator
	catalog    []entities.Quiz
	logger     *zap.Logger
}

// NewNavigatorStorage creates a storage handing out navigators over catalog.
// The catalog is shared read-only between all chats.
func NewNavigatorStorage(catalog []entities.Quiz, logger *zap.Logger) *NavigatorStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigatorStorage{
		navigators: make(map[int64]*service.Navigator),
		catalog:    catalog,
		logger:     logger,
	}
}

// Get returns the navigator of a chat, creating it in the home view if needed.
func (s *NavigatorStorage) Get(chatID int64) *service.Navigator {
	s.mu.RLock()
	nav, ok := s.navigators[chatID]
	s.mu.RUnlock()
	if ok {
		return nav
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if nav, ok = s.navigators[chatID]; ok {
		return nav
	}

	nav = service.NewNavigator(s.logger.With(zap.Int64("chat_id", chatID)))
	nav.Load(s.catalog)
	s.navigators[chatID] = nav

	return nav
}

// Delete forgets the navigator of a chat.
func (s *NavigatorStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.navigators, chatID)
}
