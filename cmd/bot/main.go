package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/config"
	"github.com/aliskhannn/quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/quiz-bot/internal/infra/sqlite"
	"github.com/aliskhannn/quiz-bot/internal/logger"
	"github.com/aliskhannn/quiz-bot/internal/repository"
	"github.com/aliskhannn/quiz-bot/internal/service"
	"github.com/aliskhannn/quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("bot stopped with error", zap.Error(err))
	}
	_ = zl.Sync()
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newCatalogSource(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeSource()

	catalog, err := service.NewCatalogService(source, zl).Load(ctx)
	if err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("create bot api: %w", err)
	}
	bot.Debug = cfg.Bot.Debug
	zl.Info("authorized on account", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Запустить бота",
		},
		{
			Command:     "quizzes",
			Description: "Выбрать викторину",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	prefixes := service.ExplanationPrefixes{
		Correct:   cfg.Explanation.CorrectPrefix,
		Incorrect: cfg.Explanation.IncorrectPrefix,
	}

	handler := telegram.NewHandler(
		bot,
		zl,
		storage.NewNavigatorStorage(catalog, zl),
		service.NewViewBuilder(prefixes),
		cfg.Bot.UpdateTimeout,
	)

	err = handler.Run(ctx)
	bot.StopReceivingUpdates()
	if errors.Is(err, context.Canceled) {
		zl.Info("shutdown signal received")
		return nil
	}
	return err
}

// newCatalogSource opens the configured catalog source. The returned func releases it.
func newCatalogSource(ctx context.Context, cfg *config.Config, zl *zap.Logger) (service.CatalogSource, func(), error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceSQLite:
		db, err := sqlite.Open(ctx, cfg.Catalog.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite catalog: %w", err)
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate sqlite catalog: %w", err)
		}
		return sqlite.NewCatalogRepository(db), func() { _ = db.Close() }, nil

	case config.CatalogSourcePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return pgrepo.NewCatalogRepository(postgres.NewTransactor(pool)), pool.Close, nil

	default:
		return repository.NewFileCatalogRepository(cfg.Catalog.Path, zl), func() {}, nil
	}
}
