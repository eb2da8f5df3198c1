package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/bot"
	"github.com/sukalov/lyricsheet/internal/bot/sheets"
	"github.com/sukalov/lyricsheet/internal/db"
	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/lyrics"
	"github.com/sukalov/lyricsheet/internal/redis"
	"github.com/sukalov/lyricsheet/internal/songbook"
	"github.com/sukalov/lyricsheet/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := utils.LoadEnv([]string{"BOT_TOKEN"})
	if err != nil {
		log.Fatalf("required env missing: %v", err)
	}

	sheetBot, err := bot.New("sheetbot", env["BOT_TOKEN"])
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if err := logger.Init(sheetBot); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	database, err := db.OpenFromEnv(ctx)
	if err != nil {
		log.Fatalf("database initialization failed: %v", err)
	}
	defer db.Close(database)

	book := db.NewSongbook(database)
	if err := book.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate songbook: %v", err)
	}
	if err := book.Load(ctx); err != nil {
		log.Fatalf("failed to initialize songbook: %v", err)
	}

	var cache songbook.SheetCache
	if utils.Getenv("REDIS_URL", "") != "" {
		client, err := redis.NewClientFromEnv()
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer client.Close()

		ttl, err := utils.GetDuration("SHEET_CACHE_TTL", redis.DefaultTTL)
		if err != nil {
			log.Fatalf("%v", err)
		}
		cache = redis.NewSheetCache(client, ttl)
	} else {
		logger.Info("REDIS_URL not set, running without sheet cache")
	}

	library := songbook.New(book, cache, lyrics.NewService())
	handlers := sheets.NewSheetHandlers(library, book)

	logger.Info("sheetbot started", zap.Int("songs", book.Len()))
	sheetBot.Start(ctx, handlers.Handlers())
	logger.Info("sheetbot stopped")
}
