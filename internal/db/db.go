package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/utils"
)

// Open connects to a libsql database and verifies the connection.
func Open(ctx context.Context, url, authToken string) (*sql.DB, error) {
	dsn := url
	if authToken != "" {
		dsn = fmt.Sprintf("%s?authToken=%s", url, authToken)
	}

	database, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", url, err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(25)
	database.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return database, nil
}

// OpenFromEnv opens the database named by TURSO_DATABASE_URL and
// TURSO_AUTH_TOKEN.
func OpenFromEnv(ctx context.Context) (*sql.DB, error) {
	env, err := utils.LoadEnv([]string{"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN"})
	if err != nil {
		return nil, fmt.Errorf("failed to load db env: %w", err)
	}
	return Open(ctx, env["TURSO_DATABASE_URL"], env["TURSO_AUTH_TOKEN"])
}

// Close closes the database connection safely
func Close(database *sql.DB) {
	if database == nil {
		return
	}
	if err := database.Close(); err != nil {
		logger.Error("error closing database", zap.Error(err))
	}
}
