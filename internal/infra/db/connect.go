package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applogger "github.com/Nateight8/trading-mongoparl/internal/infra/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// zerologWriter adapts zerolog.Logger to gorm logger.Writer interface
type zerologWriter struct {
	logger zerolog.Logger
}

func (w *zerologWriter) Printf(format string, v ...interface{}) {
	w.logger.Warn().Msg(fmt.Sprintf(format, v...))
}

// Connect opens the journal database with the named driver and checks that it
// answers.
func Connect(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s dsn required", driver)
	}

	cfg := &gorm.Config{Logger: gormLogger()}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "":
		return openSQLite(ctx, dsn, cfg)
	case DriverPostgres:
		return openPostgres(ctx, dsn, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func gormLogger() logger.Interface {
	writer := &zerologWriter{logger: applogger.Logger.With().Str("component", "gorm").Logger()}

	return logger.New(
		writer,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
