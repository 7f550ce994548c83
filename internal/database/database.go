package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"contacthub/internal/logger"
	"contacthub/internal/models"
)

// zapWriter routes GORM's own log lines through the shared zap logger.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.GetLogger().Warnf(format, args...)
}

// Open connects to the contact store for the given driver and migrates the
// contacts collection.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zapWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		// SQLite allows a single writer; one connection also keeps
		// in-memory databases from splitting across connections.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.Contact{}); err != nil {
		return nil, fmt.Errorf("failed to migrate contacts: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
