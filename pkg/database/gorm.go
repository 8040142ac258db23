package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"notes-app/internal/model"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLiteDSN names a private in-memory database. It lives exactly as
// long as the process.
const DefaultSQLiteDSN = "file:notes?mode=memory"

func getLogger(verbose bool) logger.Interface {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

// configureConnectionPool pins the pool to one connection: every new
// connection to an in-memory SQLite database would see an empty database.
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return nil
}

// NewSQLiteDB opens an in-memory SQLite database and migrates the notes table.
func NewSQLiteDB(dsn string, verbose bool) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}

	db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
		Logger: getLogger(verbose),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Note{}); err != nil {
		return nil, fmt.Errorf("migrate notes: %w", err)
	}

	return db, nil
}
