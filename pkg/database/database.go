package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imadegun/prod-tracking-app/pkg/config"
)

// DB is the global database instance
var DB *gorm.DB

// InitDB initializes the database connection with configuration
func InitDB(dbConfig *config.DBConfig) (*gorm.DB, error) {
	var err error

	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	DB, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		zap.L().Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		zap.L().Error("Failed to get database object", zap.Error(err))
		return nil, err
	}

	// Connection pool settings from config
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return DB, nil
}

// MigrateModels runs migrations for the provided models
func MigrateModels(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// SetDB replaces the global database instance. Used by tests to point the
// handlers at an in-memory database.
func SetDB(db *gorm.DB) {
	DB = db
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
