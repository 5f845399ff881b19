package db

import (
	"log/slog"
	"time"

	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/domain/investment"
	"lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/user"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	slog.Info("gorm: connected")
	return db, nil
}

// Migrate creates or updates the schema for every lending aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&asset.Asset{},
		&asset.CollateralEntry{},
		&loan.Loan{},
		&trust.Score{},
		&investment.Investment{},
	)
}
