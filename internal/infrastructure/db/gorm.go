package db

import (
	"log"
	"time"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// The pool-tuned ping below is the single connectivity check.
		DisableAutomaticPing: true,
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
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates or updates every core table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&collateral.Collateral{},
		&loan.Loan{},
		&loan.Request{},
		&payment.Payment{},
		&auction.Auction{},
		&auction.Bid{},
	)
}
