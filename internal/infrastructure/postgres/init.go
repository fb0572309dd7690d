package postgres

import (
	"log"

	"github.com/LavaJover/shvark-payment-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a gorm handle with driver errors translated, so unique
// violations surface as gorm.ErrDuplicatedKey on every dialect.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	db, err := Open(postgres.Open(cfg.PaymentDB.Dsn))
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	return db
}
