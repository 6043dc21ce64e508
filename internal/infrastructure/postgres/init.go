package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vendaro/storefront-service/internal/config"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.StorefrontConfig) *gorm.DB {
	dsn := cfg.StorefrontDB.Dsn
	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the repositories map onto domain errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	err = db.AutoMigrate(
		&models.StoreModel{},
		&models.StoreSettingsModel{},
		&models.ProductModel{},
		&models.ProductVariantModel{},
		&models.CartModel{},
		&models.CartLineModel{},
		&models.OrderModel{},
		&models.OrderLineModel{},
		&models.BuyerModel{},
	)
	if err != nil {
		log.Fatalf("failed to migrate db: %v\n", err.Error())
	}

	return db
}
