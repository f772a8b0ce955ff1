package mock

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "nutrigo/internal/log"
	"nutrigo/models"
)

// New returns an in-memory sqlite corpus seeded with representative food
// records for tests.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:nutrigo-mock-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Food{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	foods := []models.Food{
		{
			Name:            "Masala Dosa",
			Category:        "Grains",
			CaloriesPer100:  168,
			ProteinPer100:   3.9,
			CarbsPer100:     29,
			FatPer100:       3.7,
			DefaultUnit:     "piece",
			DefaultQuantity: 1,
			CommonUnits:     models.JoinCommonUnits([]string{"piece", "small", "large"}),
			Origin:          "corpus",
		},
		{
			Name:            "Vegetable Biryani",
			Category:        "Grains",
			CaloriesPer100:  142,
			ProteinPer100:   3.2,
			CarbsPer100:     24,
			FatPer100:       3.5,
			DefaultUnit:     "medium portion (200g)",
			DefaultQuantity: 1,
			CommonUnits:     models.JoinCommonUnits([]string{"small portion (150g)", "medium portion (200g)", "bowl"}),
			Origin:          "corpus",
		},
		{
			Name:            "Mango Lassi",
			Category:        "Beverages",
			CaloriesPer100:  89,
			ProteinPer100:   2.6,
			CarbsPer100:     15,
			FatPer100:       2.1,
			IsLiquid:        true,
			DefaultUnit:     "glass (250ml)",
			DefaultQuantity: 1,
			CommonUnits:     models.JoinCommonUnits([]string{"glass (250ml)", "cup (240ml)"}),
			Origin:          "corpus",
		},
	}

	return db.WithContext(ctx).Create(&foods).Error
}
