package db

import (
	"fmt"

	gormModels "southern-cross/frms/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	return db, nil
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormModels.Airport{},
		&gormModels.DutyRecord{},
		&gormModels.FlightSector{},
	)
}
