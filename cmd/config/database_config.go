package config

import (
	"fmt"
	"recipedia/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the recipe catalog database. The DSN is assembled from the
// DB_HOST, DB_USER, DB_PASSWORD, DB_NAME and DB_PORT config keys.
func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
