package database

import (
	"fmt"

	"github.com/glucheck/backend/config"
	"github.com/glucheck/backend/logger"
	"github.com/glucheck/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the PostgreSQL connection and runs migrations.
func InitDB(c *config.Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresConfig.Host, c.PostgresConfig.User, c.PostgresConfig.Password,
		c.PostgresConfig.DBName, c.PostgresConfig.Port, c.PostgresConfig.SSLMode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	logger.Info("database connection established")

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Prediction{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations completed")
	return nil
}

func Close() {
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Warn("failed to retrieve sql.DB for close")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("error closing the database connection")
	}
}

func GetDBInstance() *gorm.DB {
	return DB
}
