package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"heartguard-backend/internal/config"
	"heartguard-backend/internal/models"
)

// DB is the shared connection handle used by handlers and repositories.
var DB *gorm.DB

// Connect opens the MySQL connection and migrates the schema.
func Connect(cfg config.DBConfig) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Migrate creates or updates every table. Parents come first so the
// restrict-on-delete foreign keys can be created.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Doctor{},
		&models.Prediction{},
		&models.Report{},
		&models.Appointment{},
		&models.HealthData{},
		&models.Message{},
		&models.Notification{},
		&models.Medication{},
		&models.TreatmentPlan{},
		&models.Suggestion{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
