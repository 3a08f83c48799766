package db

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"minsu-content-backend/config"
	"minsu-content-backend/internal/defaults"
	"minsu-content-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.RoomInfo{},
		&model.Image{},
		&model.Video{},
		&model.ContactInfo{},
		&model.AdminUser{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// Seed populates the singleton tables from the compiled-in defaults when they
// are empty, and creates the admin account named in the configuration if it
// does not exist yet. Existing rows are never touched.
func Seed(db *gorm.DB, auth *config.AuthConfig, logger *zap.Logger) error {
	var roomCount int64
	if err := db.Model(&model.RoomInfo{}).Count(&roomCount).Error; err != nil {
		return fmt.Errorf("failed to count room_info rows: %w", err)
	}
	if roomCount == 0 {
		room := defaults.RoomInfo()
		if err := db.Create(&room).Error; err != nil {
			return fmt.Errorf("failed to seed room_info: %w", err)
		}
		logger.Info("seeded room_info singleton", zap.String("room_name", room.RoomName))
	}

	var contactCount int64
	if err := db.Model(&model.ContactInfo{}).Count(&contactCount).Error; err != nil {
		return fmt.Errorf("failed to count contact_info rows: %w", err)
	}
	if contactCount == 0 {
		contact := defaults.ContactInfo()
		if err := db.Create(&contact).Error; err != nil {
			return fmt.Errorf("failed to seed contact_info: %w", err)
		}
		logger.Info("seeded contact_info singleton")
	}

	if auth.AdminEmail == "" || auth.AdminPassword == "" {
		logger.Warn("auth.admin_email/admin_password not configured; no admin account seeded")
		return nil
	}

	var admin model.AdminUser
	err := db.Where("email = ?", auth.AdminEmail).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = model.AdminUser{Email: auth.AdminEmail}
		if err := admin.SetPassword(auth.AdminPassword, auth.BcryptCost); err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		logger.Info("seeded admin account", zap.String("email", auth.AdminEmail))
		return nil
	}
	return err
}
