package main

import (
	"fmt"

	"github.com/Antieqkers/antieq-wisma-bill/internal/database"
	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"

	"gorm.io/gorm"
)

// seedData creates the default admin account on first start.
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	if err := createDefaultAdmin(db); err != nil {
		return fmt.Errorf("failed to create default admin: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

func createDefaultAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("Default admin already exists, skipping")
		return nil
	}

	admin := &models.User{
		Username: "admin",
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		Status:   models.UserStatusActive,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Warn("Default admin created with username 'admin' and password 'admin123', change it immediately")
	return nil
}
