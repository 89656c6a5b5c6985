package db

import (
	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"github.com/eezystore/eezystore-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Address{},
		&model.Product{},
		&model.Rating{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedAdmin creates the initial admin account if no admin exists yet.
// Customer accounts can only be approved by an admin, so a fresh install
// needs one to bootstrap from.
func SeedAdmin(email, password string) error {
	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Admin account already exists, skipping seed", map[string]interface{}{
			"admin_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(admin).Error; err != nil {
		logger.Error("Failed to seed admin account", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	logger.Info("Admin account seeded successfully", map[string]interface{}{
		"user_id": admin.ID,
		"email":   email,
	})
	return nil
}
