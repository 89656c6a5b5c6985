package repository

import (
	"time"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByRole(role model.UserRole) ([]model.User, error)
	Update(user *model.User) error
	UpdateLastLogin(id uint, at time.Time) error
	SetActive(id uint, active bool) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByRole(role model.UserRole) ([]model.User, error) {
	logger.Debug("Finding users by role in database", map[string]interface{}{
		"role": role,
	})

	var users []model.User
	err := r.db.Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to find users by role in database", err, map[string]interface{}{
			"role": role,
		})
		return nil, err
	}

	logger.Debug("Users found by role in database", map[string]interface{}{
		"role":  role,
		"count": len(users),
	})
	return users, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(id uint, at time.Time) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", at).Error; err != nil {
		logger.Error("Failed to update last login timestamp", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}

func (r *userRepository) SetActive(id uint, active bool) error {
	logger.Debug("Updating user active flag in database", map[string]interface{}{
		"user_id": id,
		"active":  active,
	})

	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("is_active", active).Error; err != nil {
		logger.Error("Failed to update user active flag in database", err, map[string]interface{}{
			"user_id": id,
			"active":  active,
		})
		return err
	}
	return nil
}
