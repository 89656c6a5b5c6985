package repository

import (
	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByUserID(userID uint) ([]model.Address, error)
	FindByID(id uint) (*model.Address, error)
	CountByUserID(userID uint) (int64, error)
	Delete(id uint) error
	SetDefault(userID, addressID uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"user_id": address.UserID,
		"city":    address.City,
	})

	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
		})
		return err
	}

	logger.Debug("Address created in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})
	return nil
}

func (r *addressRepository) FindByUserID(userID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Address{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Delete removes the address row and nulls the reference on any order
// that shipped to it. Both run in one transaction so no order is ever
// left pointing at a missing address.
func (r *addressRepository) Delete(id uint) error {
	logger.Debug("Deleting address from database", map[string]interface{}{
		"address_id": id,
	})

	tx := r.db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction for deleting address", tx.Error, map[string]interface{}{
			"address_id": id,
		})
		return tx.Error
	}

	if err := tx.Model(&model.Order{}).Where("address_id = ?", id).Update("address_id", nil).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to detach address from orders", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}

	if err := tx.Delete(&model.Address{}, id).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete address from database", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit transaction for deleting address", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}
	return nil
}

// SetDefault clears the default flag on every address the user owns, then
// sets it on the chosen one. Both updates run in one transaction so the
// "at most one default" rule holds at commit.
func (r *addressRepository) SetDefault(userID, addressID uint) error {
	logger.Debug("Setting default address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	tx := r.db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction for setting default address", tx.Error, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return tx.Error
	}

	if err := tx.Model(&model.Address{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to unset default addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	if err := tx.Model(&model.Address{}).Where("id = ? AND user_id = ?", addressID, userID).Update("is_default", true).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to set address as default", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit transaction for setting default address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return err
	}

	logger.Debug("Default address set successfully", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})
	return nil
}
