package service

import (
	"errors"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressInput carries the fields a customer provides for a new address.
type AddressInput struct {
	Phone      string
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
}

type AddressService interface {
	CreateAddress(userID uint, input AddressInput) (*model.Address, error)
	GetUserAddresses(userID uint) ([]model.Address, error)
	SelectDefaultAddress(userID, addressID uint) (*model.Address, error)
	DeleteAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

// CreateAddress adds a shipping address. The user's first address becomes
// the default automatically.
func (s *addressService) CreateAddress(userID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"city":    input.City,
	})

	count, err := s.addressRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		UserID:     userID,
		Phone:      input.Phone,
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		Country:    input.Country,
		PostalCode: input.PostalCode,
		IsDefault:  count == 0,
	}

	if err := s.addressRepo.Create(address); err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Address created successfully", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
		"is_default": address.IsDefault,
	})
	return address, nil
}

func (s *addressService) GetUserAddresses(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

// SelectDefaultAddress makes the given address the user's only default.
func (s *addressService) SelectDefaultAddress(userID, addressID uint) (*model.Address, error) {
	logger.Info("Selecting default address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.findOwnedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.addressRepo.SetDefault(userID, address.ID); err != nil {
		logger.Error("Failed to set default address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return nil, err
	}

	address.IsDefault = true
	return address, nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	logger.Info("Deleting address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.findOwnedAddress(userID, addressID)
	if err != nil {
		return err
	}

	return s.addressRepo.Delete(address.ID)
}

// findOwnedAddress hides other users' addresses behind a not found error.
func (s *addressService) findOwnedAddress(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		logger.Warn("Address access denied: not owner", map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return nil, ErrAddressNotFound
	}
	return address, nil
}
