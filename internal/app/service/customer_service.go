package service

import (
	"errors"

	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrCustomerAlreadyActive  = errors.New("customer account is already active")
	ErrCustomerAlreadyInUse   = errors.New("customer account is already in use")
	ErrCustomerAlreadyBlocked = errors.New("customer account is already blocked")
)

// CustomerService covers the admin panel's customer lifecycle: approving
// fresh signups, blocking misbehaving accounts, and unblocking them.
type CustomerService interface {
	GetCustomers() ([]model.User, error)
	ApproveCustomer(userID uint) (*model.User, error)
	BlockCustomer(userID uint) (*model.User, error)
	UnblockCustomer(userID uint) (*model.User, error)
}

type customerService struct {
	userRepo repository.UserRepository
}

func NewCustomerService(userRepo repository.UserRepository) CustomerService {
	return &customerService{userRepo: userRepo}
}

func (s *customerService) GetCustomers() ([]model.User, error) {
	return s.userRepo.FindByRole(model.RoleCustomer)
}

// ApproveCustomer activates a pending signup. Accounts with a login
// history are past approval; blocked ones go through unblock instead.
func (s *customerService) ApproveCustomer(userID uint) (*model.User, error) {
	logger.Info("Approving customer", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.findCustomer(userID)
	if err != nil {
		return nil, err
	}

	if user.IsActive {
		logger.Warn("Approve failed: customer already active", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCustomerAlreadyActive
	}
	if user.LastLoginAt != nil {
		logger.Warn("Approve failed: customer account already in use", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCustomerAlreadyInUse
	}

	if err := s.userRepo.SetActive(userID, true); err != nil {
		return nil, err
	}

	user.IsActive = true
	logger.Info("Customer approved successfully", map[string]interface{}{
		"user_id": userID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *customerService) BlockCustomer(userID uint) (*model.User, error) {
	logger.Info("Blocking customer", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.findCustomer(userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Block failed: customer already blocked", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCustomerAlreadyBlocked
	}

	if err := s.userRepo.SetActive(userID, false); err != nil {
		return nil, err
	}

	user.IsActive = false
	logger.Info("Customer blocked successfully", map[string]interface{}{
		"user_id": userID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *customerService) UnblockCustomer(userID uint) (*model.User, error) {
	logger.Info("Unblocking customer", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.findCustomer(userID)
	if err != nil {
		return nil, err
	}

	if user.IsActive {
		logger.Warn("Unblock failed: customer already active", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCustomerAlreadyActive
	}

	if err := s.userRepo.SetActive(userID, true); err != nil {
		return nil, err
	}

	user.IsActive = true
	logger.Info("Customer unblocked successfully", map[string]interface{}{
		"user_id": userID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *customerService) findCustomer(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if user.Role != model.RoleCustomer {
		return nil, ErrCustomerNotFound
	}
	return user, nil
}
