package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eezystore/eezystore-backend/internal/app/service"
	apperrors "github.com/eezystore/eezystore-backend/internal/errors"
	"github.com/eezystore/eezystore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type CreateAddressRequest struct {
	Phone      string `json:"phone" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// GetAddresses lists the user's addresses, default first
// GET /api/v1/addresses/
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	addresses, err := ctrl.addressService.GetUserAddresses(userID)
	if err != nil {
		log.Error("Failed to get addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress adds a shipping address
// POST /api/v1/addresses/
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid address request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.CreateAddress(userID, service.AddressInput{
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		log.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created",
		"address": address,
	})
}

// SelectDefaultAddress marks an address as the default
// PATCH /api/v1/addresses/select/:id/
func (ctrl *AddressController) SelectDefaultAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	address, err := ctrl.addressService.SelectDefaultAddress(userID, uint(addressID))
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
			return
		}
		log.Error("Failed to select default address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		apperrors.InternalError(c, "Failed to select default address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Default address updated",
		"address": address,
	})
}

// DeleteAddress removes an address
// DELETE /api/v1/addresses/:id/
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	if err := ctrl.addressService.DeleteAddress(userID, uint(addressID)); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
			return
		}
		log.Error("Failed to delete address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		apperrors.InternalError(c, "Failed to delete address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted",
	})
}
