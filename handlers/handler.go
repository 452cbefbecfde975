package handlers

import (
	"errors"
	"net/http"
	"time"

	"storefront-api/cart"
	"storefront-api/checkout"
	"storefront-api/events"
	"storefront-api/logger"
	"storefront-api/models"
	"storefront-api/payment"
	"storefront-api/pricing"
	"storefront-api/repository"

	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies shared by every route
type Handler struct {
	Menu       *repository.MenuRepository
	Orders     *repository.OrderRepository
	Restaurant *repository.RestaurantRepository
	Users      *repository.UserRepository
	Carts      *cart.Service
	Checkout   *checkout.Service
	Gateway    payment.Gateway
	Hub        *events.Hub
	Publisher  events.Publisher
	Fees       pricing.FeeSchedule
	JWTSecret  []byte
	JWTTTL     time.Duration
	Log        *logger.Logger
}

// validationFailed answers 400 with per-field messages when err is a validation error
func validationFailed(c *gin.Context, err error) bool {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verrs})
		return true
	}
	return false
}

func requestID(c *gin.Context) string {
	return logger.RequestID(c.Request.Context())
}
