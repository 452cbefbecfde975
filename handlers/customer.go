package handlers

import (
	"errors"
	"net/http"
	"strings"

	"storefront-api/cart"
	"storefront-api/checkout"
	"storefront-api/middleware"
	"storefront-api/payment"
	"storefront-api/repository"

	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest overrides the saved profile for this order only
type PlaceOrderRequest struct {
	Address      string `json:"address"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	Note         string `json:"note"`
}

// PlaceOrder charges the cart and stores the order (customer only)
func (h *Handler) PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	user, err := h.Users.GetByID(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Fall back to the saved delivery profile
	address := strings.TrimSpace(req.Address)
	if address == "" {
		address = user.DeliveryAddress()
	}
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A delivery address is required"})
		return
	}
	contactName := req.ContactName
	if contactName == "" {
		contactName = user.FullName()
	}
	contactPhone := req.ContactPhone
	if contactPhone == "" {
		contactPhone = user.Phone
	}

	result, err := h.Checkout.PlaceOrder(c.Request.Context(), customerID, checkout.Request{
		UserID:       customerID,
		Address:      address,
		ContactName:  contactName,
		ContactPhone: contactPhone,
		Note:         req.Note,
	})
	if err != nil {
		var gerr *payment.GatewayError
		switch {
		case errors.Is(err, checkout.ErrCheckoutInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "Your order is already being placed"})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		case errors.Is(err, cart.ErrCartUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Your cart could not be loaded. Please try again."})
		case errors.Is(err, checkout.ErrNoGateway):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments are not available right now"})
		case errors.As(err, &gerr), errors.Is(err, payment.ErrInvalidAmount):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": payment.Message(err, "Payment failed. Please try again.")})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Order placed successfully",
		"order":        result.Order,
		"clientSecret": result.ClientSecret,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.Orders.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order with its status history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	order, err := h.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	if order.UserID == nil || *order.UserID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	history, err := h.Orders.History(c.Request.Context(), order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "history": history})
}
