package handlers

import (
	"net/http"

	"storefront-api/payment"

	"github.com/gin-gonic/gin"
)

// PayRequest is the relay body; Amount is in minor currency units
type PayRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// Pay creates a payment intent on behalf of a client that holds no gateway keys
func (h *Handler) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	if h.Gateway == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments are not configured"})
		return
	}

	intent, err := h.Gateway.CreateIntent(c.Request.Context(), payment.IntentRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		h.Log.Error("relay_payment_failed", requestID(c), "Payment intent failed", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": payment.Message(err, err.Error())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentIntentId": intent.ID,
		"status":          intent.Status,
		"clientSecret":    intent.ClientSecret,
	})
}
