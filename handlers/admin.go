package handlers

import (
	"errors"
	"net/http"
	"time"

	"storefront-api/analytics"
	"storefront-api/events"
	"storefront-api/middleware"
	"storefront-api/models"
	"storefront-api/order"
	"storefront-api/repository"
	"storefront-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns every order, newest first, with a status summary
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	orders, err := h.Orders.ListAll(c.Request.Context(), status)
	if err != nil {
		h.Log.Error("admin_orders_failed", requestID(c), "Failed to list orders", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	summary := analytics.Summarize(orders, nil)
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary.ByStatus,
		"total_revenue": summary.TotalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminOrderAnalytics aggregates paid revenue per day. ?tz= picks the day boundary.
func (h *Handler) AdminOrderAnalytics(c *gin.Context) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time zone"})
			return
		}
		loc = l
	}

	orders, err := h.Orders.ListAll(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": analytics.Summarize(orders, loc)})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// AdminUpdateOrderStatus reconciles an order's payment status
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	rec, prev, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status,
		statemachine.ActorAdmin, middleware.GetUserID(c), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Cannot change order status",
				"reason": err.Error(),
			})
		default:
			h.Log.Error("order_status_failed", requestID(c), "Failed to update order status", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	h.publish(c, events.TypeOrderStatusChanged, *rec)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        rec.ID,
		"previous_status": prev,
		"new_status":      rec.Status,
		"valid_next":      statemachine.ValidTransitionsFrom(rec.Status),
	})
}

func (h *Handler) publish(c *gin.Context, typ string, rec models.OrderRecord) {
	if h.Publisher == nil {
		return
	}
	doc, err := order.Document(rec)
	if err != nil {
		h.Log.Error("order_document_failed", requestID(c), "Could not render order document", err)
	}
	if err := h.Publisher.Publish(c.Request.Context(), events.OrderEvent(typ, rec, doc)); err != nil {
		h.Log.Error("order_event_failed", requestID(c), "Could not publish order event", err)
	}
}

// AdminGetAllUsers returns all users, optionally by ?role=
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context(), models.UserRole(c.Query("role")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// LiveOrders streams order events to an admin dashboard over a websocket
func (h *Handler) LiveOrders(c *gin.Context) {
	if h.Hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed is disabled"})
		return
	}
	h.Hub.ServeWS(c)
}
