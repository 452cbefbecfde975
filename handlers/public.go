package handlers

import (
	"errors"
	"net/http"

	"storefront-api/models"
	"storefront-api/repository"
	"storefront-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListMenu returns the menu, optionally filtered by food type (public)
func (h *Handler) ListMenu(c *gin.Context) {
	foodType := models.FoodType(c.Query("foodType"))
	if foodType != "" && !foodType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown food type", "foodTypes": models.FoodTypes})
		return
	}

	items, err := h.Menu.List(c.Request.Context(), foodType)
	if err != nil {
		h.Log.Error("menu_list_failed", requestID(c), "Failed to load menu", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"menu":  items,
	})
}

// GetMenuItem returns a single menu item with its option lists
func (h *Handler) GetMenuItem(c *gin.Context) {
	item, err := h.Menu.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *Handler) ListFoodTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"foodTypes": models.FoodTypes})
}

// GetRestaurantInfo returns the storefront profile
func (h *Handler) GetRestaurantInfo(c *gin.Context) {
	info, err := h.Restaurant.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant info has not been set up"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load restaurant info"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": info})
}

// GetStateMachineInfo returns the order reconciliation state machine
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": []models.OrderStatus{models.StatusPaid},
		"description":     "Order payment reconciliation state machine",
	})
}
