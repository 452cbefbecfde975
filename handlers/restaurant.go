package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront-api/models"
	"storefront-api/repository"

	"github.com/gin-gonic/gin"
)

// ── Menu Management ──────────────────────────────────────────────────────────

// AdminCreateMenuItem adds a menu item. Option lists may be sent either as
// {label, price} objects or as "Label(price)" strings.
func (h *Handler) AdminCreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = ""

	if err := h.Menu.Create(c.Request.Context(), &item); err != nil {
		if validationFailed(c, err) {
			return
		}
		h.Log.Error("menu_create_failed", requestID(c), "Failed to create menu item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	h.Log.Info("menu_item_created", requestID(c), "Menu item created", slog.String("item_id", item.ID))
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

// AdminUpdateMenuItem applies a partial update to a menu item
func (h *Handler) AdminUpdateMenuItem(c *gin.Context) {
	var patch models.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Menu.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		if validationFailed(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// AdminDeleteMenuItem removes a menu item. Carts holding it keep their snapshot.
func (h *Handler) AdminDeleteMenuItem(c *gin.Context) {
	if err := h.Menu.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ── Restaurant Profile ───────────────────────────────────────────────────────

// AdminSaveRestaurantInfo creates or replaces the storefront profile
func (h *Handler) AdminSaveRestaurantInfo(c *gin.Context) {
	var info models.RestaurantInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Restaurant.Save(c.Request.Context(), &info); err != nil {
		h.Log.Error("restaurant_save_failed", requestID(c), "Failed to save restaurant info", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save restaurant info"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant info saved", "restaurant": info})
}
