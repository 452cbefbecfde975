package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-api/cart"
	"storefront-api/middleware"
	"storefront-api/repository"

	"github.com/gin-gonic/gin"
)

type AddCartItemRequest struct {
	ItemID      string   `json:"itemId" binding:"required"`
	Quantity    int      `json:"quantity" binding:"omitempty,min=1"`
	Sides       []string `json:"sides"`
	Drink       string   `json:"drink"`
	Extras      []string `json:"extras"`
	Ingredients []string `json:"ingredients"`
}

// UpdateQuantityRequest targets the line at Index when given, otherwise the
// first line holding ItemID. A quantity of zero or less removes the line.
type UpdateQuantityRequest struct {
	ItemID   string `json:"itemId"`
	Index    *int   `json:"index"`
	Quantity *int   `json:"quantity" binding:"required"`
}

func (h *Handler) cartResponse(c cart.Cart) gin.H {
	totals := c.Totals(h.Fees)
	return gin.H{
		"items":         c.Lines(),
		"count":         c.Count(),
		"totalQuantity": c.TotalQuantity(),
		"totals":        totals,
		"display":       totals.Formatted(),
	}
}

// GetCart returns the caller's cart with its totals
func (h *Handler) GetCart(c *gin.Context) {
	ct, err := h.Carts.Load(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.cartError(c, err, ct)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": h.cartResponse(ct)})
}

// CartTotals returns only the price breakdown
func (h *Handler) CartTotals(c *gin.Context) {
	ct, err := h.Carts.Load(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.cartError(c, err, ct)
		return
	}
	totals := ct.Totals(h.Fees)
	c.JSON(http.StatusOK, gin.H{"totals": totals, "display": totals.Formatted()})
}

// AddCartItem appends a customized menu item to the cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ct, err := h.Carts.AddItem(c.Request.Context(), middleware.GetUserID(c), req.ItemID, req.Quantity, cart.Selections{
		Sides:       req.Sides,
		Drink:       req.Drink,
		Extras:      req.Extras,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		h.cartError(c, err, ct)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to cart", "cart": h.cartResponse(ct)})
}

// UpdateCartQuantity sets the quantity of one line
func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := middleware.GetUserID(c)
	var (
		ct  cart.Cart
		err error
	)
	switch {
	case req.Index != nil:
		ct, err = h.Carts.UpdateQuantityAt(c.Request.Context(), owner, *req.Index, *req.Quantity)
	case req.ItemID != "":
		ct, err = h.Carts.UpdateQuantity(c.Request.Context(), owner, req.ItemID, *req.Quantity)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId or index is required"})
		return
	}
	if err != nil {
		h.cartError(c, err, ct)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": h.cartResponse(ct)})
}

// EditCartItem replaces the selections of the line at :index and re-prices it
// from the current menu.
func (h *Handler) EditCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return
	}
	var sel cart.Selections
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := middleware.GetUserID(c)
	current, err := h.Carts.Load(c.Request.Context(), owner)
	if err != nil {
		h.cartError(c, err, current)
		return
	}
	if _, ok := current.Line(index); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": cart.ErrLineNotFound.Error()})
		return
	}

	ct, err := h.Carts.EditSelections(c.Request.Context(), owner, index, sel)
	if err != nil {
		h.cartError(c, err, ct)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated", "cart": h.cartResponse(ct)})
}

// RemoveCartItem drops a line. With ?index= the line at that position is
// removed when it still holds :itemId.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	owner := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	var (
		ct  cart.Cart
		err error
	)
	if raw, ok := c.GetQuery("index"); ok {
		index, perr := strconv.Atoi(raw)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
			return
		}
		ct, err = h.Carts.RemoveAt(c.Request.Context(), owner, itemID, index)
	} else {
		ct, err = h.Carts.Remove(c.Request.Context(), owner, itemID)
	}
	if err != nil {
		h.cartError(c, err, ct)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": h.cartResponse(ct)})
}

func (h *Handler) ClearCart(c *gin.Context) {
	ct := h.Carts.Clear(c.Request.Context(), middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": h.cartResponse(ct)})
}

// cartError maps cart failures; the unchanged cart is returned so the client can recover
func (h *Handler) cartError(c *gin.Context, err error, ct cart.Cart) {
	switch {
	case errors.Is(err, cart.ErrCartUnavailable):
		h.Log.Error("cart_unavailable", requestID(c), "Cart storage read failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": cart.ErrCartUnavailable.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found", "cart": h.cartResponse(ct)})
	case errors.Is(err, cart.ErrMenuItemUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": cart.ErrMenuItemUnavailable.Error(), "cart": h.cartResponse(ct)})
	case errors.Is(err, cart.ErrSideRequired),
		errors.Is(err, cart.ErrUnknownOption),
		errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "cart": h.cartResponse(ct)})
	default:
		h.Log.Error("cart_update_failed", requestID(c), "Cart update failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}
