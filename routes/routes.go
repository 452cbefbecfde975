package routes

import (
	"storefront-api/handlers"
	"storefront-api/middleware"
	"storefront-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// Custom tags for request structs bound by gin
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := models.RegisterValidations(v); err != nil {
			panic(err)
		}
	}

	r.GET("/health", h.Health)

	// ── Payment relay ──────────────────────────────────────────────
	r.POST("/pay", h.Pay)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Menu & storefront (no auth needed)
		public.GET("/menu", h.ListMenu)
		public.GET("/menu/:id", h.GetMenuItem)
		public.GET("/food-types", h.ListFoodTypes)
		public.GET("/restaurant", h.GetRestaurantInfo)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(h.JWTSecret))
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleCustomer))
	{
		// Cart
		customer.GET("/cart", h.GetCart)
		customer.GET("/cart/totals", h.CartTotals)
		customer.POST("/cart/items", h.AddCartItem)
		customer.PUT("/cart/quantity", h.UpdateCartQuantity)
		customer.PUT("/cart/items/:index", h.EditCartItem)
		customer.DELETE("/cart/items/:itemId", h.RemoveCartItem)
		customer.DELETE("/cart", h.ClearCart)

		// Orders
		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		// Menu management
		admin.POST("/menu", h.AdminCreateMenuItem)
		admin.PUT("/menu/:id", h.AdminUpdateMenuItem)
		admin.DELETE("/menu/:id", h.AdminDeleteMenuItem)
		admin.PUT("/restaurant", h.AdminSaveRestaurantInfo)

		// Orders
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.GET("/orders/analytics", h.AdminOrderAnalytics)
		admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.GET("/users", h.AdminGetAllUsers)
		admin.GET("/live", h.LiveOrders)
	}
}
