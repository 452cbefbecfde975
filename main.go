package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/cart"
	"storefront-api/checkout"
	"storefront-api/config"
	"storefront-api/events"
	"storefront-api/handlers"
	"storefront-api/logger"
	"storefront-api/middleware"
	"storefront-api/models"
	"storefront-api/payment"
	"storefront-api/repository"
	"storefront-api/routes"
	"storefront-api/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	log := logger.New("storefront-api")

	// Set Gin mode
	if cfg.GinMode == "" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Error("db_open_failed", "", "Failed to connect to database", err, slog.String("path", cfg.DBPath))
		os.Exit(1)
	}
	log.Info("db_connected", "", "Database connected and migrated", slog.String("path", cfg.DBPath))

	menu := repository.NewMenuRepository(db)
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)

	if err := seedAdmin(ctx, users, cfg); err != nil {
		log.Error("admin_seed_failed", "", "Failed to seed admin account", err)
	}

	carts := cart.NewService(storage.NewGormKV(db), menu, log)
	gateway := newGateway(cfg, log)

	// Live feed always runs; the broker is optional
	hub := events.NewHub(log)
	go hub.Run(ctx)
	publisher := events.Multi{hub}
	if cfg.AMQPURL != "" {
		amqp, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			log.Error("amqp_connect_failed", "", "Order events will not reach the broker", err)
		} else {
			defer amqp.Close()
			publisher = append(publisher, amqp)
		}
	}

	h := &handlers.Handler{
		Menu:       menu,
		Orders:     orders,
		Restaurant: repository.NewRestaurantRepository(db),
		Users:      users,
		Carts:      carts,
		Checkout:   checkout.NewService(carts, orders, gateway, publisher, cfg.FeeSchedule(), cfg.PaymentDescription, log),
		Gateway:    gateway,
		Hub:        hub,
		Publisher:  publisher,
		Fees:       cfg.FeeSchedule(),
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
		Log:        log,
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestID(log))

	// Register all routes
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server_started", "", "Server running", slog.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_failed", "", "Failed to start server", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("server_stopping", "", "Shutting down", slog.Int("live_clients", hub.Clients()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", "", "Graceful shutdown failed", err)
	}
}

// newGateway prefers a direct Stripe key, then a relay deployment
func newGateway(cfg *config.Config, log *logger.Logger) payment.Gateway {
	switch {
	case cfg.StripeSecretKey != "":
		log.Info("payment_gateway", "", "Using Stripe gateway")
		return payment.NewStripeGateway(cfg.StripeSecretKey)
	case cfg.PaymentRelayURL != "":
		log.Info("payment_gateway", "", "Using payment relay", slog.String("url", cfg.PaymentRelayURL))
		return payment.NewRelayClient(cfg.PaymentRelayURL, nil)
	default:
		log.Warn("payment_gateway", "", "No payment gateway configured; checkout is disabled")
		return nil
	}
}

// seedAdmin creates the admin account from config when it does not exist yet
func seedAdmin(ctx context.Context, users *repository.UserRepository, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	if _, err := users.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return users.Create(ctx, &models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		FirstName:    "Admin",
	})
}
