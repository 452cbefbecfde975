package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"storefront-api/cart"
	"storefront-api/events"
	"storefront-api/logger"
	"storefront-api/models"
	"storefront-api/order"
	"storefront-api/payment"
	"storefront-api/pricing"
)

var (
	ErrCheckoutInFlight = errors.New("a checkout is already in progress")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoGateway        = errors.New("payments are not configured")
)

// CartStore settles by removing the charged lines only, so anything added
// while the payment was in flight stays in the cart.
type CartStore interface {
	Load(ctx context.Context, owner string) (cart.Cart, error)
	Settle(ctx context.Context, owner string, charged []cart.Line) (cart.Cart, error)
}

type OrderStore interface {
	Create(ctx context.Context, rec *models.OrderRecord) error
}

// Request carries the customer-supplied delivery details
type Request struct {
	UserID       string
	Address      string
	ContactName  string
	ContactPhone string
	Note         string
}

type Result struct {
	Order        *models.OrderRecord `json:"order"`
	ClientSecret string              `json:"clientSecret,omitempty"`
}

type Service struct {
	carts       CartStore
	orders      OrderStore
	gateway     payment.Gateway
	publisher   events.Publisher
	fees        pricing.FeeSchedule
	description string
	log         *logger.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(carts CartStore, orders OrderStore, gateway payment.Gateway, publisher events.Publisher,
	fees pricing.FeeSchedule, description string, log *logger.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		carts:       carts,
		orders:      orders,
		gateway:     gateway,
		publisher:   publisher,
		fees:        fees,
		description: description,
		log:         log,
		inFlight:    make(map[string]bool),
	}
}

// PlaceOrder charges the session's cart and stores the resulting order.
// The charged lines leave the cart only once the order is stored; on any
// failure the cart is kept so the customer can retry.
func (s *Service) PlaceOrder(ctx context.Context, session string, req Request) (*Result, error) {
	if !s.acquire(session) {
		return nil, ErrCheckoutInFlight
	}
	defer s.release(session)

	requestID := logger.RequestID(ctx)

	c, err := s.carts.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}
	if s.gateway == nil {
		return nil, ErrNoGateway
	}

	totals := c.Totals(s.fees)
	in := order.Input{
		UserID:       req.UserID,
		Address:      req.Address,
		Lines:        c.Lines(),
		Totals:       totals,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Note:         req.Note,
	}

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Amount:      pricing.MinorUnits(totals.Total),
		Currency:    totals.Currency,
		Description: s.description,
	})
	if err != nil {
		s.log.Error("payment_failed", requestID, "Payment gateway rejected checkout", err,
			slog.String("session", session),
			slog.Float64("total", totals.Total))
		failed := order.Failed(in, err)
		if serr := s.orders.Create(ctx, &failed); serr != nil {
			s.log.Error("failed_order_store_failed", requestID, "Could not record failed order", serr)
		} else {
			s.publish(ctx, events.TypeOrderCreated, failed)
		}
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	rec := order.Normalize(in, intent)
	if err := s.orders.Create(ctx, &rec); err != nil {
		s.log.Error("order_store_failed", requestID, "Failed to store order", err,
			slog.String("payment_intent", intent.ID))
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	if _, err := s.carts.Settle(ctx, session, in.Lines); err != nil {
		s.log.Error("cart_settle_failed", requestID, "Order stored but cart was not settled", err,
			slog.String("order_id", rec.ID))
	}
	s.publish(ctx, events.TypeOrderCreated, rec)

	s.log.Info("order_placed", requestID, "Order placed",
		slog.String("order_id", rec.ID),
		slog.String("status", string(rec.Status)),
		slog.Int64("amount", rec.Payment.Amount))

	return &Result{Order: &rec, ClientSecret: intent.ClientSecret}, nil
}

func (s *Service) publish(ctx context.Context, typ string, rec models.OrderRecord) {
	doc, err := order.Document(rec)
	if err != nil {
		s.log.Warn("order_document_failed", logger.RequestID(ctx), "Could not render order document",
			slog.String("error", err.Error()))
	}
	if err := s.publisher.Publish(ctx, events.OrderEvent(typ, rec, doc)); err != nil {
		s.log.Warn("order_event_failed", logger.RequestID(ctx), "Could not publish order event",
			slog.String("order_id", rec.ID),
			slog.String("error", err.Error()))
	}
}

func (s *Service) acquire(session string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[session] {
		return false
	}
	s.inFlight[session] = true
	return true
}

func (s *Service) release(session string) {
	s.mu.Lock()
	delete(s.inFlight, session)
	s.mu.Unlock()
}
