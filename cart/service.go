package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"storefront-api/logger"
	"storefront-api/models"
	"storefront-api/storage"
)

const storageKey = "@restaurant_cart"

// StorageKey is where the cart of owner is persisted
func StorageKey(owner string) string {
	return storageKey + "/" + owner
}

// MenuReader fetches the current definition of a menu item
type MenuReader interface {
	Get(ctx context.Context, id string) (*models.MenuItem, error)
}

// Service holds one cart per owner. Carts are restored from storage on first
// use and written back after every mutation. Write failures are only logged;
// a failed read leaves the owner unloaded and the stored copy untouched.
type Service struct {
	mu    sync.Mutex
	carts map[string]Cart
	kv    storage.KV
	menu  MenuReader
	log   *logger.Logger
}

func NewService(kv storage.KV, menu MenuReader, log *logger.Logger) *Service {
	return &Service{
		carts: make(map[string]Cart),
		kv:    kv,
		menu:  menu,
		log:   log,
	}
}

// Get returns the owner's cart. When storage cannot be read the failure is
// logged and an empty cart is returned without being cached.
func (s *Service) Get(ctx context.Context, owner string) Cart {
	c, _ := s.Load(ctx, owner)
	return c
}

// Load is Get that reports a storage read failure
func (s *Service) Load(ctx context.Context, owner string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, owner)
}

// AddItem resolves the selections against the live menu item and appends a new line
func (s *Service) AddItem(ctx context.Context, owner, itemID string, quantity int, sel Selections) (Cart, error) {
	item, err := s.menu.Get(ctx, itemID)
	if err != nil {
		return s.Get(ctx, owner), fmt.Errorf("%w: %w", ErrMenuItemUnavailable, err)
	}
	line, err := NewLine(item, quantity, sel)
	if err != nil {
		return s.Get(ctx, owner), err
	}
	return s.mutate(ctx, owner, func(c Cart) Cart { return c.Add(line) })
}

func (s *Service) UpdateQuantity(ctx context.Context, owner, itemID string, quantity int) (Cart, error) {
	return s.mutate(ctx, owner, func(c Cart) Cart { return c.UpdateQuantity(itemID, quantity) })
}

func (s *Service) UpdateQuantityAt(ctx context.Context, owner string, index, quantity int) (Cart, error) {
	return s.mutate(ctx, owner, func(c Cart) Cart { return c.UpdateQuantityAt(index, quantity) })
}

func (s *Service) UpdateLine(ctx context.Context, owner string, index int, u LineUpdate) (Cart, error) {
	return s.mutate(ctx, owner, func(c Cart) Cart { return c.UpdateLine(index, u) })
}

func (s *Service) Remove(ctx context.Context, owner, itemID string) (Cart, error) {
	return s.mutate(ctx, owner, func(c Cart) Cart { return c.Remove(itemID) })
}

func (s *Service) RemoveAt(ctx context.Context, owner, itemID string, index int) (Cart, error) {
	return s.mutate(ctx, owner, func(c Cart) Cart { return c.RemoveAt(itemID, index) })
}

// Clear empties the cart and deletes its stored copy
func (s *Service) Clear(ctx context.Context, owner string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop(ctx, owner)
	return Cart{}
}

// Settle removes the lines a completed order paid for and keeps everything
// that changed while the payment was pending.
func (s *Service) Settle(ctx context.Context, owner string, charged []Line) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load(ctx, owner)
	if err != nil {
		return Cart{}, err
	}
	next := current.Subtract(charged)
	if next.Empty() {
		s.drop(ctx, owner)
		return Cart{}, nil
	}
	s.carts[owner] = next
	s.persist(ctx, owner, next)
	return next, nil
}

// EditSelections re-prices the line at index from the current menu item and
// replaces its selections in a single update. If the item cannot be fetched
// the cart is left as it was. A missing line is a no-op.
func (s *Service) EditSelections(ctx context.Context, owner string, index int, sel Selections) (Cart, error) {
	current, err := s.Load(ctx, owner)
	if err != nil {
		return current, err
	}
	line, ok := current.Line(index)
	if !ok {
		return current, nil
	}

	item, err := s.menu.Get(ctx, line.ItemID)
	if err != nil {
		return current, fmt.Errorf("%w: %w", ErrMenuItemUnavailable, err)
	}
	if err := CheckSelections(item, sel); err != nil {
		return current, err
	}
	update := sel.Update(AddOnTotal(item, sel))

	return s.mutate(ctx, owner, func(c Cart) Cart {
		// the line may have moved while the item was being fetched
		if l, ok := c.Line(index); !ok || l.ItemID != line.ItemID {
			return c
		}
		return c.UpdateLine(index, update)
	})
}

// mutate applies fn to the loaded cart and stores the result. A cart that
// could not be read is left alone so the stored copy is not overwritten.
func (s *Service) mutate(ctx context.Context, owner string, fn func(Cart) Cart) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load(ctx, owner)
	if err != nil {
		return Cart{}, err
	}
	next := fn(current)
	s.carts[owner] = next
	s.persist(ctx, owner, next)
	return next, nil
}

// load must be called with s.mu held. Read failures are not cached, so the
// next call tries storage again.
func (s *Service) load(ctx context.Context, owner string) (Cart, error) {
	if c, ok := s.carts[owner]; ok {
		return c, nil
	}
	c, err := s.restore(ctx, owner)
	if err != nil {
		return Cart{}, err
	}
	s.carts[owner] = c
	return c, nil
}

// drop must be called with s.mu held. It forgets the owner in memory and in storage.
func (s *Service) drop(ctx context.Context, owner string) {
	delete(s.carts, owner)
	if err := s.kv.Delete(ctx, StorageKey(owner)); err != nil {
		s.log.Error("cart_clear_storage_failed", logger.RequestID(ctx), "Failed to clear cart storage", err,
			slog.String("owner", owner))
	}
}

func (s *Service) restore(ctx context.Context, owner string) (Cart, error) {
	data, ok, err := s.kv.Get(ctx, StorageKey(owner))
	if err != nil {
		s.log.Error("cart_restore_failed", logger.RequestID(ctx), "Failed to restore cart", err,
			slog.String("owner", owner))
		return Cart{}, fmt.Errorf("%w: %w", ErrCartUnavailable, err)
	}
	if !ok {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// a corrupt copy cannot be recovered by retrying
		s.log.Error("cart_restore_failed", logger.RequestID(ctx), "Stored cart is unreadable", err,
			slog.String("owner", owner))
		return Cart{}, nil
	}
	s.log.Debug("cart_restored", logger.RequestID(ctx), "Cart restored from storage",
		slog.String("owner", owner), slog.Int("lines", c.Len()))
	return c, nil
}

func (s *Service) persist(ctx context.Context, owner string, c Cart) {
	data, err := json.Marshal(c)
	if err == nil {
		err = s.kv.Set(ctx, StorageKey(owner), data)
	}
	if err != nil {
		s.log.Error("cart_save_failed", logger.RequestID(ctx), "Failed to save cart", err,
			slog.String("owner", owner))
	}
}
