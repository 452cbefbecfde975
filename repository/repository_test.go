package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-api/config"
	"storefront-api/models"
	"storefront-api/pricing"

	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.MemoryDB)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestMenuRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuRepository(openTestDB(t))

	item := &models.MenuItem{
		Name:     "Grilled Salmon",
		Price:    24.99,
		FoodType: models.FoodMains,
		Sides:    pricing.ParseOptions([]string{"Fries", "Salad"}),
		Drinks:   pricing.ParseOptions([]string{"Juice(2.99)"}),
	}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected generated id")
	}
	if err := repo.Create(ctx, &models.MenuItem{Name: "Cake", Price: 6, FoodType: models.FoodDesserts}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := repo.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Drinks) != 1 || got.Drinks[0].Label != "Juice" || got.Drinks[0].Price != 2.99 {
		t.Fatalf("options did not round-trip: %+v", got.Drinks)
	}

	mains, err := repo.List(ctx, models.FoodMains)
	if err != nil || len(mains) != 1 {
		t.Fatalf("expected 1 main, got %d (%v)", len(mains), err)
	}
	all, _ := repo.List(ctx, "")
	if len(all) != 2 || all[0].Name != "Cake" {
		t.Fatalf("expected 2 items ordered by name, got %+v", all)
	}

	price := 26.5
	extras := pricing.ParseOptions([]string{"Cheese(1.50)"})
	updated, err := repo.Update(ctx, item.ID, models.MenuItemPatch{Price: &price, Extras: &extras})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 26.5 || len(updated.Extras) != 1 || updated.Name != "Grilled Salmon" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if err := repo.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMenuRepositoryValidates(t *testing.T) {
	repo := NewMenuRepository(openTestDB(t))
	err := repo.Create(context.Background(), &models.MenuItem{Price: -1, FoodType: "brunch"})

	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verrs) != 3 {
		t.Fatalf("expected name, price and foodType errors, got %v", verrs)
	}
}

func newOrder(userID string, status models.OrderStatus, total float64) *models.OrderRecord {
	uid := userID
	return &models.OrderRecord{
		UserID:  &uid,
		Status:  status,
		Address: "1 Long Street",
		Items: []models.OrderItem{{
			ItemID: "salmon", Name: "Grilled Salmon", Quantity: 1, BasePrice: total, LineTotal: total,
			Selections: models.Selections{Sides: []string{"Fries"}},
		}},
		Totals:  models.OrderTotals{Subtotal: total, Total: total, Currency: "zar"},
		Payment: models.OrderPayment{Provider: "stripe", Status: "succeeded", Amount: pricing.MinorUnits(total), Currency: "zar"},
	}
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	first := newOrder("u1", models.StatusPaid, 10)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second := newOrder("u1", models.StatusPending, 20)
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, newOrder("u2", models.StatusPaid, 30)); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != second.ID {
		t.Fatalf("expected newest first for u1, got %+v", mine)
	}

	got, err := repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Items[0].Selections.Sides[0] != "Fries" || got.Totals.Total != 10 || got.Payment.Amount != 1000 {
		t.Fatalf("record did not round-trip: %+v", got)
	}

	paid, _ := repo.ListAll(ctx, models.StatusPaid)
	if len(paid) != 2 {
		t.Fatalf("expected 2 paid orders, got %d", len(paid))
	}
	all, _ := repo.ListAll(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	rec := newOrder("u1", models.StatusPending, 12)
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, prev, err := repo.UpdateStatus(ctx, rec.ID, models.StatusPaid, "admin", "admin-1", "confirmed in dashboard")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if prev != models.StatusPending || updated.Status != models.StatusPaid {
		t.Fatalf("unexpected transition %s -> %s", prev, updated.Status)
	}

	if _, _, err := repo.UpdateStatus(ctx, rec.ID, models.StatusFailed, "admin", "admin-1", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, _, err := repo.UpdateStatus(ctx, "missing", models.StatusPaid, "admin", "admin-1", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	history, err := repo.History(ctx, rec.ID)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected one history row, got %d (%v)", len(history), err)
	}
	if history[0].FromStatus != models.StatusPending || history[0].ChangedBy != "admin-1" {
		t.Fatalf("unexpected history %+v", history[0])
	}
}

func TestRestaurantRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRestaurantRepository(openTestDB(t))

	if _, err := repo.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	if err := repo.Save(ctx, &models.RestaurantInfo{Name: "Harbour Grill", City: "Cape Town"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, &models.RestaurantInfo{Name: "Harbour Grill & Bar", City: "Cape Town", Hours: "9-21"}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	info, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if info.Name != "Harbour Grill & Bar" || info.Hours != "9-21" || info.UpdatedAt.IsZero() {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &models.User{Email: " Sam@Example.com ", PasswordHash: "x", Role: models.RoleCustomer}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &models.User{Email: "sam@example.com", PasswordHash: "y", Role: models.RoleCustomer}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	found, err := repo.GetByEmail(ctx, "SAM@example.com")
	if err != nil || found.ID != user.ID {
		t.Fatalf("expected lookup by normalized email, got %v", err)
	}

	city := "Durban"
	line1 := "5 Beach Road"
	updated, err := repo.UpdateProfile(ctx, user.ID, models.ProfilePatch{City: &city, AddressLine1: &line1})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.City != "Durban" || updated.DeliveryAddress() != "5 Beach Road, Durban" {
		t.Fatalf("unexpected profile %+v", updated)
	}

	admins, _ := repo.List(ctx, models.RoleAdmin)
	if len(admins) != 0 {
		t.Fatalf("expected no admins, got %d", len(admins))
	}
}
