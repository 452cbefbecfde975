package cart

import (
	"errors"
	"fmt"

	"storefront-api/models"
	"storefront-api/pricing"
)

var (
	ErrLineNotFound        = errors.New("cart line not found")
	ErrSideRequired        = errors.New("please select at least one side to continue")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrUnknownOption       = errors.New("option is not offered for this item")
	ErrMenuItemUnavailable = errors.New("menu item is no longer available")
	ErrCartUnavailable     = errors.New("cart storage is unavailable")
)

// Selections are the customer's choices for one line, by label
type Selections struct {
	Sides       []string `json:"sides"`
	Drink       string   `json:"drink"`
	Extras      []string `json:"extras"`
	Ingredients []string `json:"ingredients"`
}

// Update builds a LineUpdate that replaces every selection field and the add-on total
func (s Selections) Update(addOnTotal float64) LineUpdate {
	sides := cloneStrings(s.Sides)
	extras := cloneStrings(s.Extras)
	ingredients := cloneStrings(s.Ingredients)
	drink := s.Drink
	return LineUpdate{
		Sides:       &sides,
		Drink:       &drink,
		Extras:      &extras,
		Ingredients: &ingredients,
		AddOnTotal:  &addOnTotal,
	}
}

// AddOnTotal prices the selections against the item's current option lists.
// Only the drink and the extras carry a price; sides and ingredients are free.
func AddOnTotal(item *models.MenuItem, sel Selections) float64 {
	var total float64
	if sel.Drink != "" {
		total += pricing.PriceIndex(item.Drinks)[sel.Drink]
	}
	if len(sel.Extras) > 0 {
		extras := pricing.PriceIndex(item.Extras)
		for _, e := range sel.Extras {
			total += extras[e]
		}
	}
	return total
}

// NewLine resolves selections against item and snapshots its price
func NewLine(item *models.MenuItem, quantity int, sel Selections) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	if len(item.Sides) > 0 && len(sel.Sides) == 0 {
		return Line{}, ErrSideRequired
	}
	if err := CheckSelections(item, sel); err != nil {
		return Line{}, err
	}
	return Line{
		ItemID:      item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Quantity:    quantity,
		ImageURL:    item.ImageURL,
		Sides:       cloneStrings(sel.Sides),
		Drink:       sel.Drink,
		Extras:      cloneStrings(sel.Extras),
		Ingredients: cloneStrings(sel.Ingredients),
		AddOnTotal:  AddOnTotal(item, sel),
	}, nil
}

// CheckSelections rejects labels the item does not offer
func CheckSelections(item *models.MenuItem, sel Selections) error {
	sides := pricing.PriceIndex(item.Sides)
	for _, s := range sel.Sides {
		if _, ok := sides[s]; !ok {
			return fmt.Errorf("%w: side %q", ErrUnknownOption, s)
		}
	}
	if sel.Drink != "" {
		if _, ok := pricing.PriceIndex(item.Drinks)[sel.Drink]; !ok {
			return fmt.Errorf("%w: drink %q", ErrUnknownOption, sel.Drink)
		}
	}
	extras := pricing.PriceIndex(item.Extras)
	for _, e := range sel.Extras {
		if _, ok := extras[e]; !ok {
			return fmt.Errorf("%w: extra %q", ErrUnknownOption, e)
		}
	}
	for _, in := range sel.Ingredients {
		if !contains(item.CustomIngredients, in) {
			return fmt.Errorf("%w: ingredient %q", ErrUnknownOption, in)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
