package cart

import (
	"encoding/json"
	"slices"

	"storefront-api/pricing"
)

// Line is one cart entry: a menu item, its chosen customizations and a quantity.
// Selections are stored as display labels.
type Line struct {
	ItemID      string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Sides       []string `json:"sides,omitempty"`
	Drink       string   `json:"drink,omitempty"`
	Extras      []string `json:"extras,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	AddOnTotal  float64  `json:"addOnTotal,omitempty"`
}

// Total is (price + addOnTotal) * quantity
func (l Line) Total() float64 {
	return pricing.LineTotal(l.Price, l.AddOnTotal, l.Quantity)
}

func (l Line) Selections() Selections {
	return Selections{
		Sides:       cloneStrings(l.Sides),
		Drink:       l.Drink,
		Extras:      cloneStrings(l.Extras),
		Ingredients: cloneStrings(l.Ingredients),
	}
}

// sameChoice reports whether l and o hold the same item at the same price
// with the same selections, ignoring quantity
func (l Line) sameChoice(o Line) bool {
	return l.ItemID == o.ItemID &&
		l.Price == o.Price &&
		l.AddOnTotal == o.AddOnTotal &&
		l.Drink == o.Drink &&
		slices.Equal(l.Sides, o.Sides) &&
		slices.Equal(l.Extras, o.Extras) &&
		slices.Equal(l.Ingredients, o.Ingredients)
}

func (l Line) clone() Line {
	l.Sides = cloneStrings(l.Sides)
	l.Extras = cloneStrings(l.Extras)
	l.Ingredients = cloneStrings(l.Ingredients)
	return l
}

// LineUpdate replaces the set fields of a line; nil fields are kept
type LineUpdate struct {
	Sides       *[]string
	Drink       *string
	Extras      *[]string
	Ingredients *[]string
	AddOnTotal  *float64
}

func (u LineUpdate) apply(l Line) Line {
	if u.Sides != nil {
		l.Sides = cloneStrings(*u.Sides)
	}
	if u.Drink != nil {
		l.Drink = *u.Drink
	}
	if u.Extras != nil {
		l.Extras = cloneStrings(*u.Extras)
	}
	if u.Ingredients != nil {
		l.Ingredients = cloneStrings(*u.Ingredients)
	}
	if u.AddOnTotal != nil {
		l.AddOnTotal = *u.AddOnTotal
	}
	return l
}

// Cart is an ordered, immutable sequence of lines. Every mutation returns a
// new Cart and leaves the receiver untouched. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

func New(lines ...Line) Cart {
	return Cart{}.withLines(lines)
}

func (c Cart) withLines(lines []Line) Cart {
	next := make([]Line, 0, len(lines))
	for _, l := range lines {
		next = append(next, l.clone())
	}
	return Cart{lines: next}
}

// Lines returns a copy of the lines in display order
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.clone()
	}
	return out
}

func (c Cart) Line(index int) (Line, bool) {
	if index < 0 || index >= len(c.lines) {
		return Line{}, false
	}
	return c.lines[index].clone(), true
}

func (c Cart) Len() int    { return len(c.lines) }
func (c Cart) Empty() bool { return len(c.lines) == 0 }

// Count is the number of distinct lines
func (c Cart) Count() int { return len(c.lines) }

// TotalQuantity sums the quantities of every line
func (c Cart) TotalQuantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is the cart subtotal, recomputed from the lines on every call
func (c Cart) Total() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}

func (c Cart) Totals(s pricing.FeeSchedule) pricing.Totals {
	return s.Compute(c.Total(), c.Len())
}

// Add appends l. Lines are never merged, even for the same item.
func (c Cart) Add(l Line) Cart {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	next := make([]Line, len(c.lines), len(c.lines)+1)
	copy(next, c.lines)
	return Cart{lines: append(next, l.clone())}
}

// UpdateQuantity changes the first line for itemID. A quantity of zero or less
// removes it. Unknown items are ignored.
func (c Cart) UpdateQuantity(itemID string, quantity int) Cart {
	return c.UpdateQuantityAt(c.indexOf(itemID), quantity)
}

// UpdateQuantityAt is UpdateQuantity addressed by position
func (c Cart) UpdateQuantityAt(index, quantity int) Cart {
	if index < 0 || index >= len(c.lines) {
		return c
	}
	if quantity <= 0 {
		return c.without(index)
	}
	next := c.copyLines()
	next[index].Quantity = quantity
	return Cart{lines: next}
}

// UpdateLine replaces selection fields of the line at index in one step
func (c Cart) UpdateLine(index int, u LineUpdate) Cart {
	if index < 0 || index >= len(c.lines) {
		return c
	}
	next := c.copyLines()
	next[index] = u.apply(next[index])
	return Cart{lines: next}
}

// Remove drops the first line for itemID
func (c Cart) Remove(itemID string) Cart {
	return c.without(c.indexOf(itemID))
}

// RemoveAt drops the line at index. When index is out of range it falls back
// to the first line for itemID.
func (c Cart) RemoveAt(itemID string, index int) Cart {
	if index < 0 || index >= len(c.lines) {
		index = c.indexOf(itemID)
	}
	return c.without(index)
}

func (c Cart) Clear() Cart {
	return Cart{}
}

// Subtract takes the charged lines back out of the cart. Each charged line
// consumes the first line with the same item, price and selections; units
// added to that line after the charge stay in the cart, as do lines that
// were added or re-customized meanwhile.
func (c Cart) Subtract(charged []Line) Cart {
	next := c.copyLines()
	for _, ch := range charged {
		for i, l := range next {
			if !l.sameChoice(ch) {
				continue
			}
			if left := l.Quantity - ch.Quantity; left > 0 {
				next[i].Quantity = left
			} else {
				next = append(next[:i], next[i+1:]...)
			}
			break
		}
	}
	return Cart{lines: next}
}

func (c Cart) indexOf(itemID string) int {
	for i, l := range c.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (c Cart) without(index int) Cart {
	if index < 0 || index >= len(c.lines) {
		return c
	}
	next := make([]Line, 0, len(c.lines)-1)
	next = append(next, c.lines[:index]...)
	next = append(next, c.lines[index+1:]...)
	return Cart{lines: next}
}

func (c Cart) copyLines() []Line {
	next := make([]Line, len(c.lines))
	copy(next, c.lines)
	return next
}

// MarshalJSON encodes the cart as a plain array of lines
func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Lines())
}

// UnmarshalJSON restores a cart, dropping lines that no longer hold a positive quantity
func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	kept := lines[:0]
	for _, l := range lines {
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	*c = New(kept...)
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
