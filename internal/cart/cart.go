package cart

import (
	"shopdir/internal"
	"shopdir/internal/util"
)

// Cart holds line items keyed by business id in the order they were first
// added. The zero value is an empty cart.
type Cart struct {
	items []internal.CartItem
}

func New(items []internal.CartItem) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.Quantity > 0 && it.BusinessID != "" {
			c.items = append(c.items, it)
		}
	}
	return c
}

func (c *Cart) Add(b internal.Business) {
	if i := c.index(b.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, internal.CartItem{
		BusinessID: b.ID,
		Name:       b.Name,
		Price:      b.Price,
		ImageURL:   b.ImageURL,
		Quantity:   1,
	})
}

// UpdateQuantity adds delta to a line; a line that drops to zero is removed.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(businessID string, delta int) {
	i := c.index(businessID)
	if i < 0 {
		return
	}
	q := c.items[i].Quantity + delta
	if q <= 0 {
		c.removeAt(i)
		return
	}
	c.items[i].Quantity = q
}

func (c *Cart) Remove(businessID string) {
	if i := c.index(businessID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Items() []internal.CartItem {
	out := make([]internal.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.items {
		total += util.ParsePrice(it.Price) * int64(it.Quantity)
	}
	return total
}

func (c *Cart) index(businessID string) int {
	for i, it := range c.items {
		if it.BusinessID == businessID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}
