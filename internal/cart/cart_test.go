package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdir/internal"
)

var (
	phoneShop = internal.Business{ID: "1", Name: "Khit Thit Mobile", Price: "Starting at 200,000 Ks"}
	noodles   = internal.Business{ID: "8", Name: "Yummy Spicy Noodle", Price: "3000 Ks per bowl"}
	furniture = internal.Business{ID: "5", Name: "Modern Home Furniture"}
)

func TestCartAddIncrements(t *testing.T) {
	var c Cart
	c.Add(phoneShop)
	c.Add(noodles)
	c.Add(phoneShop)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].BusinessID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 3, c.Count())
}

func TestCartUpdateQuantityRemovesAtZero(t *testing.T) {
	var c Cart
	c.Add(noodles)
	c.UpdateQuantity("8", 2)
	assert.Equal(t, 3, c.Items()[0].Quantity)

	c.UpdateQuantity("8", -3)
	assert.Zero(t, c.Len())

	c.Add(noodles)
	c.UpdateQuantity("8", -10)
	assert.Zero(t, c.Len())

	c.UpdateQuantity("missing", 1)
	assert.Zero(t, c.Len())
}

func TestCartRemoveAndClear(t *testing.T) {
	var c Cart
	c.Add(phoneShop)
	c.Add(noodles)
	c.Add(furniture)

	c.Remove("8")
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, []string{"1", "5"}, []string{items[0].BusinessID, items[1].BusinessID})

	c.Clear()
	assert.Zero(t, c.Count())
	assert.Empty(t, c.Items())
}

func TestCartTotal(t *testing.T) {
	var c Cart
	c.Add(phoneShop)
	c.Add(noodles)
	c.Add(noodles)
	c.Add(furniture)
	assert.Equal(t, int64(200000+2*3000), c.Total())
}

func TestCartItemsIsACopy(t *testing.T) {
	var c Cart
	c.Add(noodles)
	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestNewDropsInvalidLines(t *testing.T) {
	c := New([]internal.CartItem{
		{BusinessID: "1", Quantity: 2},
		{BusinessID: "2", Quantity: 0},
		{BusinessID: "", Quantity: 1},
	})
	assert.Equal(t, 1, c.Len())
}
