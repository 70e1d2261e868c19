package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddClampsAndAccumulates(t *testing.T) {
	cart := NewCart()

	cart.Add("crane", 0)
	assert.Equal(t, 1, cart.Items["crane"], "qty below the floor clamps to 1")

	cart.Add("crane", 3)
	assert.Equal(t, 4, cart.Items["crane"], "adding an existing slug increments")

	cart.Add("crane", 200)
	assert.Equal(t, MaxQty, cart.Items["crane"], "combined qty clamps to the ceiling")

	cart.Add("lotus", -5)
	assert.Equal(t, 1, cart.Items["lotus"])
}

func TestCart_UpdateSetsAndRemoves(t *testing.T) {
	cart := NewCart()
	cart.Add("crane", 5)
	cart.Add("lotus", 2)

	cart.Update(map[string]int{
		"crane": 7,
		"lotus": 0,
		"fish":  150,
	})

	assert.Equal(t, 7, cart.Items["crane"], "update sets, not adds")
	assert.NotContains(t, cart.Items, "lotus", "qty <= 0 removes the line")
	assert.Equal(t, MaxQty, cart.Items["fish"])
}

func TestCart_QuantitiesAlwaysInBounds(t *testing.T) {
	cart := NewCart()
	cart.Add("a", 98)
	cart.Add("a", 98)
	cart.Update(map[string]int{"b": -1, "c": 1})
	cart.Add("c", 99)

	for slug, qty := range cart.Items {
		assert.GreaterOrEqual(t, qty, MinQty, "slug %s", slug)
		assert.LessOrEqual(t, qty, MaxQty, "slug %s", slug)
	}
}

func TestCart_ItemCountAndClear(t *testing.T) {
	cart := NewCart()
	cart.Add("crane", 2)
	cart.Add("lotus", 3)

	assert.Equal(t, 5, cart.ItemCount())
	assert.False(t, cart.IsEmpty())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.ItemCount())
}

func TestCart_AddOnZeroValue(t *testing.T) {
	var cart Cart
	cart.Add("crane", 2)
	assert.Equal(t, 2, cart.Items["crane"])
}
