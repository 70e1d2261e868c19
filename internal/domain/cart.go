package domain

const (
	MinQty = 1
	MaxQty = 99
)

// Cart accumulates a buyer's selections for one session. It is a value
// object owned by the requesting session, never shared between sessions and
// never persisted beyond the session lifetime.
type Cart struct {
	Items map[string]int `json:"items"`
}

func NewCart() Cart {
	return Cart{Items: make(map[string]int)}
}

// Add combines qty with any existing quantity for slug. The quantity is
// clamped to [MinQty, MaxQty] before and after combining.
func (c *Cart) Add(slug string, qty int) {
	if c.Items == nil {
		c.Items = make(map[string]int)
	}
	c.Items[slug] = clampQty(c.Items[slug] + clampQty(qty))
}

// Update sets (not adds) the quantity for each slug in changes. A quantity
// of zero or less removes the line.
func (c *Cart) Update(changes map[string]int) {
	if c.Items == nil {
		c.Items = make(map[string]int)
	}
	for slug, qty := range changes {
		if qty <= 0 {
			delete(c.Items, slug)
			continue
		}
		c.Items[slug] = clampQty(qty)
	}
}

// ItemCount is the total quantity across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, qty := range c.Items {
		n += qty
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear empties the cart in place. Called exactly once, after a successful
// order commit.
func (c *Cart) Clear() {
	c.Items = make(map[string]int)
}

// Clone returns an independent copy so stored carts cannot alias the copy
// handed to callers.
func (c Cart) Clone() Cart {
	out := Cart{Items: make(map[string]int, len(c.Items))}
	for slug, qty := range c.Items {
		out.Items[slug] = qty
	}
	return out
}

func clampQty(qty int) int {
	if qty < MinQty {
		return MinQty
	}
	if qty > MaxQty {
		return MaxQty
	}
	return qty
}
