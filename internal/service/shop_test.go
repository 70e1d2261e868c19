package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yakotaki/chuanghua-shop/internal/catalog"
	"github.com/yakotaki/chuanghua-shop/internal/docstore"
	"github.com/yakotaki/chuanghua-shop/internal/domain"
	"github.com/yakotaki/chuanghua-shop/internal/message"
	"github.com/yakotaki/chuanghua-shop/internal/order"
	"github.com/yakotaki/chuanghua-shop/internal/session"
)

func setupShop(t *testing.T) *Shop {
	store := docstore.New(t.TempDir())
	cat, err := catalog.NewRepository(store)
	require.NoError(t, err)
	ledger, err := order.NewLedger(store)
	require.NoError(t, err)
	log, err := message.NewLog(store)
	require.NoError(t, err)
	return NewShop(cat, ledger, log, session.NewMemoryStore(), zap.NewNop())
}

func seedProduct(t *testing.T, shop *Shop, slug string, price int64, active bool) {
	p, err := shop.UpsertProduct(context.Background(), domain.Product{
		Slug:   slug,
		Active: active,
		Price:  decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	require.Equal(t, slug, p.Slug)
}

func TestAddToCart_UnknownOrInactiveProduct(t *testing.T) {
	shop := setupShop(t)
	ctx := context.Background()
	seedProduct(t, shop, "hidden", 10, true)
	require.NoError(t, shop.SetProductActive(ctx, "hidden", false))

	_, err := shop.AddToCart(ctx, "sess", "missing", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = shop.AddToCart(ctx, "sess", "hidden", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	count, err := shop.CartItemCount(ctx, "sess")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartSnapshot_ReflectsCurrentPrices(t *testing.T) {
	shop := setupShop(t)
	ctx := context.Background()
	seedProduct(t, shop, "crane", 10, true)

	_, err := shop.AddToCart(ctx, "sess", "crane", 2)
	require.NoError(t, err)

	snap, err := shop.CartSnapshot(ctx, "sess")
	require.NoError(t, err)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(20)))

	// Prices are re-resolved on every snapshot, not frozen at add time.
	_, err = shop.UpsertProduct(ctx, domain.Product{Slug: "crane", Price: decimal.NewFromInt(15)})
	require.NoError(t, err)

	snap, err = shop.CartSnapshot(ctx, "sess")
	require.NoError(t, err)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(30)))
}

func TestCheckout_ValidationFailureKeepsCartAndLedger(t *testing.T) {
	shop := setupShop(t)
	ctx := context.Background()
	seedProduct(t, shop, "crane", 10, true)

	_, err := shop.AddToCart(ctx, "sess", "crane", 2)
	require.NoError(t, err)

	_, err = shop.Checkout(ctx, "sess", domain.CheckoutInfo{BuyerContact: "555-0100"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "buyer_name", vErr.Field)

	count, err := shop.CartItemCount(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "cart must survive a failed checkout")

	orders, err := shop.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_EmptyCart(t *testing.T) {
	shop := setupShop(t)

	_, err := shop.Checkout(context.Background(), "sess", domain.CheckoutInfo{
		BuyerName: "Li", BuyerContact: "555-0100",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

// Walks the whole buyer flow: browse, cart, checkout, deactivate, delete,
// stale cart tolerance and export.
func TestStorefront_EndToEnd(t *testing.T) {
	shop := setupShop(t)
	ctx := context.Background()
	seedProduct(t, shop, "a", 10, true)

	// Add 2 of "a": snapshot totals 20.00.
	_, err := shop.AddToCart(ctx, "sess", "a", 2)
	require.NoError(t, err)
	snap, err := shop.CartSnapshot(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(20)))

	// Commit: order appended with the price captured now, cart cleared.
	committed, err := shop.Checkout(ctx, "sess", domain.CheckoutInfo{
		BuyerName: "Li", BuyerContact: "555-0100", Lang: "en",
	})
	require.NoError(t, err)
	require.Len(t, committed.LineItems, 1)
	assert.Equal(t, "a", committed.LineItems[0].Slug)
	assert.Equal(t, 2, committed.LineItems[0].Qty)
	assert.True(t, committed.LineItems[0].Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, committed.LineItems[0].LineTotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, committed.Total.Equal(decimal.NewFromInt(20)))

	count, err := shop.CartItemCount(ctx, "sess")
	require.NoError(t, err)
	assert.Zero(t, count)

	// A later price change must not touch the committed order.
	_, err = shop.UpsertProduct(ctx, domain.Product{Slug: "a", Price: decimal.NewFromInt(99)})
	require.NoError(t, err)
	fetched, err := shop.GetOrder(ctx, committed.ID)
	require.NoError(t, err)
	assert.True(t, fetched.LineItems[0].Price.Equal(decimal.NewFromInt(10)))

	// Deactivate: Find still resolves, public listing excludes.
	require.NoError(t, shop.SetProductActive(ctx, "a", false))
	p, err := shop.FindProduct(ctx, "a")
	require.NoError(t, err)
	assert.False(t, p.Active)
	visible, err := shop.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	// Delete, then re-snapshot a stale cart referencing "a": the line is
	// silently dropped.
	_, err = shop.UpdateCart(ctx, "stale", map[string]int{"a": 3})
	require.NoError(t, err)
	require.NoError(t, shop.DeleteProduct(ctx, "a"))
	staleSnap, err := shop.CartSnapshot(ctx, "stale")
	require.NoError(t, err)
	assert.Empty(t, staleSnap.Items)
	assert.True(t, staleSnap.Total.IsZero())

	// Export renders one row per order with the "slug xQty" item format.
	csv, err := shop.ExportOrdersCSV(ctx)
	require.NoError(t, err)
	assert.Contains(t, csv, committed.ID)
	assert.Contains(t, csv, `"a x2"`)
}

func TestSubmitMessage_Flow(t *testing.T) {
	shop := setupShop(t)
	ctx := context.Background()

	_, err := shop.SubmitMessage(ctx, "Li", "li@example.com", "how long is shipping?", "zh-cn")
	require.NoError(t, err)

	messages, err := shop.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "zh", messages[0].Lang)
}
