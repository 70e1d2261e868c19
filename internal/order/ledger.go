// Package order keeps the append-only order ledger. Newest orders sit at the
// head of the document; committed orders are never mutated or deleted.
package order

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/yakotaki/chuanghua-shop/internal/docstore"
	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

const docName = "orders"

type ordersDoc struct {
	Orders []domain.Order `json:"orders"`
}

type Ledger interface {
	// Commit validates the buyer fields, builds an immutable order from the
	// snapshot and prepends it to the ledger. Validation failures leave the
	// ledger untouched.
	Commit(ctx context.Context, snapshot domain.CartSnapshot, info domain.CheckoutInfo) (domain.Order, error)

	// List returns all orders, newest first, as stored.
	List(ctx context.Context) ([]domain.Order, error)

	// Get returns the order with the given id.
	Get(ctx context.Context, id string) (*domain.Order, error)
}

type documentLedger struct {
	store *docstore.Store
	now   func() time.Time
}

func NewLedger(store *docstore.Store) (Ledger, error) {
	if err := store.EnsureExists(docName, ordersDoc{Orders: []domain.Order{}}); err != nil {
		return nil, err
	}
	return &documentLedger{store: store, now: time.Now}, nil
}

func (l *documentLedger) Commit(_ context.Context, snapshot domain.CartSnapshot, info domain.CheckoutInfo) (domain.Order, error) {
	buyerName := strings.TrimSpace(info.BuyerName)
	buyerContact := strings.TrimSpace(info.BuyerContact)
	if buyerName == "" {
		return domain.Order{}, domain.RequiredField("buyer_name")
	}
	if buyerContact == "" {
		return domain.Order{}, domain.RequiredField("buyer_contact")
	}
	if snapshot.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyCart
	}

	now := l.now().UTC()
	o := domain.Order{
		ID:           NewOrderID(now),
		CreatedAt:    now,
		BuyerName:    buyerName,
		BuyerContact: buyerContact,
		Address:      strings.TrimSpace(info.Address),
		Note:         strings.TrimSpace(info.Note),
		LineItems:    snapshot.Items,
		Total:        snapshot.Total,
		Status:       domain.OrderStatusNew,
		Lang:         domain.NormalizeLang(info.Lang),
	}

	err := l.store.Update(docName, func() error {
		doc := docstore.Read(l.store, docName, ordersDoc{})
		doc.Orders = append([]domain.Order{o}, doc.Orders...)
		return l.store.Write(docName, doc)
	})
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (l *documentLedger) List(_ context.Context) ([]domain.Order, error) {
	doc := docstore.Read(l.store, docName, ordersDoc{})
	return doc.Orders, nil
}

func (l *documentLedger) Get(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// NewOrderID builds a short date-based prefix plus a random suffix, e.g.
// CH260826a1b2c3. There is no persisted counter and no uniqueness scan
// against the ledger; the collision probability of the random suffix is
// accepted as negligible.
func NewOrderID(now time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		panic("order: crypto/rand unavailable: " + err.Error())
	}
	return "CH" + now.UTC().Format("060102") + hex.EncodeToString(buf)
}
