// Package service exposes the storefront operations consumed by the
// presentation layer: catalog browsing, per-session cart mutation, checkout,
// the contact message log and the admin export.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yakotaki/chuanghua-shop/internal/catalog"
	"github.com/yakotaki/chuanghua-shop/internal/domain"
	"github.com/yakotaki/chuanghua-shop/internal/export"
	"github.com/yakotaki/chuanghua-shop/internal/message"
	"github.com/yakotaki/chuanghua-shop/internal/order"
	"github.com/yakotaki/chuanghua-shop/internal/session"
)

type Shop struct {
	catalog  catalog.Repository
	ledger   order.Ledger
	messages message.Log
	sessions session.Store
	log      *zap.Logger
}

func NewShop(cat catalog.Repository, ledger order.Ledger, messages message.Log, sessions session.Store, log *zap.Logger) *Shop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shop{
		catalog:  cat,
		ledger:   ledger,
		messages: messages,
		sessions: sessions,
		log:      log,
	}
}

// ---- catalog ----

func (s *Shop) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	return s.catalog.List(ctx, includeInactive)
}

func (s *Shop) FindProduct(ctx context.Context, slug string) (*domain.Product, error) {
	return s.catalog.Find(ctx, slug)
}

func (s *Shop) UpsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	saved, err := s.catalog.Upsert(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.log.Info("product upserted", zap.String("slug", saved.Slug))
	return saved, nil
}

func (s *Shop) SetProductActive(ctx context.Context, slug string, active bool) error {
	return s.catalog.SetActive(ctx, slug, active)
}

func (s *Shop) DeleteProduct(ctx context.Context, slug string) error {
	if err := s.catalog.Delete(ctx, slug); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.String("slug", slug))
	return nil
}

// ---- cart ----

// AddToCart rejects slugs that do not resolve to an active product; buyers
// cannot add what the public listing does not offer.
func (s *Shop) AddToCart(ctx context.Context, sessionID, slug string, qty int) (domain.Cart, error) {
	p, err := s.catalog.Find(ctx, slug)
	if err != nil {
		return domain.Cart{}, err
	}
	if !p.Active {
		return domain.Cart{}, domain.ErrProductNotFound
	}

	cart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Add(p.Slug, qty)
	if err := s.sessions.Put(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *Shop) UpdateCart(ctx context.Context, sessionID string, changes map[string]int) (domain.Cart, error) {
	cart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	normalized := make(map[string]int, len(changes))
	for slug, qty := range changes {
		normalized[catalog.NormalizeSlug(slug)] = qty
	}
	cart.Update(normalized)
	if err := s.sessions.Put(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *Shop) CartItemCount(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

func (s *Shop) ClearCart(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// CartSnapshot resolves the session's cart against the catalog right now.
// Slugs that no longer resolve are silently dropped; that is deliberate
// tolerance for products deleted after they were added to a cart.
func (s *Shop) CartSnapshot(ctx context.Context, sessionID string) (domain.CartSnapshot, error) {
	cart, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	return s.snapshot(ctx, cart)
}

func (s *Shop) snapshot(ctx context.Context, cart domain.Cart) (domain.CartSnapshot, error) {
	slugs := make([]string, 0, len(cart.Items))
	for slug := range cart.Items {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	snap := domain.CartSnapshot{
		Items:      make([]domain.LineItem, 0, len(slugs)),
		Total:      decimal.Zero,
		CapturedAt: time.Now().UTC(),
	}
	for _, slug := range slugs {
		p, err := s.catalog.Find(ctx, slug)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return domain.CartSnapshot{}, err
		}
		qty := cart.Items[slug]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		snap.Items = append(snap.Items, domain.LineItem{
			Slug:      p.Slug,
			Qty:       qty,
			Price:     p.Price,
			LineTotal: lineTotal,
		})
		snap.Total = snap.Total.Add(lineTotal)
	}
	return snap, nil
}

// ---- checkout ----

// Checkout snapshots the session's cart, commits it to the ledger and clears
// the cart. On any failure the cart is left as it was so the buyer can fix
// the form and retry.
func (s *Shop) Checkout(ctx context.Context, sessionID string, info domain.CheckoutInfo) (domain.Order, error) {
	snap, err := s.CartSnapshot(ctx, sessionID)
	if err != nil {
		return domain.Order{}, err
	}

	committed, err := s.ledger.Commit(ctx, snap, info)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		// The order is already durable; a stale cart is the lesser problem.
		s.log.Warn("clearing cart after checkout failed",
			zap.String("order_id", committed.ID), zap.Error(err))
	}
	s.log.Info("order committed",
		zap.String("order_id", committed.ID),
		zap.Int("lines", len(committed.LineItems)),
		zap.String("total", committed.Total.String()))
	return committed, nil
}

// ---- orders / messages / export ----

func (s *Shop) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.ledger.List(ctx)
}

func (s *Shop) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.ledger.Get(ctx, id)
}

func (s *Shop) SubmitMessage(ctx context.Context, name, contact, body, lang string) (domain.Message, error) {
	return s.messages.Append(ctx, name, contact, body, lang)
}

func (s *Shop) ListMessages(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}

func (s *Shop) ExportOrdersCSV(ctx context.Context) (string, error) {
	orders, err := s.ledger.List(ctx)
	if err != nil {
		return "", err
	}
	return export.Orders(orders), nil
}
