// Package catalog stores the product catalog as one whole-document
// collection. Every mutation is read-modify-write of the full document under
// the store's per-document lock; there is no partial-update primitive.
package catalog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yakotaki/chuanghua-shop/internal/docstore"
	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

const docName = "products"

type productsDoc struct {
	Products []domain.Product `json:"products"`
}

type Repository interface {
	// List returns products in stored order, filtering out inactive ones
	// unless includeInactive is set.
	List(ctx context.Context, includeInactive bool) ([]domain.Product, error)

	// Find resolves a slug across the whole catalog, inactive products
	// included, so historical orders and direct links to a deactivated item
	// behave predictably.
	Find(ctx context.Context, slug string) (*domain.Product, error)

	// Upsert replaces the record matching p.Slug, or prepends a new record.
	// An empty slug gets a generated one, unique within the document.
	Upsert(ctx context.Context, p domain.Product) (domain.Product, error)

	// SetActive toggles public visibility for a slug.
	SetActive(ctx context.Context, slug string, active bool) error

	// Delete removes the record matching slug; an absent slug is a no-op.
	Delete(ctx context.Context, slug string) error
}

type documentRepository struct {
	store *docstore.Store
}

func NewRepository(store *docstore.Store) (Repository, error) {
	if err := store.EnsureExists(docName, productsDoc{Products: []domain.Product{}}); err != nil {
		return nil, err
	}
	return &documentRepository{store: store}, nil
}

func (r *documentRepository) List(_ context.Context, includeInactive bool) ([]domain.Product, error) {
	doc := docstore.Read(r.store, docName, productsDoc{})
	if includeInactive {
		return doc.Products, nil
	}
	active := make([]domain.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *documentRepository) Find(ctx context.Context, slug string) (*domain.Product, error) {
	slug = NormalizeSlug(slug)
	products, err := r.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Slug == slug {
			return &products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *documentRepository) Upsert(_ context.Context, p domain.Product) (domain.Product, error) {
	p.Slug = NormalizeSlug(p.Slug)
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	err := r.store.Update(docName, func() error {
		doc := docstore.Read(r.store, docName, productsDoc{})

		if p.Slug == "" {
			p.Slug = generateSlug(doc.Products)
		}
		for i := range doc.Products {
			if doc.Products[i].Slug == p.Slug {
				// The active flag is owned by SetActive, not by field edits.
				p.Active = doc.Products[i].Active
				doc.Products[i] = p
				return r.store.Write(docName, doc)
			}
		}
		doc.Products = append([]domain.Product{p}, doc.Products...)
		return r.store.Write(docName, doc)
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *documentRepository) SetActive(_ context.Context, slug string, active bool) error {
	slug = NormalizeSlug(slug)
	return r.store.Update(docName, func() error {
		doc := docstore.Read(r.store, docName, productsDoc{})
		for i := range doc.Products {
			if doc.Products[i].Slug == slug {
				doc.Products[i].Active = active
				return r.store.Write(docName, doc)
			}
		}
		return domain.ErrProductNotFound
	})
}

func (r *documentRepository) Delete(_ context.Context, slug string) error {
	slug = NormalizeSlug(slug)
	return r.store.Update(docName, func() error {
		doc := docstore.Read(r.store, docName, productsDoc{})
		kept := doc.Products[:0]
		for _, p := range doc.Products {
			if p.Slug != slug {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(doc.Products) {
			return nil
		}
		doc.Products = kept
		return r.store.Write(docName, doc)
	})
}

// NormalizeSlug trims and lowercases a slug for lookup and storage.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// generateSlug produces "p" plus a random hex suffix, retrying on the
// unlikely collision with an existing record.
func generateSlug(products []domain.Product) string {
	for {
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			panic("catalog: crypto/rand unavailable: " + err.Error())
		}
		slug := "p" + hex.EncodeToString(buf)
		if !slugTaken(products, slug) {
			return slug
		}
	}
}

func slugTaken(products []domain.Product, slug string) bool {
	for _, p := range products {
		if p.Slug == slug {
			return true
		}
	}
	return false
}
