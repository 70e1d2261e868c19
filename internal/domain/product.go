package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is a single catalog record. Inactive products are hidden from the
// public listing but stay resolvable by slug so historical orders and direct
// links keep working.
type Product struct {
	Slug    string          `json:"slug"`
	Active  bool            `json:"active"`
	Price   decimal.Decimal `json:"price"`
	TitleZH string          `json:"title_zh"`
	TitleEN string          `json:"title_en"`
	ShortZH string          `json:"short_zh"`
	ShortEN string          `json:"short_en"`
	DescZH  string          `json:"desc_zh"`
	DescEN  string          `json:"desc_en"`
	Images  []string        `json:"images"`
}

// UnmarshalJSON defaults a missing "active" field to true. Catalog documents
// written before the flag existed carry no such field.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		Active *bool `json:"active"`
		*alias
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Active = aux.Active == nil || *aux.Active
	return nil
}
