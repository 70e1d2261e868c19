// Package export renders the order ledger as delimited text for the admin
// spreadsheet download. The format is fixed: every field is wrapped in double
// quotes with embedded quotes doubled, which is why this does not go through
// encoding/csv (that writer quotes only when it has to).
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

var header = []string{"order_id", "created_at", "buyer_name", "buyer_contact", "total", "status", "items"}

// Orders flattens all orders into rows, one per order, newline-joined with a
// trailing newline. Line items render as "slug xN" joined by "; ".
func Orders(orders []domain.Order) string {
	var b strings.Builder
	writeRow(&b, header)
	for _, o := range orders {
		writeRow(&b, []string{
			o.ID,
			o.CreatedAt.UTC().Format(time.RFC3339),
			o.BuyerName,
			o.BuyerContact,
			o.Total.String(),
			string(o.Status),
			renderItems(o.LineItems),
		})
	}
	return b.String()
}

func renderItems(items []domain.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Slug, item.Qty))
	}
	return strings.Join(parts, "; ")
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
