package service

import (
	"github.com/phrazzld/inventory-api/internal/domain"
	"github.com/phrazzld/inventory-api/internal/store"
)

func auditFromRow(a store.Audit) domain.Audit {
	return domain.Audit{
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
		LastChangedBy: a.LastChangedBy,
		LastUpdate:    a.LastUpdate,
	}
}

func personFromRow(r store.PersonRow) domain.Person {
	return domain.Person{
		ID:    r.AltID,
		Seq:   r.ID,
		Name:  r.Name,
		Email: r.Email,
		Audit: auditFromRow(r.Audit),
	}
}

func itemFromRow(r store.ItemRow) domain.Item {
	return domain.Item{
		ID:          r.AltID,
		Seq:         r.ID,
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		Audit:       auditFromRow(r.Audit),
	}
}

func invoiceFromRow(r store.InvoiceRow) domain.Invoice {
	return domain.Invoice{
		ID:       r.AltID,
		Seq:      r.ID,
		PersonID: r.UserID,
		Total:    r.Total,
		Paid:     r.Paid,
		Audit:    auditFromRow(r.Audit),
	}
}

func invoiceFromAggregate(agg store.InvoiceAggregate) domain.InvoiceWithItems {
	items := make([]domain.Item, 0, len(agg.Items))
	for _, it := range agg.Items {
		items = append(items, itemFromRow(it))
	}
	return domain.InvoiceWithItems{Invoice: invoiceFromRow(agg.Invoice), Items: items}
}

// mapRows converts a slice of rows with fn, never returning nil.
func mapRows[R any, M any](rows []R, fn func(R) M) []M {
	out := make([]M, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

func personSeq(p domain.Person) int64   { return p.Seq }
func itemSeq(i domain.Item) int64       { return i.Seq }
func invoiceSeq(i domain.Invoice) int64 { return i.Seq }
