package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jlane/prodesc/internal/airtable"
	"github.com/jlane/prodesc/internal/domain"
	"github.com/jlane/prodesc/internal/logger"
)

// productStore is the slice of the Airtable client the resolver needs.
// Narrowed to an interface so tests can fake the store.
type productStore interface {
	ListRecords(ctx context.Context, table, filterByFormula string) ([]airtable.Record, error)
	CreateRecord(ctx context.Context, table string, fields map[string]interface{}) (*airtable.Record, error)
}

// productNameField is the primary column of the products table.
const productNameField = "Name"

// ProductResolver maps a human-entered product name to a stable record ID in
// the products table, creating the row when the name is not yet known.
//
// The lookup-then-create sequence is not protected by any transaction or
// unique constraint: two concurrent resolutions of the same new name can both
// observe "not found" and create two rows. The Airtable API offers no
// primitive to close that window, so the race is accepted and documented.
type ProductResolver struct {
	store productStore
	table string
}

// NewProductResolver creates a resolver over the given products table.
func NewProductResolver(store productStore, table string) *ProductResolver {
	return &ProductResolver{
		store: store,
		table: table,
	}
}

// ResolveOrCreate returns the record ID for name, creating the product row if
// no existing row matches. Matching is byte-equality on the submitted string:
// the store's formula filter narrows the candidate set, and the returned rows
// are re-checked exactly because Airtable's `=` comparison is not
// case-sensitive. When several rows carry the same name, the oldest row by
// createdTime wins, so repeated saves keep linking the same product.
func (r *ProductResolver) ResolveOrCreate(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("product name must not be empty")
	}

	lookupCtx := logger.WithFields(ctx, logger.Fields{
		logger.FieldStage: "lookup",
		logger.FieldTable: r.table,
	})
	records, err := r.store.ListRecords(lookupCtx, r.table, exactNameFormula(name))
	if err != nil {
		return "", fmt.Errorf("product lookup failed: %w", err)
	}

	if match := oldestExactMatch(records, name); match != nil {
		logger.CtxDebug(lookupCtx, "Resolved product %q to existing record %s", name, match.ID)
		return match.ID, nil
	}

	createCtx := logger.WithFields(ctx, logger.Fields{
		logger.FieldStage: "create-product",
		logger.FieldTable: r.table,
	})
	created, err := r.store.CreateRecord(createCtx, r.table, map[string]interface{}{
		productNameField: name,
	})
	if err != nil {
		return "", fmt.Errorf("product creation failed: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("product creation returned no record ID")
	}

	logger.CtxInfo(createCtx, "Created product %q as record %s", name, created.ID)
	return created.ID, nil
}

// List returns the known products, first page only.
func (r *ProductResolver) List(ctx context.Context) ([]domain.Product, error) {
	records, err := r.store.ListRecords(ctx, r.table, "")
	if err != nil {
		return nil, fmt.Errorf("product listing failed: %w", err)
	}

	products := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, domain.Product{
			ID:          rec.ID,
			Name:        rec.Name(productNameField),
			CreatedTime: rec.CreatedTime,
		})
	}
	return products, nil
}

// exactNameFormula builds the filterByFormula expression for one name.
// Backslashes and double quotes inside the name are escaped so the formula
// string literal stays well-formed; backslashes go first so the quote
// escapes are not doubled.
func exactNameFormula(name string) string {
	escaped := strings.ReplaceAll(name, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return fmt.Sprintf(`{%s} = "%s"`, productNameField, escaped)
}

// oldestExactMatch picks the byte-equal row with the lowest createdTime, or
// nil when none qualifies.
func oldestExactMatch(records []airtable.Record, name string) *airtable.Record {
	var oldest *airtable.Record
	var oldestTime time.Time
	for i := range records {
		rec := &records[i]
		if rec.Name(productNameField) != name {
			continue
		}
		if oldest == nil || rec.CreatedTime.Before(oldestTime) {
			oldest = rec
			oldestTime = rec.CreatedTime
		}
	}
	return oldest
}
