package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductRepo interface {
	// CreateGraph persists a product with its variants and prices in one
	// transaction, parent before child.
	CreateGraph(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// List applies the filter's branch and returns one page plus the total
	// count of the filtered, unpaginated result.
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
}

type VariantRepo interface {
	Save(ctx context.Context, v *Variant) error
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)
	List(ctx context.Context) ([]Variant, error)
	ListActive(ctx context.Context) ([]Variant, error)
	// ListSelections returns every ProductVariant in the catalog with its
	// Variant group loaded, for the filter-navigation grouping.
	ListSelections(ctx context.Context) ([]ProductVariant, error)
}
