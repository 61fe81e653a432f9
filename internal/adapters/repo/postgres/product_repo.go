package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chakato/catalog/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

// CreateGraph inserts the product graph in one transaction, parent before
// child: product, then each variant, then each price row. Associations are
// omitted on each Create so gorm never reorders the inserts behind our back.
func (r *ProductRepo) CreateGraph(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		for i := range p.Variants {
			pv := &p.Variants[i]
			if err := tx.Omit(clause.Associations).Create(pv).Error; err != nil {
				return err
			}
			for j := range pv.Prices {
				if err := tx.Create(&pv.Prices[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Variants.Variant").
		Preload("Variants.Prices").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List translates the resolved filter case into SQL. Subselects on the child
// tables stand in for the original joins, so every branch already yields one
// row per product; Distinct keeps the dedup-by-id contract explicit.
func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})

	switch f.Case() {
	case domain.CaseTitle:
		q = q.Where("title ILIKE ?", contains(f.Title))
	case domain.CaseVariant:
		q = q.Where("id IN (?)", r.variantProducts(ctx, f.VariantID))
	case domain.CaseTitleOrVariant:
		q = q.Where("title ILIKE ? OR id IN (?)", contains(f.Title), r.variantProducts(ctx, f.VariantID))
	case domain.CasePriceRange:
		from, to, err := f.PriceBounds()
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("id IN (?)", r.pricedProducts(ctx, from, to))
	case domain.CaseTitleOrVariantAndPrice:
		from, to, err := f.PriceBounds()
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("title ILIKE ? OR id IN (?)", contains(f.Title), r.variantProducts(ctx, f.VariantID)).
			Where("id IN (?)", r.pricedProducts(ctx, from, to))
	case domain.CaseTitleAndPrice:
		from, to, err := f.PriceBounds()
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("title ILIKE ?", contains(f.Title)).
			Where("id IN (?)", r.pricedProducts(ctx, from, to))
	case domain.CaseDate:
		from, to, _ := f.DayWindow()
		q = q.Where("created_at >= ? AND created_at < ?", from, to)
	case domain.CaseAll:
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	var list []domain.Product
	err := q.Distinct().
		Order("created_at asc").
		Offset((page-1)*domain.PageSize).
		Limit(domain.PageSize).
		Preload("Variants.Variant").
		Preload("Variants.Prices").
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) variantProducts(ctx context.Context, variantID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.ProductVariant{}).
		Select("product_id").Where("variant_id = ?", variantID)
}

func (r *ProductRepo) pricedProducts(ctx context.Context, from, to float64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.ProductVariantPrice{}).
		Select("product_id").Where("price BETWEEN ? AND ?", from, to)
}

func contains(s string) string { return "%" + s + "%" }
