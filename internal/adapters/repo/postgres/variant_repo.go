package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chakato/catalog/internal/domain"
)

type VariantRepo struct{ db *gorm.DB }

func NewVariantRepo(db *gorm.DB) *VariantRepo { return &VariantRepo{db: db} }

func (r *VariantRepo) Save(ctx context.Context, v *domain.Variant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VariantRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Variant, error) {
	var v domain.Variant
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VariantRepo) List(ctx context.Context) ([]domain.Variant, error) {
	var list []domain.Variant
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *VariantRepo) ListActive(ctx context.Context) ([]domain.Variant, error) {
	var list []domain.Variant
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListSelections loads the whole catalog's ProductVariant rows with their
// group, in insertion order, for the listing's filter navigation.
func (r *VariantRepo) ListSelections(ctx context.Context) ([]domain.ProductVariant, error) {
	var list []domain.ProductVariant
	if err := r.db.WithContext(ctx).Preload("Variant").Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
