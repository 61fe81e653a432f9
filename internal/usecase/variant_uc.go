package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/chakato/catalog/internal/domain"
)

type VariantUC struct {
	Variants domain.VariantRepo
}

func (uc *VariantUC) Create(ctx context.Context, title string, active bool) (*domain.Variant, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title required")
	}
	v := &domain.Variant{ID: uuid.New(), Title: title, Active: active}
	if err := uc.Variants.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *VariantUC) Update(ctx context.Context, id uuid.UUID, title string, active bool) (*domain.Variant, error) {
	if id == uuid.Nil {
		return nil, errors.New("variant id required")
	}
	v, err := uc.Variants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title required")
	}
	v.Title = title
	v.Active = active
	if err := uc.Variants.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *VariantUC) Get(ctx context.Context, id uuid.UUID) (*domain.Variant, error) {
	return uc.Variants.FindByID(ctx, id)
}

func (uc *VariantUC) List(ctx context.Context) ([]domain.Variant, error) {
	return uc.Variants.List(ctx)
}

// ListActive feeds the create-form selector: only groups still open for new
// product variants.
func (uc *VariantUC) ListActive(ctx context.Context) ([]domain.Variant, error) {
	return uc.Variants.ListActive(ctx)
}
