package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/chakato/catalog/internal/domain"
)

// FieldErrors maps a payload field to its validation messages. A nil map
// means the payload passed validation.
type FieldErrors map[string][]string

// ProductInput is the nested create payload: a product, its variants, and
// per-variant price/stock rows, persisted as one graph.
type ProductInput struct {
	Title           string                `json:"title" validate:"required"`
	SKU             string                `json:"sku" validate:"required"`
	Description     string                `json:"description"`
	ProductVariants []ProductVariantInput `json:"product_variants" validate:"dive"`
}

type ProductVariantInput struct {
	Variant              string                     `json:"variant"`
	VariantTitle         string                     `json:"variant_title" validate:"required"`
	ProductVariantPrices []ProductVariantPriceInput `json:"product_variant_prices" validate:"dive"`
}

type ProductVariantPriceInput struct {
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

type ProductUC struct {
	Products domain.ProductRepo
	Variants domain.VariantRepo
	validate *validator.Validate
}

func NewProductUC(products domain.ProductRepo, variants domain.VariantRepo) *ProductUC {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProductUC{Products: products, Variants: variants, validate: v}
}

// Create validates the payload and, only if it is fully valid, persists the
// whole graph in one transaction. ids are assigned here, parent before
// child, so every child row carries its owner's identity into the insert.
func (uc *ProductUC) Create(ctx context.Context, in ProductInput) (*domain.Product, FieldErrors, error) {
	errs := FieldErrors{}
	if err := uc.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, nil, err
		}
		for _, fe := range verrs {
			field := trimNamespace(fe.Namespace())
			errs[field] = append(errs[field], messageFor(fe))
		}
	}
	for i, vi := range in.ProductVariants {
		if vi.Variant == "" {
			continue
		}
		if _, err := uuid.Parse(vi.Variant); err != nil {
			field := fmt.Sprintf("product_variants[%d].variant", i)
			errs[field] = append(errs[field], "Must be a valid UUID.")
		}
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	p := in.graph()
	if err := uc.Products.CreateGraph(ctx, p); err != nil {
		return nil, nil, err
	}
	return p, nil, nil
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

// List runs one page of the filtered listing and derives the pagination
// context from the unpaginated total.
func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, PageInfo, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	list, total, err := uc.Products.List(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return list, NewPageInfo(f.Page, total), nil
}

// VariantGroups builds the catalog-wide filter navigation: every
// ProductVariant row grouped under its Variant group's title, independent of
// the current filter or page.
func (uc *ProductUC) VariantGroups(ctx context.Context) ([]VariantGroup, error) {
	selections, err := uc.Variants.ListSelections(ctx)
	if err != nil {
		return nil, err
	}
	return GroupSelections(selections), nil
}

func (in ProductInput) graph() *domain.Product {
	p := &domain.Product{ID: uuid.New(), Title: in.Title, SKU: in.SKU, Description: in.Description}
	for _, vi := range in.ProductVariants {
		pv := domain.ProductVariant{ID: uuid.New(), ProductID: p.ID, VariantTitle: vi.VariantTitle}
		if vi.Variant != "" {
			if gid, err := uuid.Parse(vi.Variant); err == nil {
				pv.VariantID = gid
			}
		}
		for _, pr := range vi.ProductVariantPrices {
			pv.Prices = append(pv.Prices, domain.ProductVariantPrice{
				ID:               uuid.New(),
				ProductVariantID: pv.ID,
				ProductID:        p.ID,
				Price:            pr.Price,
				Stock:            pr.Stock,
			})
		}
		p.Variants = append(p.Variants, pv)
	}
	return p
}

// trimNamespace drops the root struct segment from a validator namespace,
// leaving the json path ("product_variants[0].variant_title").
func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return "This value is invalid."
	}
}
