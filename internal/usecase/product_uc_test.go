package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakato/catalog/internal/domain"
)

// mockProductRepo records what was persisted and returns canned listings.
type mockProductRepo struct {
	created    *domain.Product
	list       []domain.Product
	total      int64
	lastFilter domain.ProductFilter
	err        error
}

func (m *mockProductRepo) CreateGraph(_ context.Context, p *domain.Product) error {
	m.created = p
	return m.err
}

func (m *mockProductRepo) FindByID(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.list) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.list[0], nil
}

func (m *mockProductRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	m.lastFilter = f
	return m.list, m.total, m.err
}

type mockVariantRepo struct {
	variants   []domain.Variant
	selections []domain.ProductVariant
	err        error
}

func (m *mockVariantRepo) Save(_ context.Context, v *domain.Variant) error { return m.err }

func (m *mockVariantRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Variant, error) {
	for i := range m.variants {
		if m.variants[i].ID == id {
			return &m.variants[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockVariantRepo) List(_ context.Context) ([]domain.Variant, error) {
	return m.variants, m.err
}

func (m *mockVariantRepo) ListActive(_ context.Context) ([]domain.Variant, error) {
	return m.variants, m.err
}

func (m *mockVariantRepo) ListSelections(_ context.Context) ([]domain.ProductVariant, error) {
	return m.selections, m.err
}

func TestProductUC_Create_Valid(t *testing.T) {
	repo := &mockProductRepo{}
	uc := NewProductUC(repo, &mockVariantRepo{})
	group := uuid.New()

	in := ProductInput{
		Title:       "Shirt",
		SKU:         "SH-001",
		Description: "A shirt",
		ProductVariants: []ProductVariantInput{
			{
				Variant:      group.String(),
				VariantTitle: "Red",
				ProductVariantPrices: []ProductVariantPriceInput{
					{Price: 10.50, Stock: 5},
					{Price: 12, Stock: 0},
				},
			},
			{
				VariantTitle:         "Blue",
				ProductVariantPrices: []ProductVariantPriceInput{{Price: 11, Stock: 3}},
			},
		},
	}

	p, fieldErrs, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, p)
	require.Same(t, p, repo.created, "the validated graph must be what was persisted")

	// one product, N variants, sum(M) prices, with parent linkage
	assert.NotEqual(t, uuid.Nil, p.ID)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, group, p.Variants[0].VariantID)
	prices := 0
	for _, pv := range p.Variants {
		assert.NotEqual(t, uuid.Nil, pv.ID)
		assert.Equal(t, p.ID, pv.ProductID)
		for _, pr := range pv.Prices {
			assert.NotEqual(t, uuid.Nil, pr.ID)
			assert.Equal(t, pv.ID, pr.ProductVariantID)
			assert.Equal(t, p.ID, pr.ProductID)
			prices++
		}
	}
	assert.Equal(t, 3, prices)
}

func TestProductUC_Create_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		input  ProductInput
		fields map[string]string
	}{
		{
			name:  "missing title and sku",
			input: ProductInput{Description: "no names"},
			fields: map[string]string{
				"title": "This field is required.",
				"sku":   "This field is required.",
			},
		},
		{
			name: "missing nested variant title",
			input: ProductInput{
				Title:           "Shirt",
				SKU:             "SH-001",
				ProductVariants: []ProductVariantInput{{}},
			},
			fields: map[string]string{
				"product_variants[0].variant_title": "This field is required.",
			},
		},
		{
			name: "bad variant group id",
			input: ProductInput{
				Title:           "Shirt",
				SKU:             "SH-001",
				ProductVariants: []ProductVariantInput{{Variant: "3", VariantTitle: "Red"}},
			},
			fields: map[string]string{
				"product_variants[0].variant": "Must be a valid UUID.",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockProductRepo{}
			uc := NewProductUC(repo, &mockVariantRepo{})

			p, fieldErrs, err := uc.Create(context.Background(), tc.input)
			require.NoError(t, err)
			assert.Nil(t, p)
			assert.Nil(t, repo.created, "nothing may be persisted on validation failure")
			for field, msg := range tc.fields {
				require.Contains(t, fieldErrs, field)
				assert.Contains(t, fieldErrs[field], msg)
			}
		})
	}
}

func TestProductUC_List_PageInfo(t *testing.T) {
	// 5 matching products, page size 2: page 3 holds exactly one
	repo := &mockProductRepo{
		list:  []domain.Product{{ID: uuid.New(), Title: "Last"}},
		total: 5,
	}
	uc := NewProductUC(repo, &mockVariantRepo{})

	list, info, err := uc.List(context.Background(), domain.ProductFilter{Page: 3})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(5), info.TotalProducts)
	assert.True(t, info.IsPaginated)
	assert.Equal(t, 3, info.NumPages)
	assert.Equal(t, 5, info.StartIndex)
	assert.Equal(t, 5, info.EndIndex)
	assert.Equal(t, 3, repo.lastFilter.Page)
}

func TestProductUC_List_DefaultsPage(t *testing.T) {
	repo := &mockProductRepo{total: 1}
	uc := NewProductUC(repo, &mockVariantRepo{})

	_, info, err := uc.List(context.Background(), domain.ProductFilter{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, 1, info.Page)
}

func TestProductUC_VariantGroups(t *testing.T) {
	color := &domain.Variant{ID: uuid.New(), Title: "Color"}
	size := &domain.Variant{ID: uuid.New(), Title: "Size"}
	repo := &mockVariantRepo{selections: []domain.ProductVariant{
		{Variant: color, VariantTitle: "Red"},
		{Variant: size, VariantTitle: "XL"},
		{Variant: color, VariantTitle: "Red"}, // duplicate across products
		{Variant: color, VariantTitle: "Blue"},
	}}
	uc := NewProductUC(&mockProductRepo{}, repo)

	groups, err := uc.VariantGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Color", groups[0].Title)
	assert.Equal(t, "Size", groups[1].Title)
	assert.Equal(t, []VariantOption{
		{VariantID: color.ID, Title: "Red"},
		{VariantID: color.ID, Title: "Blue"},
	}, groups[0].Options)
}
