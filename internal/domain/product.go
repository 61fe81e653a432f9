package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// Product is the catalog root. Variants and Images are owned exclusively:
// deleting a product cascades to them and, through ProductVariant, to prices.
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string           `gorm:"size:255;index" json:"title"`
	SKU         string           `gorm:"size:255;uniqueIndex" json:"sku"`
	Description string           `gorm:"type:text" json:"description"`
	Variants    []ProductVariant `gorm:"constraint:OnDelete:CASCADE" json:"product_variants"`
	Images      []ProductImage   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Variant is a catalog-wide attribute group ("Color", "Size"), referenced by
// ProductVariant rows. Not owned by any product.
type Variant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:40" json:"title"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductVariant is one concrete value of a Variant group on one product,
// e.g. product X's "Red" under group "Color".
type ProductVariant struct {
	ID           uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID             `gorm:"type:uuid;index" json:"product_id"`
	VariantID    uuid.UUID             `gorm:"type:uuid;index" json:"variant_id"`
	Variant      *Variant              `json:"variant,omitempty"`
	VariantTitle string                `gorm:"size:255" json:"variant_title"`
	Prices       []ProductVariantPrice `gorm:"foreignKey:ProductVariantID;constraint:OnDelete:CASCADE" json:"product_variant_prices"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ProductVariantPrice carries ProductID redundantly so the price-range filter
// can resolve owning products without a double join.
type ProductVariantPrice struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductVariantID uuid.UUID `gorm:"type:uuid;index" json:"product_variant_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Price            float64   `gorm:"type:decimal(12,2)" json:"price"`
	Stock            int       `gorm:"type:int;default:0" json:"stock"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProductImage is schema-only for now: no write or read path fills it.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	FilePath  string    `gorm:"size:255" json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}
