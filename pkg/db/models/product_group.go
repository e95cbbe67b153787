package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/only4u/only4u-backend/pkg/enums"
)

// ProductGroup represents a sellable style; its colorways live in product_variants.
type ProductGroup struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;type:text;not null;uniqueIndex:idx_product_groups_name"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Description string                `gorm:"column:description;type:text;not null;default:''"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Status      enums.ProductStatus   `gorm:"column:status;type:text;not null"`
	Variants    []ProductVariant      `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
