package enums

import "fmt"

// ProductCategory represents the canonical garment categories supported by the catalog.
type ProductCategory string

const (
	ProductCategoryDress     ProductCategory = "dress"
	ProductCategoryPants     ProductCategory = "pants"
	ProductCategoryShirt     ProductCategory = "shirt"
	ProductCategoryJacket    ProductCategory = "jacket"
	ProductCategoryAccessory ProductCategory = "accessory"
)

var validProductCategories = []ProductCategory{
	ProductCategoryDress,
	ProductCategoryPants,
	ProductCategoryShirt,
	ProductCategoryJacket,
	ProductCategoryAccessory,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductStatus drives the merchandising badge shown on storefront cards.
type ProductStatus string

const (
	ProductStatusNew         ProductStatus = "new"
	ProductStatusBestSelling ProductStatus = "best_selling"
	ProductStatusSoldOut     ProductStatus = "sold_out"
	ProductStatusOnSale      ProductStatus = "on_sale"
)

var validProductStatuses = []ProductStatus{
	ProductStatusNew,
	ProductStatusBestSelling,
	ProductStatusSoldOut,
	ProductStatusOnSale,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}
