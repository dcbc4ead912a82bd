package enums

import "fmt"

// ProductCategory represents the bottle/container classes sold by the catalog.
type ProductCategory string

const (
	ProductCategoryPocket ProductCategory = "pocket"
	ProductCategorySmall  ProductCategory = "small"
	ProductCategoryMedium ProductCategory = "medium"
	ProductCategoryLarge  ProductCategory = "large"
	ProductCategoryJar    ProductCategory = "jar"
	ProductCategoryCan    ProductCategory = "can"
	ProductCategoryBulk   ProductCategory = "bulk"
)

var validProductCategories = []ProductCategory{
	ProductCategoryPocket,
	ProductCategorySmall,
	ProductCategoryMedium,
	ProductCategoryLarge,
	ProductCategoryJar,
	ProductCategoryCan,
	ProductCategoryBulk,
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

// UseCase captures the buyer profile a product is marketed for.
type UseCase string

const (
	UseCaseIndividual UseCase = "individual"
	UseCaseFamily     UseCase = "family"
	UseCaseOffice     UseCase = "office"
	UseCaseEvent      UseCase = "event"
	UseCaseAll        UseCase = "all"
)

var validUseCases = []UseCase{
	UseCaseIndividual,
	UseCaseFamily,
	UseCaseOffice,
	UseCaseEvent,
	UseCaseAll,
}

// String implements fmt.Stringer.
func (u UseCase) String() string {
	return string(u)
}

// IsValid reports whether the value matches a known UseCase.
func (u UseCase) IsValid() bool {
	for _, candidate := range validUseCases {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUseCase converts raw input into a UseCase.
func ParseUseCase(value string) (UseCase, error) {
	for _, candidate := range validUseCases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid use case %q", value)
}
