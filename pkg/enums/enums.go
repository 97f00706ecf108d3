package enums

// Locale selects which language fields and labels are used.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

func (l Locale) IsValid() bool {
	switch l {
	case LocaleEN, LocaleAR:
		return true
	}
	return false
}

// Other returns the fallback locale consulted when a localized field is empty.
func (l Locale) Other() Locale {
	if l == LocaleAR {
		return LocaleEN
	}
	return LocaleAR
}

// ProductCategory is the storefront section a product is listed under.
type ProductCategory string

const (
	CategoryAll     ProductCategory = "all"
	CategoryBoys    ProductCategory = "boys"
	CategoryGirls   ProductCategory = "girls"
	CategoryNewborn ProductCategory = "newborn"
)

func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryAll, CategoryBoys, CategoryGirls, CategoryNewborn:
		return true
	}
	return false
}
