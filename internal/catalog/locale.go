package catalog

import (
	"github.com/bellakids/storefront-backend/pkg/db/models"
	"github.com/bellakids/storefront-backend/pkg/enums"
)

// DisplayName resolves the product name for a locale. Missing translations
// fall back to the other locale, then to the legacy single-language column.
func DisplayName(product *models.Product, locale enums.Locale) string {
	return resolveLocalized(locale, product.NameEN, product.NameAR, product.Name)
}

// DisplayDescription resolves the product description the same way as the name.
func DisplayDescription(product *models.Product, locale enums.Locale) string {
	return resolveLocalized(locale, product.DescriptionEN, product.DescriptionAR, product.Description)
}

func resolveLocalized(locale enums.Locale, en, ar, legacy *string) string {
	byLocale := map[enums.Locale]*string{
		enums.LocaleEN: en,
		enums.LocaleAR: ar,
	}
	if value := deref(byLocale[locale]); value != "" {
		return value
	}
	if value := deref(byLocale[locale.Other()]); value != "" {
		return value
	}
	return deref(legacy)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
