package controllers

import (
	"net/http"

	"github.com/bellakids/storefront-backend/pkg/enums"
	"github.com/bellakids/storefront-backend/pkg/i18n"
)

// localeFromRequest reads the storefront language from ?lang=, then the
// X-Locale header the admin panel sends, then the shop's configured default.
func localeFromRequest(r *http.Request, fallback enums.Locale) enums.Locale {
	if raw := r.URL.Query().Get("lang"); enums.Locale(raw).IsValid() {
		return enums.Locale(raw)
	}
	return i18n.ParseLocaleOr(r.Header.Get("X-Locale"), fallback)
}
