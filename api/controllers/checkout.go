package controllers

import (
	"net/http"

	"github.com/bellakids/storefront-backend/api/middleware"
	"github.com/bellakids/storefront-backend/api/responses"
	ordersvc "github.com/bellakids/storefront-backend/internal/order"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/logger"
)

// Checkout composes the order message and WhatsApp handoff link for the
// shopper's cart. defaultLocale is the shop's configured language, used when
// the request names none.
func Checkout(svc ordersvc.Service, logg *logger.Logger, defaultLocale enums.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token missing"))
			return
		}

		result, err := svc.Checkout(r.Context(), token, localeFromRequest(r, defaultLocale))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RegionList serves the delivery fee tiers the storefront renders at checkout.
func RegionList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.Regions())
	}
}
