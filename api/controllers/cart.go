package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bellakids/storefront-backend/api/middleware"
	"github.com/bellakids/storefront-backend/api/responses"
	"github.com/bellakids/storefront-backend/api/validators"
	cartsvc "github.com/bellakids/storefront-backend/internal/cart"
	"github.com/bellakids/storefront-backend/pkg/enums"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/logger"
)

// CartFetch returns the shopper's cart, empty when nothing is stored yet.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(w, r, svc, logg)
		if !ok {
			return
		}

		c, err := svc.GetCart(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(c))
	}
}

type addCartItemRequest struct {
	ProductID  uuid.UUID `json:"productId" validate:"required"`
	Size       string    `json:"size"`
	Color      string    `json:"color"`
	ImageURL   string    `json:"imageUrl"`
	VariantTag string    `json:"variantTag"`
	Quantity   int       `json:"quantity" validate:"omitempty,min=1"`
}

// CartAddItem validates the variant and merges it into the cart. defaultLocale
// is the shop's configured language, used when the request names none.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger, defaultLocale enums.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(w, r, svc, logg)
		if !ok {
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := svc.AddItem(r.Context(), token, cartsvc.AddItemInput{
			ProductID:  body.ProductID,
			Size:       body.Size,
			Color:      body.Color,
			ImageURL:   body.ImageURL,
			VariantTag: body.VariantTag,
			Quantity:   body.Quantity,
			Locale:     localeFromRequest(r, defaultLocale),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(c))
	}
}

// CartRemoveItem drops the line at the path index.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(w, r, svc, logg)
		if !ok {
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line index"))
			return
		}

		c, err := svc.RemoveItem(r.Context(), token, index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(c))
	}
}

type setRegionRequest struct {
	Region string `json:"region"`
}

// CartSetRegion records the delivery region choice on the cart.
func CartSetRegion(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(w, r, svc, logg)
		if !ok {
			return
		}

		var body setRegionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := svc.SetRegion(r.Context(), token, body.Region)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartsvc.Summarize(c))
	}
}

// CartClear drops the stored cart entirely.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := cartToken(w, r, svc, logg)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func cartToken(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	token := middleware.CartTokenFromContext(r.Context())
	if token == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token missing"))
		return "", false
	}
	return token, true
}
