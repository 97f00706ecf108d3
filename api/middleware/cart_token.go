package middleware

import (
	"net/http"
	"strings"

	"github.com/bellakids/storefront-backend/api/responses"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
	"github.com/bellakids/storefront-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

const maxCartTokenLen = 128

// CartToken requires the shopper's cart token header on cart routes and
// seeds it into the request context. The client generates the token once and
// keeps sending it; the server never hands tokens out.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
			if token == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "missing cart token header").
						WithDetails(map[string]string{"header": cartTokenHeader}))
				return
			}
			if len(token) > maxCartTokenLen || !isTokenSafe(token) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "malformed cart token"))
				return
			}

			ctx := WithCartToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isTokenSafe keeps the token usable as a Redis key segment.
func isTokenSafe(token string) bool {
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
