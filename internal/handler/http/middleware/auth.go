package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/turbo-fm/facility-backend-go/internal/domain/auth"
	"github.com/turbo-fm/facility-backend-go/internal/handler/http/response"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/jwt"
)

// AuthRequired accepts verified, unrevoked access tokens only. It runs after
// jwtauth.Verifier has put the token in the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
