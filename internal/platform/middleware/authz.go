// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package middleware

import (
	"errors"
	"net/http"

	"github.com/tranminhvu/taskhive/internal/platform/constants"
	"github.com/tranminhvu/taskhive/internal/platform/ctxutil"
	"github.com/tranminhvu/taskhive/internal/platform/sec"
)

// # Authentication & Authorization

// TokenVerifier abstracts the token verification logic (implemented by sec.TokenService).
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

/*
Authenticate validates the access token and injects user claims into the context.

This middleware is OPTIONAL authentication:

  - If no token is provided, the request proceeds as anonymous.
  - If a token is provided but invalid or expired, a 401 is returned immediately.
  - If a token is valid, claims are injected for downstream handlers.

Endpoints that mandate a logged-in user must additionally be wrapped with
[RequireAuth].
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the raw token from the Authorization header or cookie
			tokenString := extractToken(request)

			// 2. No credential at all: proceed as an anonymous visitor
			if tokenString == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Cryptographically verify the token
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				// Distinguish the expired case so clients know to re-login
				// rather than treat the token as corrupt.
				if errors.Is(err, sec.ErrTokenExpired) {
					writeError(writer, http.StatusUnauthorized, "TOKEN_EXPIRED", "Session expired. Please log in again.")
					return
				}
				writeError(writer, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid authentication token")
				return
			}

			// 4. Inject verified identity into the request context
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects any request that has not been authenticated upstream.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		// Check the presence of claims injected by Authenticate
		if ctxutil.GetAuthUser(request.Context()) == nil {
			writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// extractToken pulls the raw token from the Authorization header, falling
// back to the auth cookie used by browser clients.
func extractToken(request *http.Request) string {

	// Prefer the explicit Authorization header (API clients)
	if header := request.Header.Get("Authorization"); header != "" {
		return sec.StripBearerPrefix(header)
	}

	// Fall back to the session cookie (browser clients)
	if cookie, err := request.Cookie(constants.AuthTokenCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
