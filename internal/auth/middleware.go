package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"ms-checkin/internal/config"
)

type contextKey string

const operatorEmailKey contextKey = "operator_email"

// Middleware resolves the current operator's identity from the request
// and stores their email in the context. With an OIDC issuer configured
// it verifies the bearer token; with SkipVerification it trusts the
// token's claims (or the X-Operator-Email header) for local use.
func Middleware(cfg config.AuthConfig) func(http.Handler) http.Handler {
	if cfg.SkipVerification {
		return unverifiedMiddleware()
	}

	if cfg.OIDCIssuer == "" {
		panic("OIDC_ISSUER env var not set (set SKIP_AUTH=true for local use)")
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.OIDCIssuer)
	if err != nil {
		panic(fmt.Sprintf("Failed to create OIDC provider: %v", err))
	}

	verifier := provider.Verifier(&oidc.Config{
		SkipClientIDCheck: true,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			idToken, err := verifier.Verify(r.Context(), rawToken)
			if err != nil {
				http.Error(w, fmt.Sprintf("invalid token: %v", err), http.StatusUnauthorized)
				return
			}

			var claims struct {
				Email string `json:"email"`
				Sub   string `json:"sub"`
			}
			if err := idToken.Claims(&claims); err != nil {
				http.Error(w, "failed to parse claims", http.StatusUnauthorized)
				return
			}

			email := claims.Email
			if email == "" {
				email = claims.Sub
			}

			ctx := context.WithValue(r.Context(), operatorEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unverifiedMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := r.Header.Get("X-Operator-Email")
			if email == "" {
				if rawToken, err := ExtractTokenFromRequest(r); err == nil {
					email, _ = ExtractEmailFromJWT(rawToken)
				}
			}

			if email == "" {
				http.Error(w, "operator identity required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorEmail returns the operator identity stored by Middleware.
func OperatorEmail(ctx context.Context) string {
	if email, ok := ctx.Value(operatorEmailKey).(string); ok {
		return email
	}
	return ""
}

// WithOperatorEmail injects an operator identity, for tests and
// internal callers.
func WithOperatorEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, operatorEmailKey, email)
}
