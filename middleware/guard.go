package middleware

import (
	"context"
	"net/http"
	"strings"

	goFed "github.com/MrEthical07/goFed"
)

type authResultContextKey struct{}

// AuthResultFromContext retrieves the validated identity injected by [Guard].
func AuthResultFromContext(ctx context.Context) (*goFed.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*goFed.AuthResult)
	return res, ok
}

// Guard rejects requests without a valid bearer access token and injects the
// validated [goFed.AuthResult] into the request context.
func Guard(engine *goFed.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res, err := engine.Validate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
