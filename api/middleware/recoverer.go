package middleware

import (
	"fmt"
	"net/http"

	"github.com/vitrinalabs/storefront-backend/api/responses"
	pkgerrors "github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
)

// Recoverer turns handler panics into a 500 response instead of tearing
// down the connection. http.ErrAbortHandler passes through untouched so
// deliberate aborts keep their meaning.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"method": r.Method,
						"path":   r.URL.Path,
					})
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
