package i18n

import "net/http"

// Middleware installs a fresh RequestCache, backed by loader, in the
// context of every request. Locale selection is left to the handler chain
// (see WithLocale).
func Middleware(loader ConfigLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithRequestCache(r.Context(), NewRequestCache(loader))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
