package middleware

import (
	"net/http"

	"github.com/JonMunkholm/groupbuy/internal/logging"
)

// RequireAdmin returns middleware that lets a request through only when
// isAdmin reports a logged-in operator. Other requests are redirected to
// loginPath with 303 See Other, so a rejected form post turns into a GET.
func RequireAdmin(isAdmin func(*http.Request) bool, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isAdmin(r) {
				next.ServeHTTP(w, r)
				return
			}

			logging.FromContext(r.Context()).Warn("auth: admin session required",
				"path", r.URL.Path,
				"method", r.Method,
				"ip", ClientIP(r),
			)
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
		})
	}
}
