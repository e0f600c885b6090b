package trigger

import (
	"net/http"
	"slices"

	"github.com/kultapp/jobengine/handler"
)

const (
	headerCronSecret = "X-Cron-Secret"
	allowHeaders     = "authorization, x-client-info, apikey, content-type, x-cron-secret"
)

// cors sets the CORS headers on every response and answers preflight
// requests with an empty 200. A request whose Origin is not on the
// allow-list is answered with the first allowed origin.
func cors(allowed []string) func(http.Handler) http.Handler {
	fallback := ""
	if len(allowed) > 0 {
		fallback = allowed[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if !slices.Contains(allowed, origin) {
				origin = fallback
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				_ = handler.Empty().Render(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
