// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with parsed client metadata.
//
/*
Context
--------
This handler sits high in the chain, after metrics but before the dialog and
catalog routes.  For every request it:

  1. Parses the User-Agent header.
  2. Extracts the left-most client IP from X-Forwarded-For or X-Real-IP,
     falling back to r.RemoteAddr.
  3. Attaches a request-scoped logger (client IP, device class, bot flag) to
     the context, so handlers log with consistent fields via
     logger.FromContext.

Notes
-----
  • The UA parse is pool-based and read-only, safe under heavy concurrency.
*/
package requestinfo

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/shopadmin/internal/logger"
	"github.com/yanizio/shopadmin/internal/ua"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich wraps an http.Handler and seeds the context logger.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		info := ua.Parse(r.UserAgent())

		log := zap.S().With(
			"ip", ip,
			"device", info.Device,
			"browser", info.Browser,
			"bot", info.IsBot,
		)
		log.Debugw("request", "method", r.Method, "path", r.URL.Path)

		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), log)))
	})
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// clientIP returns the best-guess client address.  Proxy headers win over
// the socket peer.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i != -1 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		return xr
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
