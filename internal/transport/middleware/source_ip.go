package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/heartmarshall/correspondence-backend/pkg/ctxutil"
)

// SourceIP stores the client address in the context; audit records read it
// from there. The first X-Forwarded-For hop wins over the socket address.
func SourceIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(ctxutil.WithSourceIP(r.Context(), clientIP(r))))
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
