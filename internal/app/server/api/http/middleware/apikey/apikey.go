package apikey

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/exp/slog"

	"mailkeeper/internal/app/server/api/http/response"
)

const Header = "x-api-key"

// Gate compares the x-api-key header with the configured shared secret.
// It has no notion of identity. Every path except the exempt ones is
// checked, unknown routes included.
type Gate struct {
	key    string
	exempt map[string]struct{}
	log    *slog.Logger
}

func New(key string, log *slog.Logger, exempt ...string) *Gate {
	g := &Gate{
		key:    key,
		exempt: make(map[string]struct{}, len(exempt)),
		log:    log.With(slog.String("component", "api_key_gate")),
	}
	for _, p := range exempt {
		g.exempt[p] = struct{}{}
	}
	return g
}

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.isExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if g.key == "" {
			g.log.Warn("API_KEY not configured in environment")
			response.WriteHTTP(w, http.StatusInternalServerError, "Server configuration error")
			return
		}

		if !g.Allow(r.Header.Get(Header)) {
			g.log.Debug("rejected request", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
			response.WriteHTTP(w, http.StatusUnauthorized, "Unauthorized - Invalid or missing API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow reports whether presented equals the configured key exactly.
func (g *Gate) Allow(presented string) bool {
	if presented == "" || g.key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(g.key)) == 1
}

func (g *Gate) isExempt(path string) bool {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	_, ok := g.exempt[path]
	return ok
}
