package cors

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

var defaultOptions = cors.Options{
	AllowedMethods: []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	},
	AllowedHeaders: []string{"Content-Type", "X-Api-Key"},
	ExposedHeaders: []string{"Content-Disposition"},
}

// New allows the configured frontend origin ("*" or a comma separated list).
func New(frontendURL string) func(http.Handler) http.Handler {
	opts := defaultOptions

	origins := make([]string, 0, 1)
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	opts.AllowedOrigins = origins

	return cors.New(opts).Handler
}
