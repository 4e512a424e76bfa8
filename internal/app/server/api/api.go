// GET    /health                # liveness probe (public)
// GET    /api/emails            # list, ?limit=&offset=
// GET    /api/emails/excel      # xlsx export, ?limit=
// GET    /api/emails/{id}
// POST   /api/emails
// PUT    /api/emails/{id}
// DELETE /api/emails/{id}
//
// Every path except /health requires the x-api-key header, unknown ones included.

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"mailkeeper/internal/app/server/api/http/email"
	healthAPI "mailkeeper/internal/app/server/api/http/health"
	"mailkeeper/internal/app/server/api/http/middleware"
	"mailkeeper/internal/app/server/api/http/middleware/apikey"
	"mailkeeper/internal/app/server/api/http/middleware/cors"
	"mailkeeper/internal/app/server/api/http/middleware/logger"
	"mailkeeper/internal/app/server/api/http/response"
	"mailkeeper/internal/app/server/config"
	"mailkeeper/internal/domain/credential"
)

type Handlers struct {
	Health *healthAPI.Handler
	Email  *email.Handler
}

// New builds the router with every operation registered through huma.
func New(cfg *config.Config, service credential.Servicer, log *slog.Logger) *chi.Mux {
	huma.NewError = response.NewError

	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.New(cfg.Server.FrontendURL))
	mux.Use(chimw.StripSlashes)
	mux.Use(apikey.New(cfg.Server.APIKey, log, healthAPI.Path).Middleware)

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteHTTP(w, http.StatusNotFound, "Not found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteHTTP(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	humaConfig := huma.DefaultConfig("Mailkeeper API", "1.0.0")
	// bodies carry only the documented fields, no $schema links
	humaConfig.CreateHooks = nil
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"apiKey": {Type: "apiKey", In: "header", Name: apikey.Header},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(service, log)
	h.Health.SetupRoutes(API)
	h.Email.SetupRoutes(API)

	return mux
}

func handlers(service credential.Servicer, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	emailHandler := email.NewHandler(service, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Email:  emailHandler,
	}
}
