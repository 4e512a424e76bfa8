package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	Path     = "/health"
	StatusOK = "ok"
)

type probeOutput struct {
	Body struct {
		Status string `json:"status" example:"ok" doc:"Always ok while the process serves requests"`
	}
}

// Handler answers the liveness probe. It never touches the database and is
// registered without the API key gate.
type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		log:        log.With("component", "health_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.probeOp(), h.probe)
}

func (h *Handler) probeOp() huma.Operation {
	return huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Liveness probe",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) probe(context.Context, *struct{}) (*probeOutput, error) {
	out := &probeOutput{}
	out.Body.Status = StatusOK
	return out, nil
}
