package email

import (
	"context"
	"errors"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mailkeeper/internal/app/server/api/http/response"
	"mailkeeper/internal/domain/credential"
	"mailkeeper/internal/infrastructure/export"
)

const (
	defaultLimit  = 100
	defaultOffset = 0
)

type Handler struct {
	service    credential.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service credential.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "email_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.exportOp(), h.exportXLSX)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	limit, err := parseNonNegative(input.Limit, defaultLimit)
	if err != nil {
		return nil, huma.Error400BadRequest("limit must be a non-negative integer")
	}
	offset, err := parseNonNegative(input.Offset, defaultOffset)
	if err != nil {
		return nil, huma.Error400BadRequest("offset must be a non-negative integer")
	}

	page, err := h.service.List(ctx, limit, offset)
	if err != nil {
		return nil, h.fail("list emails", err, "Database error")
	}

	return &listOutput{
		Body: listResponse{
			Status: response.StatusSuccess,
			Data:   page.Records,
			Pagination: pagination{
				Limit:  page.Limit,
				Offset: page.Offset,
				Total:  page.Total,
			},
		},
	}, nil
}

func (h *Handler) exportXLSX(ctx context.Context, input *exportInput) (*exportOutput, error) {
	limit, err := strconv.Atoi(input.Limit)
	if err != nil || limit <= 0 {
		return nil, huma.Error400BadRequest("limit must be a positive integer")
	}

	doc, err := h.service.Export(ctx, limit)
	if err != nil {
		return nil, h.fail("export emails", err, "Server error")
	}

	return &exportOutput{
		ContentType:        export.ContentType,
		ContentDisposition: `attachment; filename="` + export.FileName + `"`,
		Body:               doc,
	}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*findOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	rec, err := h.service.Find(ctx, id)
	if err != nil {
		return nil, h.fail("find email", err, "Database error")
	}

	return &findOutput{
		Body: findResponse{
			Status: response.StatusSuccess,
			Data:   rec,
		},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	id, err := h.service.Create(ctx, input.Body.fields())
	if err != nil {
		return nil, h.fail("create email", err, "Database error")
	}

	return &createOutput{
		Body: createResponse{
			Status:  response.StatusSuccess,
			Message: "Email created",
			ID:      id,
		},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*messageOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.service.Update(ctx, id, input.Body.fields()); err != nil {
		return nil, h.fail("update email", err, "Database error")
	}

	return &messageOutput{
		Body: messageResponse{
			Status:  response.StatusSuccess,
			Message: "Email updated",
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*messageOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(ctx, id); err != nil {
		return nil, h.fail("delete email", err, "Database error")
	}

	return &messageOutput{
		Body: messageResponse{
			Status:  response.StatusSuccess,
			Message: "Email deleted",
		},
	}, nil
}

// fail maps domain errors to HTTP errors. Anything unclassified is logged
// and reported with a generic message.
func (h *Handler) fail(op string, err error, generic string) error {
	var verr *credential.ValidationError

	switch {
	case errors.As(err, &verr):
		return huma.Error400BadRequest(verr.Message)
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("Email not found")
	}

	h.log.Error(op+" failed", "error", err)
	return huma.Error500InternalServerError(generic)
}

func parseNonNegative(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, huma.Error400BadRequest("id must be an integer")
	}
	return id, nil
}
