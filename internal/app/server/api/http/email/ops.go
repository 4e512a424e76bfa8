package email

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mailkeeper/internal/infrastructure/export"
)

const basePath = "/api/emails"

var security = []map[string][]string{{"apiKey": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "emails-list",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "List emails, newest first",
		Tags:        []string{"emails"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "emails-export",
		Method:      http.MethodGet,
		Path:        basePath + "/excel",
		Summary:     "Export the newest emails to xlsx",
		Tags:        []string{"emails"},
		Security:    security,
		Middlewares: h.middleware,
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Spreadsheet document",
				Content: map[string]*huma.MediaType{
					export.ContentType: {},
				},
			},
		},
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "emails-find",
		Method:      http.MethodGet,
		Path:        basePath + "/{id}",
		Summary:     "Get one email",
		Tags:        []string{"emails"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "emails-create",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Add an email",
		Description:   "email and password must be non-empty; the optional fields are stored as NULL when empty.",
		Tags:          []string{"emails"},
		Security:      security,
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "emails-update",
		Method:      http.MethodPut,
		Path:        basePath + "/{id}",
		Summary:     "Replace an email",
		Description: "Overwrites every field. An unknown id is not reported.",
		Tags:        []string{"emails"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "emails-delete",
		Method:      http.MethodDelete,
		Path:        basePath + "/{id}",
		Summary:     "Delete an email",
		Description: "Succeeds whether or not the row existed.",
		Tags:        []string{"emails"},
		Security:    security,
		Middlewares: h.middleware,
	}
}
