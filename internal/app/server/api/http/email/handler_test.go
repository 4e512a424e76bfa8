package email

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"mailkeeper/internal/domain/credential"
	"mailkeeper/internal/infrastructure/export"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, limit, offset int) (credential.Page, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).(credential.Page), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, id int64) (*credential.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, fields credential.Fields) (int64, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id int64, fields credential.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) Export(ctx context.Context, limit int) ([]byte, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func strPtr(s string) *string { return &s }

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected a huma.StatusError, got %v", err)
	return se.GetStatus()
}

func TestHandler_list(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      listInput
		setup      func(*MockService)
		wantStatus int
		wantLimit  int
	}{
		{
			name:  "defaults",
			input: listInput{},
			setup: func(s *MockService) {
				s.On("List", ctx, 100, 0).Return(credential.Page{Records: []credential.Credential{}, Limit: 100, Total: 0}, nil)
			},
			wantLimit: 100,
		},
		{
			name:  "explicit window",
			input: listInput{Limit: "2", Offset: "4"},
			setup: func(s *MockService) {
				s.On("List", ctx, 2, 4).Return(credential.Page{
					Records: []credential.Credential{{ID: 3}, {ID: 2}},
					Limit:   2,
					Offset:  4,
					Total:   9,
				}, nil)
			},
			wantLimit: 2,
		},
		{name: "non-numeric limit", input: listInput{Limit: "ten"}, setup: func(*MockService) {}, wantStatus: http.StatusBadRequest},
		{name: "negative offset", input: listInput{Offset: "-1"}, setup: func(*MockService) {}, wantStatus: http.StatusBadRequest},
		{
			name:  "store failure",
			input: listInput{},
			setup: func(s *MockService) {
				s.On("List", ctx, 100, 0).Return(credential.Page{}, credential.ErrStore)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setup(svc)
			h := NewHandler(svc, slog.Default(), nil)

			out, err := h.list(ctx, &tt.input)

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				assert.Nil(t, out)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "success", out.Body.Status)
				assert.Equal(t, tt.wantLimit, out.Body.Pagination.Limit)
				assert.NotNil(t, out.Body.Data)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_exportXLSX(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Export", ctx, 5).Return([]byte("PK"), nil)
		h := NewHandler(svc, slog.Default(), nil)

		out, err := h.exportXLSX(ctx, &exportInput{Limit: "5"})

		require.NoError(t, err)
		assert.Equal(t, export.ContentType, out.ContentType)
		assert.Equal(t, `attachment; filename="emails.xlsx"`, out.ContentDisposition)
		assert.Equal(t, []byte("PK"), out.Body)
		svc.AssertExpectations(t)
	})

	for _, limit := range []string{"", "0", "-2", "1.5", "abc"} {
		t.Run("InvalidLimit_"+limit, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, slog.Default(), nil)

			_, err := h.exportXLSX(ctx, &exportInput{Limit: limit})

			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
			svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
		})
	}

	t.Run("ExporterFailure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Export", ctx, 3).Return(nil, errors.New("zip: write error"))
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.exportXLSX(ctx, &exportInput{Limit: "3"})

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
		assert.Equal(t, "Server error", err.Error())
	})
}

func TestHandler_find(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		rec := &credential.Credential{ID: 7, Email: "a@x.com", Password: "p"}
		svc.On("Find", ctx, int64(7)).Return(rec, nil)
		h := NewHandler(svc, slog.Default(), nil)

		out, err := h.find(ctx, &idInput{ID: "7"})

		require.NoError(t, err)
		assert.Equal(t, rec, out.Body.Data)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Find", ctx, int64(8)).Return(nil, credential.ErrNotFound)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.find(ctx, &idInput{ID: "8"})

		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
		assert.Equal(t, "Email not found", err.Error())
	})

	t.Run("MalformedID", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.find(ctx, &idInput{ID: "seven"})

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		svc.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("ConnectionFailure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Find", ctx, int64(1)).Return(nil, credential.ErrConnection)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.find(ctx, &idInput{ID: "1"})

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
		assert.Equal(t, "Database error", err.Error())
	})
}

func TestHandler_create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		input := &createInput{}
		input.Body.Email = strPtr("a@x.com")
		input.Body.Password = strPtr("p")
		svc.On("Create", ctx, credential.Fields{Email: input.Body.Email, Password: input.Body.Password}).Return(int64(12), nil)
		h := NewHandler(svc, slog.Default(), nil)

		out, err := h.create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "success", out.Body.Status)
		assert.Equal(t, "Email created", out.Body.Message)
		assert.Equal(t, int64(12), out.Body.ID)
		svc.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Create", ctx, mock.Anything).Return(int64(0), credential.ErrPasswordRequired)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.create(ctx, &createInput{})

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Equal(t, "email and password are required", err.Error())
	})
}

func TestHandler_updateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdateSuccess", func(t *testing.T) {
		svc := new(MockService)
		input := &updateInput{ID: "3"}
		input.Body.Email = strPtr("b@x.com")
		input.Body.Password = strPtr("q")
		input.Body.SecretKey = strPtr("JBSWY3DP")
		svc.On("Update", ctx, int64(3), input.Body.fields()).Return(nil)
		h := NewHandler(svc, slog.Default(), nil)

		out, err := h.update(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "Email updated", out.Body.Message)
		svc.AssertExpectations(t)
	})

	t.Run("UpdateStoreFailure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Update", ctx, int64(3), mock.Anything).Return(credential.ErrStore)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.update(ctx, &updateInput{ID: "3"})

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})

	t.Run("DeleteSuccess", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Delete", ctx, int64(999)).Return(nil)
		h := NewHandler(svc, slog.Default(), nil)

		out, err := h.delete(ctx, &idInput{ID: "999"})

		require.NoError(t, err)
		assert.Equal(t, "Email deleted", out.Body.Message)
	})

	t.Run("DeleteMalformedID", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.delete(ctx, &idInput{ID: "1e3"})

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})
}

func TestHandler_ops(t *testing.T) {
	h := NewHandler(new(MockService), slog.Default(), nil)

	for _, op := range []huma.Operation{h.listOp(), h.exportOp(), h.findOp(), h.createOp(), h.updateOp(), h.deleteOp()} {
		assert.NotEmpty(t, op.Security, op.OperationID)
	}
	assert.Equal(t, http.StatusCreated, h.createOp().DefaultStatus)
	assert.Equal(t, "/api/emails/excel", h.exportOp().Path)
}
