package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(http.StatusUnprocessableEntity, "validation failed",
		errors.New("expected string"), nil, errors.New("unexpected property"))

	assert.Equal(t, http.StatusBadRequest, err.GetStatus())
	assert.Equal(t, "validation failed: expected string; unexpected property", err.Error())

	b, jerr := json.Marshal(err)
	require.NoError(t, jerr)
	assert.JSONEq(t, `{"status":"error","message":"validation failed: expected string; unexpected property"}`, string(b))
}

func TestWriteHTTP(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteHTTP(rec, http.StatusNotFound, "Not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","message":"Not found"}`, rec.Body.String())
}

func TestNewError_KeepsOtherStatuses(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusUnsupportedMediaType, http.StatusInternalServerError} {
		assert.Equal(t, status, NewError(status, "x").GetStatus())
	}
}
