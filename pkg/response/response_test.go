package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/nexus/pkg/response"
)

func TestSuccessWritesPayloadAsIs(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]any{"id": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, http.StatusServiceUnavailable, "backing store unavailable")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":503,"message":"backing store unavailable"}`, rec.Body.String())
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t,
		`{"status":422,"message":"Validation failed","errors":{"email":"is required"}}`,
		rec.Body.String())
}

func TestUnauthorizedDefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Unauthorized(rec, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":401,"message":"Unauthorized"}`, rec.Body.String())
}
