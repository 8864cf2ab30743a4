package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rallyops/rally-planner/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rally not found", services.ErrRallyNotFound, http.StatusNotFound},
		{"member not found", services.ErrTeamMemberNotFound, http.StatusNotFound},
		{"duplicate assignment", services.ErrAssignmentConflict, http.StatusConflict},
		{"duplicate email", services.ErrUserEmailConflict, http.StatusConflict},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid dates", services.ErrRallyInvalidDateRange, http.StatusUnprocessableEntity},
		{"missing name", services.ErrMemberNameRequired, http.StatusUnprocessableEntity},
		{"storage disabled", services.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","bogus":1}`))
		var dst payload
		err := readJSON(httptest.NewRecorder(), req, &dst)
		assert.ErrorContains(t, err, "unknown key")
	})

	t.Run("rejects empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var dst payload
		err := readJSON(httptest.NewRecorder(), req, &dst)
		assert.ErrorContains(t, err, "must not be empty")
	})

	t.Run("rejects trailing values", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}{"name":"y"}`))
		var dst payload
		err := readJSON(httptest.NewRecorder(), req, &dst)
		assert.ErrorContains(t, err, "single JSON value")
	})

	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		var dst payload
		assert.NoError(t, readJSON(httptest.NewRecorder(), req, &dst))
		assert.Equal(t, "x", dst.Name)
	})
}
