package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipify/backend/internal/models"
	"github.com/pageza/recipify/backend/internal/service"
)

func TestGetMe(t *testing.T) {
	userID := "0b7e2a3c-6f0e-4bb4-9a57-0c1d2e3f4a5b"

	t.Run("found", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		email := "cook@example.com"
		ts.profiles.On("GetProfile", mock.Anything, userID).
			Return(&models.User{ID: uuid.MustParse(userID), Email: &email, IsPaidStatus: true}, nil).Once()

		rr := ts.do(http.MethodGet, "/api/users/me", "", true)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":"`+userID+`","avatar_url":null,"email":"cook@example.com","name":null,"is_paid_status":true}`, rr.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		ts.profiles.On("GetProfile", mock.Anything, userID).Return(nil, service.ErrProfileNotFound).Once()

		rr := ts.do(http.MethodGet, "/api/users/me", "", true)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("store unavailable", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		ts.profiles.On("GetProfile", mock.Anything, userID).Return(nil, service.ErrProfileStoreUnavailable).Once()

		rr := ts.do(http.MethodGet, "/api/users/me", "", true)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("unexpected failure", func(t *testing.T) {
		ts := setupTestServer(t, nil)
		ts.profiles.On("GetProfile", mock.Anything, userID).Return(nil, errors.New("db exploded")).Once()

		rr := ts.do(http.MethodGet, "/api/users/me", "", true)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "exploded")
	})
}
