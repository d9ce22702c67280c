package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/middleware"
	"github.com/el-receso/cafeteria-service/internal/models"
)

type fakeAuthenticator struct {
	registerErr error
	loginErr    error
	user        *models.User
	token       string
}

func (f *fakeAuthenticator) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.user, nil
}

func (f *fakeAuthenticator) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.token, f.user, nil
}

func (f *fakeAuthenticator) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.user, nil
}

func (f *fakeAuthenticator) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return nil
}

type fakeCartClearer struct {
	cleared []string
}

func (f *fakeCartClearer) Clear(ctx context.Context, sessionID string) error {
	f.cleared = append(f.cleared, sessionID)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRegisterHandler(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "maria", Role: models.RoleStudent}
	h := NewAuthHandler(&fakeAuthenticator{user: user}, &fakeCartClearer{}, testLogger())

	body, _ := json.Marshal(models.RegisterRequest{Username: "maria", Email: "m@e.edu", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "maria", got.Username)
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	h := NewAuthHandler(&fakeAuthenticator{registerErr: apperr.ErrDuplicate}, &fakeCartClearer{}, testLogger())

	body, _ := json.Marshal(models.RegisterRequest{Username: "maria", Email: "m@e.edu", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandlerBadBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthenticator{}, &fakeCartClearer{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "maria", Role: models.RoleStudent}
	h := NewAuthHandler(&fakeAuthenticator{user: user, token: "tok123"}, &fakeCartClearer{}, testLogger())

	body, _ := json.Marshal(models.LoginRequest{Username: "maria", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "tok123", got.Token)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&fakeAuthenticator{loginErr: apperr.ErrInvalidCredentials}, &fakeCartClearer{}, testLogger())

	body, _ := json.Marshal(models.LoginRequest{Username: "maria", Password: "bad"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsSessionCart(t *testing.T) {
	clearer := &fakeCartClearer{}
	h := NewAuthHandler(&fakeAuthenticator{}, clearer, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	ctx := context.WithValue(req.Context(), middleware.SessionIDKey, "session-9")
	rec := httptest.NewRecorder()

	h.Logout(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"session-9"}, clearer.cleared)
}
