package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/interfaces/http/middleware"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
	"github.com/Hazhaz1412/smart-city-iot/pkg/jwt"
)

func newAuthHandler(repo *userRepoStub) *AuthHandler {
	jwtService := jwt.NewService("handler-test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthHandler(usecases.NewAuthUsecase(repo, jwtService))
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	registered := false
	repo := &userRepoStub{
		createFn: func(_ context.Context, user *entities.User) error {
			registered = true
			require.Equal(t, "alice@example.com", user.Email)
			user.ID = uuid.New()
			return nil
		},
		findByEmailFn: func(_ context.Context, email string) (*entities.User, error) {
			if registered && email == "alice@example.com" {
				return &entities.User{
					ID:           uuid.New(),
					Email:        email,
					Name:         "Alice",
					PasswordHash: string(hash),
					Role:         entities.UserRoleUser,
				}, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}

	h := newAuthHandler(repo)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"alice@example.com","name":"Alice","password":"supersecret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"accessToken"`)
	require.NotContains(t, w.Body.String(), "supersecret")

	req = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"supersecret"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"refreshToken"`)
}

func TestAuthHandler_RegisterInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newAuthHandler(&userRepoStub{})
	r := gin.New()
	r.POST("/auth/register", h.Register)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &userRepoStub{
		findByEmailFn: func(_ context.Context, email string) (*entities.User, error) {
			return &entities.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: string(hash),
				Role:         entities.UserRoleUser,
			}, nil
		},
	}

	h := newAuthHandler(repo)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrongpassword"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Profile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	repo := &userRepoStub{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			require.Equal(t, userID, id)
			return &entities.User{ID: id, Email: "alice@example.com", Name: "Alice", Role: entities.UserRoleUser}, nil
		},
	}

	h := newAuthHandler(repo)
	r := gin.New()
	withUser := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
	r.GET("/auth/me", withUser, h.Profile)
	r.GET("/auth/me-anon", h.Profile)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alice@example.com")

	req = httptest.NewRequest(http.MethodGet, "/auth/me-anon", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
