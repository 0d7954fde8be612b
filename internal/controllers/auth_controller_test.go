package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-be/internal/middleware"
	"budget-be/internal/models"
	"budget-be/internal/service"
)

func authRouter(svc service.AuthService) *gin.Engine {
	router := newTestRouter()
	controller := NewAuthController(svc, 3600, false)
	router.POST("/api/auth/signup", controller.Signup)
	router.GET("/api/auth/verify", controller.VerifyEmail)
	router.POST("/api/auth/login", controller.Login)
	router.POST("/api/auth/logout", controller.Logout)
	router.POST("/api/auth/forgot-password", controller.ForgotPassword)
	router.POST("/api/auth/reset-password", controller.ResetPassword)
	return router
}

func TestSignupReturnsCreated(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(req *models.SignupRequest) (*models.SignupResponse, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			return &models.SignupResponse{Message: "Check your email", UserID: "user-1"}, nil
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestSignupRejectsShortPassword(t *testing.T) {
	router := authRouter(&stubAuthService{})

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "short",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(req *models.SignupRequest) (*models.SignupResponse, error) {
			return nil, service.ErrConflict
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerifyEmailRequiresToken(t *testing.T) {
	router := authRouter(&stubAuthService{})

	w := doRequest(router, jsonRequest(t, http.MethodGet, "/api/auth/verify", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmailUnknownTokenIsBadRequest(t *testing.T) {
	svc := &stubAuthService{
		verifyEmailFn: func(token string) error {
			return service.ErrNotFound
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodGet, "/api/auth/verify?token=bogus", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmailSucceeds(t *testing.T) {
	svc := &stubAuthService{
		verifyEmailFn: func(token string) error {
			assert.Equal(t, "tok-1", token)
			return nil
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodGet, "/api/auth/verify?token=tok-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(req *models.LoginRequest) (*models.AuthResponse, error) {
			return &models.AuthResponse{
				UserID:    "user-1",
				Name:      "Alice",
				Email:     req.Email,
				Role:      "user",
				CreatedAt: time.Now(),
				Token:     "signed-jwt",
			}, nil
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	}))

	require.Equal(t, http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "signed-jwt", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLoginUnverifiedEmailIsForbidden(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(req *models.LoginRequest) (*models.AuthResponse, error) {
			return nil, service.ErrEmailNotVerified
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	}))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginBadCredentialsAreUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(req *models.LoginRequest) (*models.AuthResponse, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	router := authRouter(&stubAuthService{})

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.MaxAge < 0)
}

func TestForgotPasswordAlwaysOKForUnknownEmail(t *testing.T) {
	svc := &stubAuthService{
		forgotPasswordFn: func(email string) error {
			return nil
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/forgot-password", models.ForgotPasswordRequest{
		Email: "nobody@example.com",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestForgotPasswordUnverifiedIsBadRequest(t *testing.T) {
	svc := &stubAuthService{
		forgotPasswordFn: func(email string) error {
			return service.ErrEmailNotVerified
		},
	}
	router := authRouter(svc)

	w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/forgot-password", models.ForgotPasswordRequest{
		Email: "alice@example.com",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordMapsTokenErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown token", service.ErrNotFound, http.StatusBadRequest},
		{"expired token", service.ErrExpired, http.StatusBadRequest},
		{"success", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{
				resetPasswordFn: func(token, newPassword string) error {
					return tt.err
				},
			}
			router := authRouter(svc)

			w := doRequest(router, jsonRequest(t, http.MethodPost, "/api/auth/reset-password", models.ResetPasswordRequest{
				Token:    "tok-1",
				Password: "new-password",
			}))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
