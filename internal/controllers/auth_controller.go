package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"budget-be/internal/middleware"
	"budget-be/internal/models"
	"budget-be/internal/service"
)

type AuthController struct {
	authService  service.AuthService
	cookieMaxAge int
	cookieSecure bool
}

func NewAuthController(authService service.AuthService, cookieMaxAge int, cookieSecure bool) *AuthController {
	return &AuthController{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// Signup handles POST /api/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.authService.Signup(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// VerifyEmail handles GET /api/auth/verify?token=
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Verification token is required",
		})
		return
	}

	if err := ac.authService.VerifyEmail(token); err != nil {
		// An unknown token reads as 400 here, not 404: the link is simply
		// invalid or already used from the caller's point of view.
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or already used verification token",
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully. You can now sign in.",
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Please verify your email address before signing in",
			})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
		return
	}

	c.SetCookie(middleware.SessionCookieName, response.Token, ac.cookieMaxAge, "/", "", ac.cookieSecure, true)
	c.JSON(http.StatusOK, response)
}

// Logout handles POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", ac.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out",
	})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Please verify your email address first",
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	// Unknown emails get the same response so the endpoint can't be used
	// to probe which addresses have accounts.
	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for that address, a reset link has been sent",
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.ResetPassword(req.Token, req.Password); err != nil {
		// Invalid and expired tokens both surface as 400
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or already used reset token",
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset. You can now sign in with your new password.",
	})
}
