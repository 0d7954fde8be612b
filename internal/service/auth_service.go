package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"budget-be/internal/entities"
	"budget-be/internal/jwt"
	"budget-be/internal/mailer"
	"budget-be/internal/models"
	"budget-be/internal/repository"
)

// resetTokenTTL is how long a password-reset token stays valid.
// Verification tokens deliberately carry no expiry.
const resetTokenTTL = 24 * time.Hour

// AuthService defines the interface for account lifecycle logic:
// signup, login, email verification and password reset.
type AuthService interface {
	Signup(req *models.SignupRequest) (*models.SignupResponse, error)
	Login(req *models.LoginRequest) (*models.AuthResponse, error)
	VerifyEmail(token string) error
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

type authService struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	jwtService   *jwt.JWTService
	mailer       mailer.Mailer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, categoryRepo repository.CategoryRepository, jwtService *jwt.JWTService, m mailer.Mailer) AuthService {
	return &authService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		jwtService:   jwtService,
		mailer:       m,
	}
}

// generateToken returns an opaque URL-safe token backed by 128 bits of
// cryptographically secure randomness.
func generateToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// defaultCategories are provisioned for every new account
var defaultCategories = []struct {
	Name string
	Type entities.TransactionType
	Icon string
}{
	{"Salary", entities.TypeIncome, "banknote"},
	{"Investments", entities.TypeIncome, "trending-up"},
	{"Freelance", entities.TypeIncome, "briefcase"},
	{"Other Income", entities.TypeIncome, "plus-circle"},
	{"Housing", entities.TypeExpense, "home"},
	{"Food", entities.TypeExpense, "utensils"},
	{"Transport", entities.TypeExpense, "car"},
	{"Bills", entities.TypeExpense, "zap"},
	{"Health", entities.TypeExpense, "heart-pulse"},
	{"Entertainment", entities.TypeExpense, "film"},
	{"Shopping", entities.TypeExpense, "shopping-bag"},
	{"Other Expenses", entities.TypeExpense, "minus-circle"},
}

// Signup creates a new unverified account, provisions the default category
// set and sends the verification email. A failed send does not roll the
// signup back; the user can request another verification later.
func (s *authService) Signup(req *models.SignupRequest) (*models.SignupResponse, error) {
	verificationToken, err := generateToken()
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(uuid.NewString(), req.Name, req.Email, string(hashedPassword), verificationToken)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	for _, c := range defaultCategories {
		icon := c.Icon
		if _, err := s.categoryRepo.Create(uuid.NewString(), user.ID, c.Name, c.Type, &icon); err != nil {
			log.Printf("Warning: failed to provision default category %q for user %s: %v", c.Name, user.ID, err)
		}
	}

	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, verificationToken); err != nil {
		log.Printf("Warning: failed to send verification email to %s: %v", user.Email, err)
	}

	return &models.SignupResponse{
		Message: "Account created. Please verify your email address using the link we sent you.",
		UserID:  user.ID,
	}, nil
}

// Login authenticates a verified user and returns user info with a JWT token
func (s *authService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		// Only an absent row reads as bad credentials; a store failure
		// must surface as an internal error, not a 401.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsVerified() {
		return nil, ErrEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Token:     token,
	}, nil
}

// VerifyEmail consumes a verification token. The repository clears the
// token and sets the verified timestamp in one statement, so a token that
// was already used reads as absent.
func (s *authService) VerifyEmail(token string) error {
	err := s.userRepo.ConsumeVerificationToken(token)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: invalid or already used verification token", ErrNotFound)
	}
	return err
}

// ForgotPassword issues a reset token and emails the reset link. Unknown
// emails return success so the endpoint cannot be used to probe accounts.
func (s *authService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsVerified() {
		return ErrEmailNotVerified
	}

	resetToken, err := generateToken()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetResetToken(user.ID, resetToken, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// Fire-and-forget: the token is already issued, a failed send only
	// means the user never receives the link.
	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, resetToken); err != nil {
		log.Printf("Warning: failed to send password reset email to %s: %v", user.Email, err)
	}

	return nil
}

// ResetPassword consumes a reset token and writes the new password hash.
// The final update is keyed by the token value, so a concurrent consumer
// racing on the same token loses with NotFound.
func (s *authService) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: invalid or already used reset token", ErrNotFound)
		}
		return fmt.Errorf("failed to find reset token: %w", err)
	}

	if user.ResetExpires == nil || time.Now().After(*user.ResetExpires) {
		return ErrExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepo.ConsumeResetToken(token, string(hashedPassword))
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: reset token already used", ErrNotFound)
	}
	return err
}
