package repository

import (
	"database/sql"
	"fmt"
	"time"

	"budget-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(id, name, email, passwordHash, verificationToken string) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	FindByResetToken(token string) (*entities.User, error)
	ConsumeVerificationToken(token string) error
	SetResetToken(userID, token string, expires time.Time) error
	ConsumeResetToken(token, passwordHash string) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, email_verified, verification_token, reset_token, reset_expires, created_at, updated_at`

func scanUser(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.EmailVerified,
		&user.VerificationToken,
		&user.ResetToken,
		&user.ResetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// Create inserts a new unverified user into the database
func (r *userRepository) Create(id, name, email, passwordHash, verificationToken string) (*entities.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, verification_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(query, id, name, email, passwordHash, verificationToken))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(query, email))
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(query, id))
}

// FindByResetToken finds a user holding the given reset token
func (r *userRepository) FindByResetToken(token string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	return scanUser(r.db.QueryRow(query, token))
}

// ConsumeVerificationToken marks the holder of the token as verified and
// clears the token in the same statement, so a token can only ever be
// consumed once even under concurrent requests.
func (r *userRepository) ConsumeVerificationToken(token string) error {
	query := `
		UPDATE users
		SET email_verified = NOW(), verification_token = NULL, updated_at = NOW()
		WHERE verification_token = $1
	`

	result, err := r.db.Exec(query, token)
	if err != nil {
		return fmt.Errorf("failed to consume verification token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// SetResetToken stores a reset token and its expiry on the user record,
// replacing any previously issued token.
func (r *userRepository) SetResetToken(userID, token string, expires time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $1, reset_expires = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.Exec(query, token, expires.UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ConsumeResetToken writes the new password hash and clears the token and
// its expiry in a single statement keyed by the token value. A second
// concurrent consumer sees zero rows affected.
func (r *userRepository) ConsumeResetToken(token, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_expires = NULL, updated_at = NOW()
		WHERE reset_token = $2
	`

	result, err := r.db.Exec(query, passwordHash, token)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
