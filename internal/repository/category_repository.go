package repository

import (
	"database/sql"
	"fmt"

	"budget-be/internal/entities"
)

// CategoryRepository defines the interface for category database operations
type CategoryRepository interface {
	Create(id, userID, name string, ctype entities.TransactionType, icon *string) (*entities.Category, error)
	FindByID(id string) (*entities.Category, error)
	GetByUserID(userID string, ctype entities.TransactionType) ([]*entities.Category, error)
	Delete(id, userID string) error
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a new category for a user
func (r *categoryRepository) Create(id, userID, name string, ctype entities.TransactionType, icon *string) (*entities.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, type, icon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, type, icon, created_at
	`

	var category entities.Category
	err := r.db.QueryRow(query, id, userID, name, ctype, icon).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.Icon,
		&category.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// FindByID finds a category by ID regardless of owner. Callers check
// ownership against the authenticated principal.
func (r *categoryRepository) FindByID(id string) (*entities.Category, error) {
	query := `
		SELECT id, user_id, name, type, icon, created_at
		FROM categories
		WHERE id = $1
	`

	var category entities.Category
	err := r.db.QueryRow(query, id).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.Icon,
		&category.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return &category, nil
}

// GetByUserID retrieves a user's categories ordered by name, optionally
// filtered by type.
func (r *categoryRepository) GetByUserID(userID string, ctype entities.TransactionType) ([]*entities.Category, error) {
	query := `
		SELECT id, user_id, name, type, icon, created_at
		FROM categories
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if ctype != "" {
		query += ` AND type = $2`
		args = append(args, ctype)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		var category entities.Category
		err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.Name,
			&category.Type,
			&category.Icon,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Delete removes a category scoped by both id and owning user
func (r *categoryRepository) Delete(id, userID string) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
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
