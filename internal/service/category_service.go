package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"budget-be/internal/entities"
	"budget-be/internal/models"
	"budget-be/internal/repository"
)

// CategoryService defines the interface for category business logic.
// Every operation is scoped to the acting user.
type CategoryService interface {
	GetCategories(userID string, ctype string) ([]*entities.Category, error)
	CreateCategory(userID string, req *models.CreateCategoryRequest) (*entities.Category, error)
	DeleteCategory(id, userID string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// GetCategories lists the user's categories, optionally filtered by type
func (s *categoryService) GetCategories(userID string, ctype string) ([]*entities.Category, error) {
	t := entities.TransactionType(ctype)
	if ctype != "" && !t.Valid() {
		return nil, fmt.Errorf("%w: type must be INCOME or EXPENSE", ErrValidation)
	}

	categories, err := s.repo.GetByUserID(userID, t)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*entities.Category{}
	}
	return categories, nil
}

// CreateCategory creates a category owned by the acting user. The owner id
// comes from the session, never from the request body.
func (s *categoryService) CreateCategory(userID string, req *models.CreateCategoryRequest) (*entities.Category, error) {
	category, err := s.repo.Create(uuid.NewString(), userID, req.Name, entities.TransactionType(req.Type), req.Icon)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category with this name and type already exists", ErrConflict)
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category after checking existence first and
// ownership second. Transactions referencing the category are left alone.
func (s *categoryService) DeleteCategory(id, userID string) error {
	category, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if category.UserID != userID {
		return ErrForbidden
	}

	err = s.repo.Delete(id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
