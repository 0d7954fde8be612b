package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"budget-be/internal/cache"
	"budget-be/internal/entities"
	"budget-be/internal/models"
	"budget-be/internal/repository"
)

// TransactionService defines the interface for transaction business logic.
// Every operation is scoped to the acting user; reads of foreign rows fail
// with ErrForbidden, absent rows with ErrNotFound.
type TransactionService interface {
	GetTransactions(userID string, filter models.TransactionFilter) ([]*entities.Transaction, error)
	GetTransaction(id, userID string) (*entities.Transaction, error)
	CreateTransaction(userID string, req *models.CreateTransactionRequest) (*entities.Transaction, error)
	UpdateTransaction(id, userID string, req *models.UpdateTransactionRequest) (*entities.Transaction, error)
	DeleteTransaction(id, userID string) error
}

type transactionService struct {
	repo         repository.TransactionRepository
	categoryRepo repository.CategoryRepository
	cache        cache.Cache
	ctx          context.Context
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, categoryRepo repository.CategoryRepository, cacheClient cache.Cache) TransactionService {
	return &transactionService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cache:        cacheClient,
		ctx:          context.Background(),
	}
}

// reportCachePrefix is shared with the report service so mutations here can
// drop the user's cached aggregates.
func reportCachePrefix(userID string) string {
	return fmt.Sprintf("reports:%s:", userID)
}

func (s *transactionService) invalidateReports(userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(s.ctx, reportCachePrefix(userID)); err != nil {
		log.Printf("Warning: failed to invalidate report cache for user %s: %v", userID, err)
	}
}

// checkCategory verifies the referenced category exists and is owned by the
// acting user.
func (s *transactionService) checkCategory(categoryID, userID string) error {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: category does not exist", ErrValidation)
		}
		return err
	}
	if category.UserID != userID {
		return fmt.Errorf("%w: category does not exist", ErrValidation)
	}
	return nil
}

// GetTransactions lists the user's transactions newest first
func (s *transactionService) GetTransactions(userID string, filter models.TransactionFilter) ([]*entities.Transaction, error) {
	transactions, err := s.repo.GetByUserID(userID, filter)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*entities.Transaction{}
	}
	return transactions, nil
}

// GetTransaction fetches one transaction, checking existence before ownership
func (s *transactionService) GetTransaction(id, userID string) (*entities.Transaction, error) {
	transaction, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if transaction.UserID != userID {
		return nil, ErrForbidden
	}

	return transaction, nil
}

// CreateTransaction records a new monetary event owned by the acting user.
// The owner id always comes from the session, never the request body.
func (s *transactionService) CreateTransaction(userID string, req *models.CreateTransactionRequest) (*entities.Transaction, error) {
	if err := s.checkCategory(req.CategoryID, userID); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	transaction := &entities.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Type:        entities.TransactionType(req.Type),
		Description: req.Description,
		Date:        date,
	}

	created, err := s.repo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.invalidateReports(userID)
	return created, nil
}

// UpdateTransaction applies a partial update after re-checking ownership
func (s *transactionService) UpdateTransaction(id, userID string, req *models.UpdateTransactionRequest) (*entities.Transaction, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(*req.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(id, userID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidateReports(userID)
	return updated, nil
}

// DeleteTransaction removes one transaction scoped by id and owner
func (s *transactionService) DeleteTransaction(id, userID string) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidateReports(userID)
	return nil
}
