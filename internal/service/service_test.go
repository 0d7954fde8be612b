package service

import (
	"context"
	"strings"
	"time"

	"budget-be/internal/entities"
	"budget-be/internal/models"
	"budget-be/internal/repository"
)

// In-memory repository fakes shared by the service tests. They mirror the
// scoping semantics of the SQL repositories: owner-scoped deletes report
// NotFound when no row matches, token consumption is single-use.

type fakeUserRepo struct {
	users map[string]*entities.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(id, name, email, passwordHash, verificationToken string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return nil, repository.ErrDuplicate
		}
	}
	now := time.Now()
	token := verificationToken
	user := &entities.User{
		ID:                id,
		Name:              name,
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              "user",
		VerificationToken: &token,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.users[id] = user
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByResetToken(token string) (*entities.User, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ConsumeVerificationToken(token string) error {
	for _, u := range r.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			now := time.Now()
			u.EmailVerified = &now
			u.VerificationToken = nil
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeUserRepo) SetResetToken(userID, token string, expires time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetExpires = &expires
	return nil
}

func (r *fakeUserRepo) ConsumeResetToken(token, passwordHash string) error {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetExpires = nil
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCategoryRepo struct {
	categories map[string]*entities.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entities.Category)}
}

func (r *fakeCategoryRepo) Create(id, userID, name string, ctype entities.TransactionType, icon *string) (*entities.Category, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name && c.Type == ctype {
			return nil, repository.ErrDuplicate
		}
	}
	category := &entities.Category{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Type:      ctype,
		Icon:      icon,
		CreatedAt: time.Now(),
	}
	r.categories[id] = category
	return category, nil
}

func (r *fakeCategoryRepo) FindByID(id string) (*entities.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) GetByUserID(userID string, ctype entities.TransactionType) ([]*entities.Category, error) {
	var out []*entities.Category
	for _, c := range r.categories {
		if c.UserID == userID && (ctype == "" || c.Type == ctype) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(id, userID string) error {
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeTransactionRepo struct {
	transactions map[string]*entities.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[string]*entities.Transaction)}
}

func (r *fakeTransactionRepo) Create(t *entities.Transaction) (*entities.Transaction, error) {
	now := time.Now()
	stored := *t
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.transactions[t.ID] = &stored
	return &stored, nil
}

func (r *fakeTransactionRepo) FindByID(id string) (*entities.Transaction, error) {
	if t, ok := r.transactions[id]; ok {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTransactionRepo) GetByUserID(userID string, filter models.TransactionFilter) ([]*entities.Transaction, error) {
	var out []*entities.Transaction
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && string(t.Type) != filter.Type {
			continue
		}
		if filter.CategoryID != "" && t.CategoryID != filter.CategoryID {
			continue
		}
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTransactionRepo) Update(id, userID string, req *models.UpdateTransactionRequest) (*entities.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Type != nil {
		t.Type = entities.TransactionType(*req.Type)
	}
	if req.CategoryID != nil {
		t.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Date != nil {
		t.Date = *req.Date
	}
	t.UpdatedAt = time.Now()
	return t, nil
}

func (r *fakeTransactionRepo) Delete(id, userID string) error {
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *fakeTransactionRepo) Summary(userID string, startDate, endDate *time.Time) (*models.Summary, error) {
	rows, _ := r.GetByUserID(userID, models.TransactionFilter{StartDate: startDate, EndDate: endDate})
	var summary models.Summary
	for _, t := range rows {
		if t.Type == entities.TypeIncome {
			summary.Income += t.Amount
		} else {
			summary.Expense += t.Amount
		}
	}
	summary.Balance = summary.Income - summary.Expense
	return &summary, nil
}

func (r *fakeTransactionRepo) ExpensesByCategory(userID string, startDate, endDate *time.Time) ([]*models.CategoryExpense, error) {
	rows, _ := r.GetByUserID(userID, models.TransactionFilter{StartDate: startDate, EndDate: endDate})
	totals := make(map[string]float64)
	var order []string
	for _, t := range rows {
		if t.Type != entities.TypeExpense {
			continue
		}
		if _, seen := totals[t.CategoryID]; !seen {
			order = append(order, t.CategoryID)
		}
		totals[t.CategoryID] += t.Amount
	}
	var out []*models.CategoryExpense
	for _, id := range order {
		out = append(out, &models.CategoryExpense{
			CategoryID:   id,
			CategoryName: id,
			Total:        totals[id],
		})
	}
	return out, nil
}

func (r *fakeTransactionRepo) MonthlyTrends(userID string, months int) ([]*models.MonthlyTrend, error) {
	rows, _ := r.GetByUserID(userID, models.TransactionFilter{})
	byMonth := make(map[string]*models.MonthlyTrend)
	var order []string
	for _, t := range rows {
		month := t.Date.UTC().Format("2006-01")
		trend, ok := byMonth[month]
		if !ok {
			trend = &models.MonthlyTrend{Month: month}
			byMonth[month] = trend
			order = append(order, month)
		}
		if t.Type == entities.TypeIncome {
			trend.Income += t.Amount
		} else {
			trend.Expense += t.Amount
		}
	}
	var out []*models.MonthlyTrend
	for _, m := range order {
		trend := byMonth[m]
		trend.Balance = trend.Income - trend.Expense
		out = append(out, trend)
	}
	return out, nil
}

// fakeCache records report-cache invalidations
type fakeCache struct {
	store           map[string]interface{}
	deletedPrefixes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]interface{})}
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.store[key] = value
	return nil
}

func (c *fakeCache) GetJSON(_ context.Context, key string, _ interface{}) error {
	if _, ok := c.store[key]; ok {
		// The real cache unmarshals into dest; the tests only care about
		// hit/miss, so a hit is reported without copying.
		return nil
	}
	return repository.ErrNotFound
}

func (c *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.deletedPrefixes = append(c.deletedPrefixes, prefix)
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			delete(c.store, key)
		}
	}
	return nil
}
