package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"budget-be/internal/entities"
	"budget-be/internal/models"
)

// TransactionRepository defines the interface for transaction database
// operations, including the read-side aggregations.
type TransactionRepository interface {
	Create(t *entities.Transaction) (*entities.Transaction, error)
	FindByID(id string) (*entities.Transaction, error)
	GetByUserID(userID string, filter models.TransactionFilter) ([]*entities.Transaction, error)
	Update(id, userID string, req *models.UpdateTransactionRequest) (*entities.Transaction, error)
	Delete(id, userID string) error
	Summary(userID string, startDate, endDate *time.Time) (*models.Summary, error)
	ExpensesByCategory(userID string, startDate, endDate *time.Time) ([]*models.CategoryExpense, error)
	MonthlyTrends(userID string, months int) ([]*models.MonthlyTrend, error)
}

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.category_id, t.amount, t.type, t.description, t.date,
	       c.name, c.icon, t.created_at, t.updated_at
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id
`

func scanTransaction(scanner interface {
	Scan(dest ...interface{}) error
}) (*entities.Transaction, error) {
	var t entities.Transaction
	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.CategoryID,
		&t.Amount,
		&t.Type,
		&t.Description,
		&t.Date,
		&t.CategoryName,
		&t.CategoryIcon,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	return &t, nil
}

// Create inserts a new transaction
func (r *transactionRepository) Create(t *entities.Transaction) (*entities.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, category_id, amount, type, description, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, category_id, amount, type, description, date, created_at, updated_at
	`

	var created entities.Transaction
	err := r.db.QueryRow(query, t.ID, t.UserID, t.CategoryID, t.Amount, t.Type, t.Description, t.Date.UTC()).Scan(
		&created.ID,
		&created.UserID,
		&created.CategoryID,
		&created.Amount,
		&created.Type,
		&created.Description,
		&created.Date,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &created, nil
}

// FindByID finds a transaction by ID regardless of owner. Callers check
// ownership against the authenticated principal.
func (r *transactionRepository) FindByID(id string) (*entities.Transaction, error) {
	query := transactionSelect + ` WHERE t.id = $1`
	return scanTransaction(r.db.QueryRow(query, id))
}

// GetByUserID retrieves a user's transactions ordered by date descending,
// narrowed by the optional filter fields.
func (r *transactionRepository) GetByUserID(userID string, filter models.TransactionFilter) ([]*entities.Transaction, error) {
	conditions := []string{"t.user_id = $1"}
	args := []interface{}{userID}
	index := 2

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("t.type = $%d", index))
		args = append(args, filter.Type)
		index++
	}
	if filter.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("t.category_id = $%d", index))
		args = append(args, filter.CategoryID)
		index++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", index))
		args = append(args, filter.StartDate.UTC())
		index++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", index))
		args = append(args, filter.EndDate.UTC())
		index++
	}

	query := transactionSelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY t.date DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", index)
		args = append(args, filter.Limit)
		index++

		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", index)
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Update applies a partial update scoped by both id and owning user.
// Only supplied fields change; updated_at is always refreshed.
func (r *transactionRepository) Update(id, userID string, req *models.UpdateTransactionRequest) (*entities.Transaction, error) {
	updates := []string{}
	args := []interface{}{}
	index := 1

	if req.Amount != nil {
		updates = append(updates, fmt.Sprintf("amount = $%d", index))
		args = append(args, *req.Amount)
		index++
	}
	if req.Type != nil {
		updates = append(updates, fmt.Sprintf("type = $%d", index))
		args = append(args, *req.Type)
		index++
	}
	if req.CategoryID != nil {
		updates = append(updates, fmt.Sprintf("category_id = $%d", index))
		args = append(args, *req.CategoryID)
		index++
	}
	if req.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", index))
		args = append(args, *req.Description)
		index++
	}
	if req.Date != nil {
		updates = append(updates, fmt.Sprintf("date = $%d", index))
		args = append(args, req.Date.UTC())
		index++
	}

	if len(updates) == 0 {
		return r.FindByID(id)
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, id, userID)

	query := fmt.Sprintf(`
		UPDATE transactions
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, category_id, amount, type, description, date, created_at, updated_at
	`, strings.Join(updates, ", "), index, index+1)

	var updated entities.Transaction
	err := r.db.QueryRow(query, args...).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.CategoryID,
		&updated.Amount,
		&updated.Type,
		&updated.Description,
		&updated.Date,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &updated, nil
}

// Delete removes a transaction scoped by both id and owning user
func (r *transactionRepository) Delete(id, userID string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
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

// dateConditions appends optional inclusive date bounds to a condition list
func dateConditions(conditions []string, args []interface{}, startDate, endDate *time.Time, index int) ([]string, []interface{}, int) {
	if startDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", index))
		args = append(args, startDate.UTC())
		index++
	}
	if endDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", index))
		args = append(args, endDate.UTC())
		index++
	}
	return conditions, args, index
}

// Summary computes total income, total expense and the balance for a user
// over an optional date range. An empty range yields all zeros.
func (r *transactionRepository) Summary(userID string, startDate, endDate *time.Time) (*models.Summary, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	conditions, args, _ = dateConditions(conditions, args, startDate, endDate, 2)

	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expense
		FROM transactions
		WHERE %s
	`, strings.Join(conditions, " AND "))

	var summary models.Summary
	if err := r.db.QueryRow(query, args...).Scan(&summary.Income, &summary.Expense); err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	summary.Balance = summary.Income - summary.Expense

	return &summary, nil
}

// ExpensesByCategory returns per-category expense totals over an optional
// date range, largest first. Percentages are filled in by the caller.
func (r *transactionRepository) ExpensesByCategory(userID string, startDate, endDate *time.Time) ([]*models.CategoryExpense, error) {
	conditions := []string{"t.user_id = $1", "t.type = 'EXPENSE'"}
	args := []interface{}{userID}

	index := 2
	if startDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", index))
		args = append(args, startDate.UTC())
		index++
	}
	if endDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", index))
		args = append(args, endDate.UTC())
		index++
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.icon, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE %s
		GROUP BY c.id, c.name, c.icon
		ORDER BY total DESC
	`, strings.Join(conditions, " AND "))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses by category: %w", err)
	}
	defer rows.Close()

	var items []*models.CategoryExpense
	for rows.Next() {
		var item models.CategoryExpense
		if err := rows.Scan(&item.CategoryID, &item.CategoryName, &item.CategoryIcon, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category expense: %w", err)
		}
		items = append(items, &item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category expenses: %w", err)
	}

	return items, nil
}

// MonthlyTrends buckets a user's transactions by calendar month over the
// trailing number of months. Months with no activity are omitted.
func (r *transactionRepository) MonthlyTrends(userID string, months int) ([]*models.MonthlyTrend, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('month', date), 'YYYY-MM') AS month,
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expense
		FROM transactions
		WHERE user_id = $1
		  AND date >= DATE_TRUNC('month', NOW()) - ($2 * INTERVAL '1 month')
		GROUP BY DATE_TRUNC('month', date)
		ORDER BY month ASC
	`

	rows, err := r.db.Query(query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly trends: %w", err)
	}
	defer rows.Close()

	var trends []*models.MonthlyTrend
	for rows.Next() {
		var trend models.MonthlyTrend
		if err := rows.Scan(&trend.Month, &trend.Income, &trend.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan monthly trend: %w", err)
		}
		trend.Balance = trend.Income - trend.Expense
		trends = append(trends, &trend)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly trends: %w", err)
	}

	return trends, nil
}
