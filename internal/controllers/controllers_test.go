package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"budget-be/internal/entities"
	"budget-be/internal/models"
)

// Stub services with overridable function fields. Tests set only the
// methods they exercise; calling an unset method panics, which is what
// we want from an unexpected call.

type stubAuthService struct {
	signupFn         func(req *models.SignupRequest) (*models.SignupResponse, error)
	loginFn          func(req *models.LoginRequest) (*models.AuthResponse, error)
	verifyEmailFn    func(token string) error
	forgotPasswordFn func(email string) error
	resetPasswordFn  func(token, newPassword string) error
}

func (s *stubAuthService) Signup(req *models.SignupRequest) (*models.SignupResponse, error) {
	return s.signupFn(req)
}

func (s *stubAuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	return s.loginFn(req)
}

func (s *stubAuthService) VerifyEmail(token string) error {
	return s.verifyEmailFn(token)
}

func (s *stubAuthService) ForgotPassword(email string) error {
	return s.forgotPasswordFn(email)
}

func (s *stubAuthService) ResetPassword(token, newPassword string) error {
	return s.resetPasswordFn(token, newPassword)
}

type stubCategoryService struct {
	getCategoriesFn  func(userID, ctype string) ([]*entities.Category, error)
	createCategoryFn func(userID string, req *models.CreateCategoryRequest) (*entities.Category, error)
	deleteCategoryFn func(id, userID string) error
}

func (s *stubCategoryService) GetCategories(userID, ctype string) ([]*entities.Category, error) {
	return s.getCategoriesFn(userID, ctype)
}

func (s *stubCategoryService) CreateCategory(userID string, req *models.CreateCategoryRequest) (*entities.Category, error) {
	return s.createCategoryFn(userID, req)
}

func (s *stubCategoryService) DeleteCategory(id, userID string) error {
	return s.deleteCategoryFn(id, userID)
}

type stubTransactionService struct {
	getTransactionsFn   func(userID string, filter models.TransactionFilter) ([]*entities.Transaction, error)
	getTransactionFn    func(id, userID string) (*entities.Transaction, error)
	createTransactionFn func(userID string, req *models.CreateTransactionRequest) (*entities.Transaction, error)
	updateTransactionFn func(id, userID string, req *models.UpdateTransactionRequest) (*entities.Transaction, error)
	deleteTransactionFn func(id, userID string) error
}

func (s *stubTransactionService) GetTransactions(userID string, filter models.TransactionFilter) ([]*entities.Transaction, error) {
	return s.getTransactionsFn(userID, filter)
}

func (s *stubTransactionService) GetTransaction(id, userID string) (*entities.Transaction, error) {
	return s.getTransactionFn(id, userID)
}

func (s *stubTransactionService) CreateTransaction(userID string, req *models.CreateTransactionRequest) (*entities.Transaction, error) {
	return s.createTransactionFn(userID, req)
}

func (s *stubTransactionService) UpdateTransaction(id, userID string, req *models.UpdateTransactionRequest) (*entities.Transaction, error) {
	return s.updateTransactionFn(id, userID, req)
}

func (s *stubTransactionService) DeleteTransaction(id, userID string) error {
	return s.deleteTransactionFn(id, userID)
}

type stubReportService struct {
	summaryFn            func(userID string, startDate, endDate *time.Time) (*models.Summary, error)
	expensesByCategoryFn func(userID string, startDate, endDate *time.Time) ([]*models.CategoryExpense, error)
	monthlyTrendsFn      func(userID string, months int) ([]*models.MonthlyTrend, error)
}

func (s *stubReportService) Summary(userID string, startDate, endDate *time.Time) (*models.Summary, error) {
	return s.summaryFn(userID, startDate, endDate)
}

func (s *stubReportService) ExpensesByCategory(userID string, startDate, endDate *time.Time) ([]*models.CategoryExpense, error) {
	return s.expensesByCategoryFn(userID, startDate, endDate)
}

func (s *stubReportService) MonthlyTrends(userID string, months int) ([]*models.MonthlyTrend, error) {
	return s.monthlyTrendsFn(userID, months)
}

// asUser injects the principal the auth middleware would normally set
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", userID+"@example.com")
		c.Set("role", "user")
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
