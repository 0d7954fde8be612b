package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"budget-be/internal/cache"
	"budget-be/internal/models"
	"budget-be/internal/repository"
)

const (
	defaultTrendMonths = 6
	reportCacheTTL     = 5 * time.Minute
)

// ReportService computes derived read-only views over a user's transactions
type ReportService interface {
	Summary(userID string, startDate, endDate *time.Time) (*models.Summary, error)
	ExpensesByCategory(userID string, startDate, endDate *time.Time) ([]*models.CategoryExpense, error)
	MonthlyTrends(userID string, months int) ([]*models.MonthlyTrend, error)
}

type reportService struct {
	repo  repository.TransactionRepository
	cache cache.Cache
	ctx   context.Context
}

// NewReportService creates a new report service. The cache is optional;
// a nil cache means every call hits the database.
func NewReportService(repo repository.TransactionRepository, cacheClient cache.Cache) ReportService {
	return &reportService{
		repo:  repo,
		cache: cacheClient,
		ctx:   context.Background(),
	}
}

func rangeKey(startDate, endDate *time.Time) string {
	start, end := "", ""
	if startDate != nil {
		start = startDate.UTC().Format("2006-01-02")
	}
	if endDate != nil {
		end = endDate.UTC().Format("2006-01-02")
	}
	return start + ":" + end
}

// Summary returns total income, total expense and the balance over a range
func (s *reportService) Summary(userID string, startDate, endDate *time.Time) (*models.Summary, error) {
	cacheKey := reportCachePrefix(userID) + "summary:" + rangeKey(startDate, endDate)
	if s.cache != nil {
		var cached models.Summary
		if err := s.cache.GetJSON(s.ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := s.repo.Summary(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, cacheKey, summary, reportCacheTTL)
	}
	return summary, nil
}

// ExpensesByCategory groups the user's expenses by category and attaches
// each category's percentage of the grand total, rounded to one decimal.
// A zero grand total yields an empty slice.
func (s *reportService) ExpensesByCategory(userID string, startDate, endDate *time.Time) ([]*models.CategoryExpense, error) {
	cacheKey := reportCachePrefix(userID) + "by-category:" + rangeKey(startDate, endDate)
	if s.cache != nil {
		var cached []*models.CategoryExpense
		if err := s.cache.GetJSON(s.ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.ExpensesByCategory(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var grandTotal float64
	for _, item := range items {
		grandTotal += item.Total
	}

	result := make([]*models.CategoryExpense, 0, len(items))
	for _, item := range items {
		if grandTotal > 0 {
			item.Percentage = math.Round(item.Total/grandTotal*1000) / 10
		} else {
			item.Percentage = 0
		}
		result = append(result, item)
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, cacheKey, result, reportCacheTTL)
	}
	return result, nil
}

// MonthlyTrends buckets the user's transactions by calendar month over the
// trailing months (default 6). Months with no activity are omitted.
func (s *reportService) MonthlyTrends(userID string, months int) ([]*models.MonthlyTrend, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}

	cacheKey := reportCachePrefix(userID) + fmt.Sprintf("trends:%d", months)
	if s.cache != nil {
		var cached []*models.MonthlyTrend
		if err := s.cache.GetJSON(s.ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	trends, err := s.repo.MonthlyTrends(userID, months)
	if err != nil {
		return nil, err
	}
	if trends == nil {
		trends = []*models.MonthlyTrend{}
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, cacheKey, trends, reportCacheTTL)
	}
	return trends, nil
}
