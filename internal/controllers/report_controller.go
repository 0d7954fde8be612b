package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"budget-be/internal/service"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

func (rc *ReportController) dateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	startDate, err := parseStartDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected an ISO date"})
		return nil, nil, false
	}
	endDate, err := parseEndDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected an ISO date"})
		return nil, nil, false
	}
	return startDate, endDate, true
}

// Summary handles GET /api/summary
func (rc *ReportController) Summary(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	startDate, endDate, ok := rc.dateRange(c)
	if !ok {
		return
	}

	summary, err := rc.reportService.Summary(userID, startDate, endDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExpensesByCategory handles GET /api/expenses/by-category
func (rc *ReportController) ExpensesByCategory(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	startDate, endDate, ok := rc.dateRange(c)
	if !ok {
		return
	}

	items, err := rc.reportService.ExpensesByCategory(userID, startDate, endDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// MonthlyTrends handles GET /api/trends/monthly
func (rc *ReportController) MonthlyTrends(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	months := 0
	if m := c.Query("months"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 60 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and 60"})
			return
		}
		months = n
	}

	trends, err := rc.reportService.MonthlyTrends(userID, months)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}
