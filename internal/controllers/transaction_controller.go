package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"budget-be/internal/models"
	"budget-be/internal/service"
)

type TransactionController struct {
	transactionService service.TransactionService
}

func NewTransactionController(transactionService service.TransactionService) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
	}
}

// GetTransactions handles GET /api/transactions
func (tc *TransactionController) GetTransactions(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	startDate, err := parseStartDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected an ISO date"})
		return
	}
	endDate, err := parseEndDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected an ISO date"})
		return
	}

	filter := models.TransactionFilter{
		Type:       c.Query("type"),
		CategoryID: c.Query("categoryId"),
		StartDate:  startDate,
		EndDate:    endDate,
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	transactions, err := tc.transactionService.GetTransactions(userID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTransaction handles GET /api/transactions/:id
func (tc *TransactionController) GetTransaction(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	transaction, err := tc.transactionService.GetTransaction(c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// CreateTransaction handles POST /api/transactions
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	transaction, err := tc.transactionService.CreateTransaction(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT /api/transactions/:id
func (tc *TransactionController) UpdateTransaction(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	transaction, err := tc.transactionService.UpdateTransaction(c.Param("id"), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	if err := tc.transactionService.DeleteTransaction(c.Param("id"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
