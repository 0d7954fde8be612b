package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budget-be/internal/models"
	"budget-be/internal/service"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// GetCategories handles GET /api/categories
func (cc *CategoryController) GetCategories(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	categories, err := cc.categoryService.GetCategories(userID, c.Query("type"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	category, err := cc.categoryService.CreateCategory(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory handles DELETE /api/categories/:id
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Category ID is required",
		})
		return
	}

	if err := cc.categoryService.DeleteCategory(id, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
