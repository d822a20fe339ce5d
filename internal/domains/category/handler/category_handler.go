package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/domains/category"
	"inventory-backend/internal/shared/response"
	"inventory-backend/internal/shared/utils"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
	}
}

// ========== GET /api/categories ==========
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// ========== GET /api/categories/with-count ==========
func (h *CategoryHandler) ListWithProductCount(c *gin.Context) {
	categories, err := h.service.ListWithProductCount(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Categories with product count retrieved successfully", categories)
}

// ========== GET /api/categories/search?q=&limit= ==========
func (h *CategoryHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	matches, err := h.service.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Search completed successfully", matches)
}

// ========== GET /api/categories/:id ==========
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category retrieved successfully", cat)
}

// ========== POST /api/categories ==========
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created successfully", created)
}

// ========== PUT /api/categories/:id ==========
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req category.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", updated)
}

// ========== DELETE /api/categories/:id ==========
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}
