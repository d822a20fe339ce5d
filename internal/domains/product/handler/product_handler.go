package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/domains/product"
	"inventory-backend/internal/shared/response"
	"inventory-backend/internal/shared/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{
		service: svc,
	}
}

// intQuery reads an optional integer query parameter. ok is false when
// the parameter is present but not an integer.
func intQuery(c *gin.Context, key string) (int, bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func bindListQuery(c *gin.Context) (product.ListQuery, bool) {
	page, ok := intQuery(c, "page")
	if !ok {
		response.BadRequest(c, "Page must be an integer")
		return product.ListQuery{}, false
	}
	limit, ok := intQuery(c, "limit")
	if !ok {
		response.BadRequest(c, "Limit must be an integer")
		return product.ListQuery{}, false
	}

	return product.ListQuery{
		Search:      c.Query("search"),
		CategoryIDs: c.QueryArray("categoryIds"),
		Page:        page,
		Limit:       limit,
	}, true
}

// ========== GET /api/products?search=&categoryIds=&page=&limit= ==========
func (h *ProductHandler) List(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Paginated(c, "Products retrieved successfully", result.Products, result.Pagination)
}

// ========== GET /api/products/search?q=&limit= ==========
func (h *ProductHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	matches, err := h.service.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Search completed successfully", matches)
}

// ========== GET /api/products/stats ==========
func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product statistics retrieved successfully", stats)
}

// ========== GET /api/products/low-stock?limit= ==========
func (h *ProductHandler) LowStock(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	products, err := h.service.LowStock(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Low stock products retrieved successfully", products)
}

// ========== GET /api/products/export ==========
func (h *ProductHandler) Export(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	// Buffer the workbook so a failure midway still gets a JSON error.
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), q, &buf); err != nil {
		response.FromError(c, err)
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ========== GET /api/products/:id ==========
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product retrieved successfully", p)
}

// ========== POST /api/products ==========
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Product created successfully", created)
}

// ========== PUT /api/products/:id ==========
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product updated successfully", updated)
}

// ========== DELETE /api/products/:id ==========
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product deleted successfully", nil)
}

// ========== POST /api/products/bulk-delete ==========
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var req product.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.BulkDelete(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	msg := fmt.Sprintf("%d of %d products deleted", result.DeletedCount, result.TotalRequested)
	response.Success(c, http.StatusOK, msg, result)
}
