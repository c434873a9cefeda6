package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/pagination"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExpenseRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	ExpenseDate string `json:"expense_date" binding:"required"` // YYYY-MM-DD
	Notes       string `json:"notes"`
}

type ExpenseHandler struct {
	service *services.ExpenseService
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (h *ExpenseHandler) parseParams(c *gin.Context) (*services.CreateExpenseParams, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data pengeluaran tidak lengkap")
		return nil, false
	}

	date, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		response.BadRequest(c, "Format tanggal pengeluaran tidak valid")
		return nil, false
	}

	return &services.CreateExpenseParams{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: date,
		Notes:       req.Notes,
	}, true
}

// Create records an expense ledger entry.
func (h *ExpenseHandler) Create(c *gin.Context) {
	params, ok := h.parseParams(c)
	if !ok {
		return
	}

	expense, err := h.service.Create(c.Request.Context(), *params)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, expense)
}

// GetAll lists expenses with filters and pagination.
func (h *ExpenseHandler) GetAll(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)

	category := c.Query("category")
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	expenses, total, err := h.service.GetWithFiltersAndPage(
		c.Request.Context(), category, month, year,
		pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "Gagal memuat data pengeluaran")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, expenses, pageInfo)
}

// GetByID returns one expense.
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	expense, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Pengeluaran tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal memuat data pengeluaran")
		return
	}

	response.Success(c, expense)
}

// Update rewrites an expense entry.
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	params, ok := h.parseParams(c)
	if !ok {
		return
	}

	expense, err := h.service.Update(c.Request.Context(), uint(id), *params)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Pengeluaran tidak ditemukan")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, expense)
}

// Delete removes an expense entry.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Pengeluaran tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal menghapus pengeluaran")
		return
	}

	response.SuccessWithMessage(c, "Pengeluaran dihapus", nil)
}
