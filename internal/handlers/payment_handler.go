package handlers

import (
	"errors"
	"strconv"

	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/pagination"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	TenantID       uint   `json:"tenant_id" binding:"required"`
	PeriodYear     int    `json:"period_year" binding:"required"`
	PaymentAmount  int64  `json:"payment_amount" binding:"required"`
	DiscountAmount int64  `json:"discount_amount"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	Notes          string `json:"notes"`
}

type UpdatePaymentRequest struct {
	PaymentAmount  *int64  `json:"payment_amount"`
	DiscountAmount *int64  `json:"discount_amount"`
	Notes          *string `json:"notes"`
}

type PaymentHandler struct {
	service  *services.PaymentService
	receipts *services.ReceiptService
}

func NewPaymentHandler(service *services.PaymentService, receipts *services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		receipts: receipts,
	}
}

// Create runs the full submission pipeline for one payment event.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data pembayaran tidak lengkap")
		return
	}

	payment, warning, err := h.service.Create(c.Request.Context(), services.CreatePaymentParams{
		TenantID:       req.TenantID,
		PeriodYear:     req.PeriodYear,
		PaymentAmount:  req.PaymentAmount,
		DiscountAmount: req.DiscountAmount,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoTenantSelected),
			errors.Is(err, services.ErrInvalidPaymentAmount),
			errors.Is(err, services.ErrNoPaymentMethod):
			response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrSubmissionInFlight):
			response.Conflict(c, err.Error())
		case errors.Is(err, services.ErrDuplicateReceipt):
			response.Conflict(c, err.Error())
		default:
			response.ServerError(c, err.Error())
		}
		return
	}

	if warning != "" {
		response.SuccessWithWarning(c, warning, payment)
		return
	}
	response.Success(c, payment)
}

// GetByID returns one payment with its tenant.
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	payment, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Pembayaran tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal memuat data pembayaran")
		return
	}

	response.Success(c, payment)
}

// GetAll lists payments with filters and pagination.
func (h *PaymentHandler) GetAll(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)

	tenantID, _ := strconv.ParseUint(c.Query("tenant_id"), 10, 32)
	periodMonth, _ := strconv.Atoi(c.Query("period_month"))
	periodYear, _ := strconv.Atoi(c.Query("period_year"))
	status := c.Query("status")

	payments, total, err := h.service.GetWithFiltersAndPage(
		c.Request.Context(), uint(tenantID), periodMonth, periodYear, status,
		pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "Gagal memuat data pembayaran")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, payments, pageInfo)
}

// Update applies a manual operator correction to the mutable fields only.
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data pembayaran tidak valid")
		return
	}

	payment, err := h.service.Update(c.Request.Context(), uint(id), services.UpdatePaymentParams{
		PaymentAmount:  req.PaymentAmount,
		DiscountAmount: req.DiscountAmount,
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Pembayaran tidak ditemukan")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, payment)
}

// Delete removes a payment record.
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Pembayaran tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal menghapus pembayaran")
		return
	}

	response.SuccessWithMessage(c, "Pembayaran dihapus", nil)
}

// Receipt returns the printable receipt payload for a payment.
func (h *PaymentHandler) Receipt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	receipt, err := h.receipts.ForPayment(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Pembayaran tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal membuat kwitansi")
		return
	}

	response.Success(c, receipt)
}
