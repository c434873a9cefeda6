package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BillingReminderRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type WhatsAppHandler struct {
	service        *services.WhatsAppService
	tenantService  *services.TenantService
	paymentService *services.PaymentService
	balances       *services.BalanceService
}

func NewWhatsAppHandler(service *services.WhatsAppService, tenantService *services.TenantService, paymentService *services.PaymentService, balances *services.BalanceService) *WhatsAppHandler {
	return &WhatsAppHandler{
		service:        service,
		tenantService:  tenantService,
		paymentService: paymentService,
		balances:       balances,
	}
}

// GetSettings returns the automation settings (stored overrides over
// defaults).
func (h *WhatsAppHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.Settings(c.Request.Context())
	if err != nil {
		response.ServerError(c, "Gagal memuat pengaturan WhatsApp")
		return
	}
	response.Success(c, settings)
}

// UpdateSettings stores operator overrides.
func (h *WhatsAppHandler) UpdateSettings(c *gin.Context) {
	var settings services.WhatsAppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.BadRequest(c, "Pengaturan tidak valid")
		return
	}

	if err := h.service.SaveSettings(c.Request.Context(), &settings); err != nil {
		response.ServerError(c, "Gagal menyimpan pengaturan WhatsApp")
		return
	}

	response.SuccessWithMessage(c, "Pengaturan disimpan", settings)
}

func (h *WhatsAppHandler) translateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "Data tidak ditemukan")
	case errors.Is(err, services.ErrNoPhoneNumber),
		errors.Is(err, services.ErrAutomationDisabled):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, "Gagal membuat pesan WhatsApp")
	}
}

// PaymentConfirmation builds the confirmation message for a recorded
// payment.
func (h *WhatsAppHandler) PaymentConfirmation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		h.translateError(c, err)
		return
	}

	message, err := h.service.PaymentConfirmation(c.Request.Context(), payment.Tenant, payment)
	if err != nil {
		h.translateError(c, err)
		return
	}

	response.Success(c, message)
}

// ArrearsReminder builds the arrears nudge for one tenant, computed fresh.
func (h *WhatsAppHandler) ArrearsReminder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		h.translateError(c, err)
		return
	}

	arrears, err := h.balances.Outstanding(c.Request.Context(), tenant)
	if err != nil {
		response.ServerError(c, "Gagal menghitung tunggakan")
		return
	}

	message, err := h.service.ArrearsReminder(c.Request.Context(), tenant, arrears)
	if err != nil {
		h.translateError(c, err)
		return
	}

	response.Success(c, message)
}

// BillingReminder builds the due-date reminder for one tenant and month.
func (h *WhatsAppHandler) BillingReminder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	var req BillingReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data penagihan tidak valid")
		return
	}

	now := time.Now()
	if req.Month < 1 || req.Month > 12 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		h.translateError(c, err)
		return
	}

	message, err := h.service.BillingReminder(c.Request.Context(), tenant, tenant.MonthlyRent, req.Month, req.Year)
	if err != nil {
		h.translateError(c, err)
		return
	}

	response.Success(c, message)
}
