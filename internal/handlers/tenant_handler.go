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

type CreateTenantRequest struct {
	Name        string `json:"name" binding:"required"`
	RoomNumber  string `json:"room_number" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CheckinDate string `json:"checkin_date" binding:"required"` // YYYY-MM-DD
	MonthlyRent int64  `json:"monthly_rent" binding:"required"`
}

type UpdateTenantRequest struct {
	Name        *string `json:"name"`
	RoomNumber  *string `json:"room_number"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	CheckinDate *string `json:"checkin_date"`
	MonthlyRent *int64  `json:"monthly_rent"`
}

type TenantHandler struct {
	service  *services.TenantService
	balances *services.BalanceService
}

func NewTenantHandler(service *services.TenantService, balances *services.BalanceService) *TenantHandler {
	return &TenantHandler{
		service:  service,
		balances: balances,
	}
}

// Create registers a tenant at move-in.
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data penghuni tidak lengkap")
		return
	}

	checkin, err := time.Parse("2006-01-02", req.CheckinDate)
	if err != nil {
		response.BadRequest(c, "Format tanggal check-in tidak valid")
		return
	}

	tenant, err := h.service.Create(c.Request.Context(), services.CreateTenantParams{
		Name:        req.Name,
		RoomNumber:  req.RoomNumber,
		Phone:       req.Phone,
		Email:       req.Email,
		CheckinDate: checkin,
		MonthlyRent: req.MonthlyRent,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, tenant)
}

// GetByID returns one tenant.
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	tenant, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Penghuni tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal memuat data penghuni")
		return
	}

	response.Success(c, tenant)
}

// GetAll lists tenants, paginated, with keyword search. With all=true it
// returns the full list ordered by room number, which is what the payment
// form dropdown wants.
func (h *TenantHandler) GetAll(c *gin.Context) {
	if c.Query("all") == "true" {
		tenants, err := h.service.GetAll(c.Request.Context())
		if err != nil {
			response.ServerError(c, "Gagal memuat data penghuni")
			return
		}
		response.Success(c, tenants)
		return
	}

	pageParams := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")

	tenants, total, err := h.service.GetWithFiltersAndPage(c.Request.Context(), keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "Gagal memuat data penghuni")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, tenants, pageInfo)
}

// Update applies explicit edits.
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data penghuni tidak valid")
		return
	}

	params := services.UpdateTenantParams{
		Name:        req.Name,
		RoomNumber:  req.RoomNumber,
		Phone:       req.Phone,
		Email:       req.Email,
		MonthlyRent: req.MonthlyRent,
	}
	if req.CheckinDate != nil {
		checkin, err := time.Parse("2006-01-02", *req.CheckinDate)
		if err != nil {
			response.BadRequest(c, "Format tanggal check-in tidak valid")
			return
		}
		params.CheckinDate = &checkin
	}

	tenant, err := h.service.Update(c.Request.Context(), uint(id), params)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Penghuni tidak ditemukan")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, tenant)
}

// Delete removes a tenant and its payment history.
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Penghuni tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal menghapus penghuni")
		return
	}

	response.SuccessWithMessage(c, "Penghuni dihapus", nil)
}

// Outstanding recomputes the tenant's arrears fresh, the figure the payment
// form shows as previous balance.
func (h *TenantHandler) Outstanding(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	outstanding, err := h.balances.OutstandingByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Penghuni tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal menghitung tunggakan")
		return
	}

	response.Success(c, gin.H{"tenant_id": uint(id), "outstanding_balance": outstanding})
}

// Balance returns the cached balance summary.
func (h *TenantHandler) Balance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Format ID tidak valid")
		return
	}

	summary, err := h.balances.Summary(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Penghuni tidak ditemukan")
			return
		}
		response.ServerError(c, "Gagal memuat ringkasan saldo")
		return
	}

	response.Success(c, summary)
}
