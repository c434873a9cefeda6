package handlers

import (
	"strconv"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Monthly returns the payment summary for one billing period. Defaults to
// the active system month.
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, "Bulan tidak valid")
		return
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 {
		response.BadRequest(c, "Tahun tidak valid")
		return
	}

	summary, err := h.service.Monthly(c.Request.Context(), month, year)
	if err != nil {
		response.ServerError(c, "Gagal membuat laporan bulanan")
		return
	}

	response.Success(c, summary)
}

// Financial returns the yearly income/expense/profit report.
func (h *ReportHandler) Financial(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 {
		response.BadRequest(c, "Tahun tidak valid")
		return
	}

	report, err := h.service.Financial(c.Request.Context(), year)
	if err != nil {
		response.ServerError(c, "Gagal membuat laporan keuangan")
		return
	}

	response.Success(c, report)
}

// Arrears returns every tenant in arrears, worst first.
func (h *ReportHandler) Arrears(c *gin.Context) {
	report, err := h.service.Arrears(c.Request.Context())
	if err != nil {
		response.ServerError(c, "Gagal membuat laporan tunggakan")
		return
	}

	response.Success(c, report)
}
