package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/format"

	"gorm.io/gorm"
)

// MonthlySummary totals one billing period.
type MonthlySummary struct {
	PeriodMonth       int               `json:"period_month"`
	PeriodYear        int               `json:"period_year"`
	TotalTransactions int               `json:"total_transactions"`
	TotalPayments     int64             `json:"total_payments"`
	TotalOutstanding  int64             `json:"total_outstanding"`
	TotalDiscount     int64             `json:"total_discount"`
	Payments          []*models.Payment `json:"payments"`
}

// MonthFinancial is one month's slice of the yearly report.
type MonthFinancial struct {
	Month   int    `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Profit  int64  `json:"profit"`
	Name    string `json:"name"`
}

// FinancialReport is the yearly income/expense/profit view.
type FinancialReport struct {
	Year         int              `json:"year"`
	Months       []MonthFinancial `json:"months"`
	TotalIncome  int64            `json:"total_income"`
	TotalExpense int64            `json:"total_expense"`
	NetProfit    int64            `json:"net_profit"`
	ProfitMargin float64          `json:"profit_margin"`
	ExpenseRatio float64          `json:"expense_ratio"`
	MonthlyAvg   int64            `json:"monthly_avg_income"`
}

// TenantArrears is one row of the arrears report.
type TenantArrears struct {
	Tenant        *models.Tenant `json:"tenant"`
	TotalArrears  int64          `json:"total_arrears"`
	MonthsArrears int            `json:"months_arrears"`
}

// ReportService builds the operator's reports from the payment and expense
// ledgers.
type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db:  db,
		now: time.Now,
	}
}

// Monthly summarizes every payment tagged to one billing period.
func (s *ReportService) Monthly(ctx context.Context, month, year int) (*MonthlySummary, error) {
	var payments []*models.Payment
	err := s.db.WithContext(ctx).
		Preload("Tenant").
		Where("period_month = ? AND period_year = ?", month, year).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	summary := SummarizeMonth(payments)
	summary.PeriodMonth = month
	summary.PeriodYear = year
	return summary, nil
}

// SummarizeMonth totals a period's payment list. Outstanding counts only
// positive remainders; overpayments do not cancel other tenants' arrears.
func SummarizeMonth(payments []*models.Payment) *MonthlySummary {
	summary := &MonthlySummary{
		TotalTransactions: len(payments),
		Payments:          payments,
	}
	for _, p := range payments {
		summary.TotalPayments += p.PaymentAmount
		summary.TotalDiscount += p.DiscountAmount
		if p.RemainingBalance > 0 {
			summary.TotalOutstanding += p.RemainingBalance
		}
	}
	return summary
}

// Financial builds the yearly report. Income is grouped by billing period,
// expenses by the date the money left.
func (s *ReportService) Financial(ctx context.Context, year int) (*FinancialReport, error) {
	var payments []*models.Payment
	err := s.db.WithContext(ctx).
		Where("period_year = ?", year).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	var expenses []*models.Expense
	err = s.db.WithContext(ctx).
		Where("EXTRACT(YEAR FROM expense_date) = ?", year).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return BuildFinancialReport(year, payments, expenses), nil
}

// BuildFinancialReport folds the two ledgers into per-month rows and totals.
func BuildFinancialReport(year int, payments []*models.Payment, expenses []*models.Expense) *FinancialReport {
	report := &FinancialReport{
		Year:   year,
		Months: make([]MonthFinancial, 12),
	}
	for i := range report.Months {
		report.Months[i].Month = i + 1
		report.Months[i].Name = format.MonthName(i + 1)
	}

	for _, p := range payments {
		if p.PeriodMonth >= 1 && p.PeriodMonth <= 12 {
			report.Months[p.PeriodMonth-1].Income += p.PaymentAmount
		}
		report.TotalIncome += p.PaymentAmount
	}
	for _, e := range expenses {
		month := int(e.ExpenseDate.Month())
		report.Months[month-1].Expense += e.Amount
		report.TotalExpense += e.Amount
	}
	for i := range report.Months {
		report.Months[i].Profit = report.Months[i].Income - report.Months[i].Expense
	}

	report.NetProfit = report.TotalIncome - report.TotalExpense
	if report.TotalIncome > 0 {
		report.ProfitMargin = float64(report.NetProfit) / float64(report.TotalIncome) * 100
		report.ExpenseRatio = float64(report.TotalExpense) / float64(report.TotalIncome) * 100
	}
	report.MonthlyAvg = report.TotalIncome / 12

	return report
}

// Arrears lists every tenant that owes money, worst first. Recomputed from
// the payment history on every call.
func (s *ReportService) Arrears(ctx context.Context) ([]TenantArrears, error) {
	var tenants []*models.Tenant
	if err := s.db.WithContext(ctx).Order("room_number").Find(&tenants).Error; err != nil {
		return nil, err
	}

	type paidRow struct {
		TenantID  uint
		TotalPaid int64
	}
	var rows []paidRow
	err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select("tenant_id, COALESCE(SUM(payment_amount), 0) AS total_paid").
		Group("tenant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	paidByTenant := make(map[uint]int64, len(rows))
	for _, r := range rows {
		paidByTenant[r.TenantID] = r.TotalPaid
	}

	return BuildArrearsReport(tenants, paidByTenant, s.now()), nil
}

// BuildArrearsReport applies the outstanding-balance formula per tenant and
// keeps only those in arrears, sorted by amount descending.
func BuildArrearsReport(tenants []*models.Tenant, paidByTenant map[uint]int64, now time.Time) []TenantArrears {
	result := make([]TenantArrears, 0, len(tenants))
	for _, tenant := range tenants {
		months := MonthsElapsed(tenant.CheckinDate, now)
		arrears := OutstandingAmount(tenant.MonthlyRent, months, paidByTenant[tenant.ID])
		if arrears <= 0 {
			continue
		}
		result = append(result, TenantArrears{
			Tenant:        tenant,
			TotalArrears:  arrears,
			MonthsArrears: int(math.Ceil(float64(arrears) / float64(tenant.MonthlyRent))),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalArrears > result[j].TotalArrears
	})
	return result
}
