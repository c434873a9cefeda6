package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
)

func TestSummarizeMonth(t *testing.T) {
	payments := []*models.Payment{
		{PaymentAmount: 500000, DiscountAmount: 0, RemainingBalance: 0},
		{PaymentAmount: 300000, DiscountAmount: 50000, RemainingBalance: 150000},
		{PaymentAmount: 600000, DiscountAmount: 0, RemainingBalance: -100000},
	}

	summary := SummarizeMonth(payments)

	assert.Equal(t, 3, summary.TotalTransactions)
	assert.Equal(t, int64(1400000), summary.TotalPayments)
	assert.Equal(t, int64(50000), summary.TotalDiscount)
	// Only positive remainders count; the overpayment does not offset the
	// other tenant's arrears.
	assert.Equal(t, int64(150000), summary.TotalOutstanding)
	assert.Len(t, summary.Payments, 3)
}

func TestSummarizeMonth_Empty(t *testing.T) {
	summary := SummarizeMonth(nil)

	assert.Equal(t, 0, summary.TotalTransactions)
	assert.Zero(t, summary.TotalPayments)
	assert.Zero(t, summary.TotalOutstanding)
	assert.Zero(t, summary.TotalDiscount)
}

func TestBuildFinancialReport(t *testing.T) {
	payments := []*models.Payment{
		{PeriodMonth: 1, PeriodYear: 2024, PaymentAmount: 500000},
		{PeriodMonth: 1, PeriodYear: 2024, PaymentAmount: 450000},
		{PeriodMonth: 3, PeriodYear: 2024, PaymentAmount: 500000},
	}
	expenses := []*models.Expense{
		{Amount: 200000, ExpenseDate: date(2024, time.January, 20)},
		{Amount: 150000, ExpenseDate: date(2024, time.February, 5)},
	}

	report := BuildFinancialReport(2024, payments, expenses)

	assert.Equal(t, 2024, report.Year)
	assert.Len(t, report.Months, 12)

	jan := report.Months[0]
	assert.Equal(t, 1, jan.Month)
	assert.Equal(t, "Januari", jan.Name)
	assert.Equal(t, int64(950000), jan.Income)
	assert.Equal(t, int64(200000), jan.Expense)
	assert.Equal(t, int64(750000), jan.Profit)

	feb := report.Months[1]
	assert.Equal(t, int64(0), feb.Income)
	assert.Equal(t, int64(150000), feb.Expense)
	assert.Equal(t, int64(-150000), feb.Profit)

	assert.Equal(t, int64(1450000), report.TotalIncome)
	assert.Equal(t, int64(350000), report.TotalExpense)
	assert.Equal(t, int64(1100000), report.NetProfit)
	assert.InDelta(t, 75.86, report.ProfitMargin, 0.01)
	assert.InDelta(t, 24.13, report.ExpenseRatio, 0.01)
	assert.Equal(t, int64(1450000/12), report.MonthlyAvg)
}

func TestBuildFinancialReport_NoIncome(t *testing.T) {
	report := BuildFinancialReport(2024, nil, []*models.Expense{
		{Amount: 100000, ExpenseDate: date(2024, time.June, 1)},
	})

	assert.Zero(t, report.TotalIncome)
	assert.Equal(t, int64(-100000), report.NetProfit)
	// Ratios stay zero instead of dividing by zero.
	assert.Zero(t, report.ProfitMargin)
	assert.Zero(t, report.ExpenseRatio)
}

func TestBuildArrearsReport(t *testing.T) {
	now := date(2024, time.March, 15)
	tenants := []*models.Tenant{
		{
			BaseModel:   models.BaseModel{ID: 1},
			Name:        "Budi",
			RoomNumber:  "A1",
			CheckinDate: date(2024, time.January, 1),
			MonthlyRent: 500000,
		},
		{
			BaseModel:   models.BaseModel{ID: 2},
			Name:        "Sari",
			RoomNumber:  "A2",
			CheckinDate: date(2024, time.January, 1),
			MonthlyRent: 500000,
		},
		{
			BaseModel:   models.BaseModel{ID: 3},
			Name:        "Joko",
			RoomNumber:  "A3",
			CheckinDate: date(2023, time.November, 1),
			MonthlyRent: 600000,
		},
	}
	paid := map[uint]int64{
		1: 1500000, // fully settled
		2: 300000,  // partial
		// tenant 3 never paid
	}

	rows := BuildArrearsReport(tenants, paid, now)

	// Settled tenant is excluded; worst debtor first.
	assert.Len(t, rows, 2)

	assert.Equal(t, uint(3), rows[0].Tenant.ID)
	assert.Equal(t, int64(3000000), rows[0].TotalArrears) // 5 months x 600k
	assert.Equal(t, 5, rows[0].MonthsArrears)

	assert.Equal(t, uint(2), rows[1].Tenant.ID)
	assert.Equal(t, int64(1200000), rows[1].TotalArrears)
	assert.Equal(t, 3, rows[1].MonthsArrears) // ceil(1.2M / 500k)
}

func TestBuildArrearsReport_AllSettled(t *testing.T) {
	tenants := []*models.Tenant{
		{
			BaseModel:   models.BaseModel{ID: 1},
			CheckinDate: date(2024, time.February, 1),
			MonthlyRent: 500000,
		},
	}

	rows := BuildArrearsReport(tenants, map[uint]int64{1: 1000000}, date(2024, time.March, 10))

	assert.Empty(t, rows)
}
