package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Antieqkers/antieq-wisma-bill/internal/database"
	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
)

// These tests need a real postgres because the authoritative balance path
// lives in the database. Set TEST_DATABASE_URL to run them, e.g.
//
//	TEST_DATABASE_URL="host=localhost user=postgres dbname=awbill_test sslmode=disable"
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.Payment{}, &models.TenantBalance{}))
	require.NoError(t, database.InstallBalanceProcedures(db))
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, checkin time.Time, rent int64, paid []int64) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		Name:        "Penghuni Uji",
		RoomNumber:  fmt.Sprintf("UJI-%d", time.Now().UnixNano()%1000000),
		CheckinDate: checkin,
		MonthlyRent: rent,
	}
	require.NoError(t, db.Create(tenant).Error)
	t.Cleanup(func() {
		db.Where("tenant_id = ?", tenant.ID).Delete(&models.Payment{})
		db.Where("tenant_id = ?", tenant.ID).Delete(&models.TenantBalance{})
		db.Delete(tenant)
	})

	for i, amount := range paid {
		payment := &models.Payment{
			TenantID:      tenant.ID,
			ReceiptNumber: fmt.Sprintf("UJI%d-%d", tenant.ID, i),
			PaymentDate:   time.Now(),
			PeriodMonth:   int(time.Now().Month()),
			PeriodYear:    time.Now().Year(),
			RentAmount:    rent,
			PaymentAmount: amount,
			PaymentStatus: models.PaymentStatusPaidInFull,
			PaymentMethod: models.PaymentMethodCash,
		}
		require.NoError(t, db.Create(payment).Error)
	}
	return tenant
}

// The database function and the local recompute must return identical
// results for the same tenant; the fallback is only useful if switching
// paths is invisible to the operator.
func TestOutstandingPathsAgree(t *testing.T) {
	db := openTestDB(t)

	procedure := NewProcedureBalanceCalculator(db)
	local := NewLocalBalanceCalculator(db)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	const rent = int64(500000)

	tests := []struct {
		name    string
		checkin time.Time
		paid    []int64
		want    int64
	}{
		{name: "NoPaymentsThreeMonths", checkin: monthStart.AddDate(0, -2, 0), want: 1500000},
		{name: "OnePaymentMade", checkin: monthStart.AddDate(0, -2, 0), paid: []int64{500000}, want: 1000000},
		{name: "TwoPartialPayments", checkin: monthStart.AddDate(0, -2, 0), paid: []int64{300000, 400000}, want: 800000},
		{name: "FullySettled", checkin: monthStart.AddDate(0, -2, 0), paid: []int64{500000, 1000000}, want: 0},
		{name: "OverpaidFloorsAtZero", checkin: monthStart.AddDate(0, -2, 0), paid: []int64{2000000}, want: 0},
		{name: "CheckinThisMonth", checkin: monthStart, want: 500000},
		{name: "CheckinNextMonth", checkin: monthStart.AddDate(0, 1, 0), want: 0},
		{name: "CrossYearSpan", checkin: monthStart.AddDate(-1, -1, 0), paid: []int64{500000}, want: 14*rent - 500000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant := seedTenant(t, db, tt.checkin, rent, tt.paid)
			ctx := context.Background()

			fromProcedure, err := procedure.Outstanding(ctx, tenant)
			require.NoError(t, err)
			fromLocal, err := local.Outstanding(ctx, tenant)
			require.NoError(t, err)

			require.Equal(t, fromLocal, fromProcedure, "database path and local path disagree")
			require.Equal(t, tt.want, fromProcedure)
		})
	}
}

// Refresh goes through the update_tenant_balance function; the persisted
// summary must match what both calculators report.
func TestBalanceServiceRefreshPersistsSummary(t *testing.T) {
	db := openTestDB(t)

	svc := NewBalanceService(db, nil)
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	tenant := seedTenant(t, db, monthStart.AddDate(0, -2, 0), 500000, []int64{500000})
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx, tenant.ID))

	var row models.TenantBalance
	require.NoError(t, db.Where("tenant_id = ?", tenant.ID).First(&row).Error)
	require.Equal(t, int64(1000000), row.CurrentBalance)
	require.NotNil(t, row.LastPaymentDate)
	require.NotNil(t, row.NextDueDate)

	outstanding, err := svc.Outstanding(ctx, tenant)
	require.NoError(t, err)
	require.Equal(t, row.CurrentBalance, outstanding)
}
