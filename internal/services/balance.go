package services

import (
	"context"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"

	"gorm.io/gorm"
)

// BalanceCalculator computes a tenant's outstanding balance as of now. Two
// interchangeable strategies exist: the database procedure (authoritative)
// and the local recompute. They must agree on well-formed input.
type BalanceCalculator interface {
	Outstanding(ctx context.Context, tenant *models.Tenant) (int64, error)
}

// MonthsElapsed counts calendar months from the check-in month through the
// evaluation month, inclusive of the check-in month: checked in March,
// evaluated in March means 1 month, not 0. Future check-ins yield 0.
func MonthsElapsed(checkin, now time.Time) int {
	months := (now.Year()-checkin.Year())*12 + int(now.Month()) - int(checkin.Month()) + 1
	if months < 0 {
		return 0
	}
	return months
}

// OutstandingAmount is the arrears formula: everything that should have been
// paid since check-in minus everything that was, floored at zero. Payments
// count regardless of which period they were tagged with.
func OutstandingAmount(monthlyRent int64, monthsElapsed int, totalPaid int64) int64 {
	if monthsElapsed < 1 {
		return 0
	}
	outstanding := monthlyRent*int64(monthsElapsed) - totalPaid
	if outstanding < 0 {
		return 0
	}
	return outstanding
}

// LocalBalanceCalculator recomputes the balance from first principles out of
// the payments table. Used as the fallback when the database procedure is
// unreachable, and by the arrears report.
type LocalBalanceCalculator struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLocalBalanceCalculator(db *gorm.DB) *LocalBalanceCalculator {
	return &LocalBalanceCalculator{
		db:  db,
		now: time.Now,
	}
}

func (c *LocalBalanceCalculator) Outstanding(ctx context.Context, tenant *models.Tenant) (int64, error) {
	months := MonthsElapsed(tenant.CheckinDate, c.now())
	if months < 1 {
		return 0, nil
	}

	var totalPaid int64
	err := c.db.WithContext(ctx).Model(&models.Payment{}).
		Where("tenant_id = ?", tenant.ID).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&totalPaid).Error
	if err != nil {
		return 0, err
	}

	return OutstandingAmount(tenant.MonthlyRent, months, totalPaid), nil
}

// ProcedureBalanceCalculator delegates to the calculate_outstanding_balance
// database function.
type ProcedureBalanceCalculator struct {
	db *gorm.DB
}

func NewProcedureBalanceCalculator(db *gorm.DB) *ProcedureBalanceCalculator {
	return &ProcedureBalanceCalculator{db: db}
}

func (c *ProcedureBalanceCalculator) Outstanding(ctx context.Context, tenant *models.Tenant) (int64, error) {
	var balance int64
	err := c.db.WithContext(ctx).
		Raw("SELECT calculate_outstanding_balance(?)", tenant.ID).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// FallbackBalanceCalculator tries the primary strategy and substitutes the
// fallback on failure. The user is never blocked by a transient procedure
// error; fallback usage is only logged.
type FallbackBalanceCalculator struct {
	primary  BalanceCalculator
	fallback BalanceCalculator
}

func NewFallbackBalanceCalculator(primary, fallback BalanceCalculator) *FallbackBalanceCalculator {
	return &FallbackBalanceCalculator{
		primary:  primary,
		fallback: fallback,
	}
}

func (c *FallbackBalanceCalculator) Outstanding(ctx context.Context, tenant *models.Tenant) (int64, error) {
	balance, err := c.primary.Outstanding(ctx, tenant)
	if err == nil {
		return balance, nil
	}

	logger.GetLogger().Warnf("outstanding balance procedure failed for tenant %d, using local recompute: %v", tenant.ID, err)
	return c.fallback.Outstanding(ctx, tenant)
}
