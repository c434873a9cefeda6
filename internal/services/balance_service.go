package services

import (
	"context"
	"errors"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/cache"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceService owns the outstanding-balance computation and the cached
// tenant_balances summary. Outstanding always computes fresh (procedure with
// local fallback); the cached summary is for read surfaces like dashboards.
type BalanceService struct {
	db         *gorm.DB
	calculator BalanceCalculator
	local      *LocalBalanceCalculator
	cache      *cache.BalanceCache
	now        func() time.Time
}

// NewBalanceService wires the procedure-first, local-fallback strategy.
// cache may be nil when Redis is not available.
func NewBalanceService(db *gorm.DB, balanceCache *cache.BalanceCache) *BalanceService {
	local := NewLocalBalanceCalculator(db)
	return &BalanceService{
		db:         db,
		calculator: NewFallbackBalanceCalculator(NewProcedureBalanceCalculator(db), local),
		local:      local,
		cache:      balanceCache,
		now:        time.Now,
	}
}

// Outstanding returns the tenant's arrears as of now, never from a cache.
func (s *BalanceService) Outstanding(ctx context.Context, tenant *models.Tenant) (int64, error) {
	return s.calculator.Outstanding(ctx, tenant)
}

// OutstandingByID loads the tenant first.
func (s *BalanceService) OutstandingByID(ctx context.Context, tenantID uint) (int64, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, tenantID).Error; err != nil {
		return 0, err
	}
	return s.Outstanding(ctx, &tenant)
}

// Refresh regenerates the tenant_balances row. It calls the
// update_tenant_balance procedure and, when that is unreachable, recomputes
// and upserts locally so the cached summary never wedges on a dead
// procedure.
func (s *BalanceService) Refresh(ctx context.Context, tenantID uint) error {
	err := s.db.WithContext(ctx).Exec("SELECT update_tenant_balance(?)", tenantID).Error
	if err != nil {
		logger.GetLogger().Warnf("update_tenant_balance procedure failed for tenant %d, refreshing locally: %v", tenantID, err)
		if err := s.refreshLocally(ctx, tenantID); err != nil {
			return err
		}
	}

	s.invalidateCache(ctx, tenantID)
	return nil
}

func (s *BalanceService) refreshLocally(ctx context.Context, tenantID uint) error {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, tenantID).Error; err != nil {
		return err
	}

	balance, err := s.local.Outstanding(ctx, &tenant)
	if err != nil {
		return err
	}

	var lastPayment *time.Time
	var lastDate time.Time
	err = s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(MAX(payment_date), '0001-01-01')").
		Scan(&lastDate).Error
	if err != nil {
		return err
	}
	if lastDate.Year() > 1 {
		lastPayment = &lastDate
	}

	nextDue := NextDueDate(tenant.CheckinDate, s.now())

	row := models.TenantBalance{
		TenantID:        tenantID,
		CurrentBalance:  balance,
		LastPaymentDate: lastPayment,
		NextDueDate:     &nextDue,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_balance", "last_payment_date", "next_due_date", "updated_at"}),
		}).
		Create(&row).Error
}

// NextDueDate is the check-in anniversary day in the month after the
// evaluation month, clamped to the month length.
func NextDueDate(checkin, now time.Time) time.Time {
	year, month := now.Year(), int(now.Month())+1
	if month > 12 {
		month = 1
		year++
	}

	day := checkin.Day()
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Summary returns the cached balance snapshot, preferring Redis, then the
// tenant_balances table, regenerating the row when it does not exist yet.
// Eventually consistent with the payment history.
func (s *BalanceService) Summary(ctx context.Context, tenantID uint) (*models.TenantBalance, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBalance(ctx, tenantID)
		if err != nil {
			logger.GetLogger().Warnf("balance cache read failed for tenant %d: %v", tenantID, err)
		} else if cached != nil {
			return &models.TenantBalance{
				TenantID:        cached.TenantID,
				CurrentBalance:  cached.CurrentBalance,
				LastPaymentDate: cached.LastPaymentDate,
				NextDueDate:     cached.NextDueDate,
			}, nil
		}
	}

	var row models.TenantBalance
	err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.Refresh(ctx, tenantID); err != nil {
			return nil, err
		}
		err = s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&row).Error
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		summary := &cache.BalanceSummary{
			TenantID:        row.TenantID,
			CurrentBalance:  row.CurrentBalance,
			LastPaymentDate: row.LastPaymentDate,
			NextDueDate:     row.NextDueDate,
		}
		if err := s.cache.SetBalance(ctx, summary); err != nil {
			logger.GetLogger().Warnf("balance cache write failed for tenant %d: %v", tenantID, err)
		}
	}

	return &row, nil
}

func (s *BalanceService) invalidateCache(ctx context.Context, tenantID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBalance(ctx, tenantID); err != nil {
		logger.GetLogger().Warnf("balance cache invalidation failed for tenant %d: %v", tenantID, err)
	}
}

// RefreshAll regenerates the summary for every tenant, used by the nightly
// scheduler.
func (s *BalanceService) RefreshAll(ctx context.Context) (int, error) {
	var tenantIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).Pluck("id", &tenantIDs).Error; err != nil {
		return 0, err
	}

	refreshed := 0
	for _, id := range tenantIDs {
		if err := s.Refresh(ctx, id); err != nil {
			logger.GetLogger().Errorf("balance refresh failed for tenant %d: %v", id, err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
