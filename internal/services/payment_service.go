package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Validation errors surfaced to the operator before any I/O happens.
var (
	ErrNoTenantSelected     = errors.New("Pilih penghuni terlebih dahulu")
	ErrInvalidPaymentAmount = errors.New("Masukkan jumlah pembayaran yang valid")
	ErrNoPaymentMethod      = errors.New("Pilih metode pembayaran")
	ErrSubmissionInFlight   = errors.New("Pembayaran untuk penghuni ini sedang diproses")
	ErrDuplicateReceipt     = errors.New("Nomor kwitansi sudah ada, silakan coba lagi")
)

// CreatePaymentParams is the submitted form state.
type CreatePaymentParams struct {
	TenantID       uint
	PeriodYear     int
	PaymentAmount  int64
	DiscountAmount int64
	PaymentMethod  string
	Notes          string
}

// UpdatePaymentParams carries the only fields an operator may correct after
// creation. Computed fields are deliberately not recomputed on edit.
type UpdatePaymentParams struct {
	PaymentAmount  *int64
	DiscountAmount *int64
	Notes          *string
}

// PaymentService runs the submission pipeline: validate, guard, compute the
// previous balance fresh, reconcile, persist, then refresh the cached
// balance best-effort.
type PaymentService struct {
	db         *gorm.DB
	calculator *PaymentCalculator
	balances   *BalanceService
	guard      *submitGuard
}

func NewPaymentService(db *gorm.DB, calculator *PaymentCalculator, balances *BalanceService) *PaymentService {
	return &PaymentService{
		db:         db,
		calculator: calculator,
		balances:   balances,
		guard:      newSubmitGuard(),
	}
}

// Create records one payment event. The returned warning is non-empty when
// the payment was persisted but the cached balance refresh failed; the
// payment itself is authoritative and the summary can be regenerated later.
func (s *PaymentService) Create(ctx context.Context, params CreatePaymentParams) (*models.Payment, string, error) {
	if err := s.validate(params); err != nil {
		return nil, "", err
	}

	// per-tenant in-flight token: closes the double-submission race that UI
	// disabling alone cannot
	token, ok := s.guard.acquire(params.TenantID)
	if !ok {
		return nil, "", ErrSubmissionInFlight
	}
	defer s.guard.release(params.TenantID, token)

	var tenant models.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, params.TenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNoTenantSelected
		}
		return nil, "", err
	}

	previousBalance, err := s.balances.Outstanding(ctx, &tenant)
	if err != nil {
		return nil, "", err
	}

	result := s.calculator.Calculate(PaymentInput{
		RentAmount:      tenant.MonthlyRent,
		PreviousBalance: previousBalance,
		PaymentAmount:   params.PaymentAmount,
		DiscountAmount:  params.DiscountAmount,
	})

	payment := &models.Payment{
		TenantID:      tenant.ID,
		ReceiptNumber: result.ReceiptNumber,
		PaymentDate:   result.PaymentDate,
		// the period month is always the active system month; the form only
		// picks the year
		PeriodMonth:      int(result.PaymentDate.Month()),
		PeriodYear:       params.PeriodYear,
		RentAmount:       tenant.MonthlyRent,
		PreviousBalance:  previousBalance,
		PaymentAmount:    params.PaymentAmount,
		DiscountAmount:   params.DiscountAmount,
		RemainingBalance: result.RemainingBalance,
		PaymentStatus:    result.PaymentStatus,
		PaymentMethod:    params.PaymentMethod,
	}
	if params.Notes != "" {
		payment.Notes = &params.Notes
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, "", translatePersistError(err)
	}

	// fire-and-forget summary refresh: failure never rolls the payment back
	warning := ""
	if err := s.balances.Refresh(ctx, tenant.ID); err != nil {
		logger.GetLogger().Warnf("tenant balance refresh failed after payment %s: %v", payment.ReceiptNumber, err)
		warning = "Pembayaran tersimpan, namun pembaruan saldo tertunda"
	}

	return payment, warning, nil
}

func (s *PaymentService) validate(params CreatePaymentParams) error {
	if params.TenantID == 0 {
		return ErrNoTenantSelected
	}
	if params.PaymentAmount <= 0 {
		return ErrInvalidPaymentAmount
	}
	if params.PaymentMethod == "" {
		return ErrNoPaymentMethod
	}
	if !models.ValidPaymentMethod(params.PaymentMethod) {
		return ErrNoPaymentMethod
	}
	return nil
}

// translatePersistError maps raw database errors to the operator-facing
// categories; transport errors are never shown directly.
func translatePersistError(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "duplicate key"):
		return ErrDuplicateReceipt
	case strings.Contains(msg, "foreign key"):
		return errors.New("Data penghuni tidak valid")
	case strings.Contains(msg, "check constraint"):
		return errors.New("Data pembayaran tidak valid")
	default:
		return errors.New("Gagal menyimpan pembayaran")
	}
}

// GetByID loads one payment with its tenant.
func (s *PaymentService) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).Preload("Tenant").First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetWithFiltersAndPage lists payments newest first, optionally filtered by
// tenant, period and status.
func (s *PaymentService) GetWithFiltersAndPage(ctx context.Context, tenantID uint, periodMonth, periodYear int, status string, page, pageSize int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Payment{})
	if tenantID != 0 {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if periodMonth != 0 {
		query = query.Where("period_month = ?", periodMonth)
	}
	if periodYear != 0 {
		query = query.Where("period_year = ?", periodYear)
	}
	if status != "" {
		query = query.Where("payment_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Tenant").
		Order("payment_date DESC, id DESC").
		Offset(offset).Limit(pageSize).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// Update corrects the mutable fields of a payment. The stored computed
// fields (remaining balance, status) are left untouched; this is a manual
// bookkeeping correction, not a recalculation.
func (s *PaymentService) Update(ctx context.Context, id uint, params UpdatePaymentParams) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.PaymentAmount != nil {
		if *params.PaymentAmount <= 0 {
			return nil, ErrInvalidPaymentAmount
		}
		updates["payment_amount"] = *params.PaymentAmount
	}
	if params.DiscountAmount != nil {
		if *params.DiscountAmount < 0 {
			return nil, errors.New("Data pembayaran tidak valid")
		}
		updates["discount_amount"] = *params.DiscountAmount
	}
	if params.Notes != nil {
		updates["notes"] = *params.Notes
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&payment).Updates(updates).Error; err != nil {
			return nil, translatePersistError(err)
		}
		// edited amounts change the running total, so the summary is stale
		if err := s.balances.Refresh(ctx, payment.TenantID); err != nil {
			logger.GetLogger().Warnf("tenant balance refresh failed after payment edit %d: %v", id, err)
		}
	}

	return &payment, nil
}

// Delete removes a payment record. Explicit destructive operator action.
func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&payment).Error; err != nil {
		return err
	}
	if err := s.balances.Refresh(ctx, payment.TenantID); err != nil {
		logger.GetLogger().Warnf("tenant balance refresh failed after payment delete %d: %v", id, err)
	}
	return nil
}

// submitGuard holds one in-flight token per tenant.
type submitGuard struct {
	inflight map[uint]string
	lock     sync.Mutex
}

func newSubmitGuard() *submitGuard {
	return &submitGuard{
		inflight: make(map[uint]string),
	}
}

func (g *submitGuard) acquire(tenantID uint) (string, bool) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if _, busy := g.inflight[tenantID]; busy {
		return "", false
	}
	token := uuid.NewString()
	g.inflight[tenantID] = token
	return token, true
}

func (g *submitGuard) release(tenantID uint, token string) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.inflight[tenantID] == token {
		delete(g.inflight, tenantID)
	}
}
