package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
)

func TestPaymentServiceValidate(t *testing.T) {
	svc := &PaymentService{}
	valid := CreatePaymentParams{
		TenantID:      1,
		PeriodYear:    2024,
		PaymentAmount: 500000,
		PaymentMethod: models.PaymentMethodCash,
	}

	assert.NoError(t, svc.validate(valid))

	tests := []struct {
		name    string
		mutate  func(*CreatePaymentParams)
		wantErr error
	}{
		{
			name:    "MissingTenant",
			mutate:  func(p *CreatePaymentParams) { p.TenantID = 0 },
			wantErr: ErrNoTenantSelected,
		},
		{
			name:    "ZeroAmount",
			mutate:  func(p *CreatePaymentParams) { p.PaymentAmount = 0 },
			wantErr: ErrInvalidPaymentAmount,
		},
		{
			name:    "NegativeAmount",
			mutate:  func(p *CreatePaymentParams) { p.PaymentAmount = -100 },
			wantErr: ErrInvalidPaymentAmount,
		},
		{
			name:    "MissingMethod",
			mutate:  func(p *CreatePaymentParams) { p.PaymentMethod = "" },
			wantErr: ErrNoPaymentMethod,
		},
		{
			name:    "UnknownMethod",
			mutate:  func(p *CreatePaymentParams) { p.PaymentMethod = "cek" },
			wantErr: ErrNoPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)
			assert.ErrorIs(t, svc.validate(params), tt.wantErr)
		})
	}
}

func TestSubmitGuard(t *testing.T) {
	guard := newSubmitGuard()

	token, ok := guard.acquire(1)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	// Same tenant is blocked while in flight; other tenants are not.
	_, ok = guard.acquire(1)
	assert.False(t, ok)
	other, ok := guard.acquire(2)
	assert.True(t, ok)
	assert.NotEqual(t, token, other)

	// A stale token does not release someone else's slot.
	guard.release(1, "not-the-token")
	_, ok = guard.acquire(1)
	assert.False(t, ok)

	guard.release(1, token)
	_, ok = guard.acquire(1)
	assert.True(t, ok)
}

func TestTranslatePersistError(t *testing.T) {
	assert.ErrorIs(t, translatePersistError(errDuplicateKey{}), ErrDuplicateReceipt)

	err := translatePersistError(errPlain("insert or update violates foreign key constraint"))
	assert.EqualError(t, err, "Data penghuni tidak valid")

	err = translatePersistError(errPlain("connection refused"))
	assert.EqualError(t, err, "Gagal menyimpan pembayaran")
}

type errPlain string

func (e errPlain) Error() string { return string(e) }

type errDuplicateKey struct{}

func (errDuplicateKey) Error() string {
	return `duplicate key value violates unique constraint "payments_receipt_number_key"`
}

func TestBuildReceipt(t *testing.T) {
	notes := "Sudah termasuk listrik"
	payment := &models.Payment{
		BaseModel:     models.BaseModel{ID: 7},
		ReceiptNumber: "AW2403150042",
		PaymentDate:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		PeriodMonth:   3,
		PeriodYear:    2024,
		RentAmount:    500000,
		PaymentAmount: 500000,
		PaymentStatus: models.PaymentStatusPaidInFull,
		PaymentMethod: models.PaymentMethodCash,
		Notes:         &notes,
		Tenant: &models.Tenant{
			Name:       "Budi Santoso",
			RoomNumber: "A1",
		},
	}

	receipt := BuildReceipt(payment, "ANTIEQ WISMA KOST")

	assert.Equal(t, "AW2403150042", receipt.ReceiptNumber)
	assert.Equal(t, "ANTIEQ WISMA KOST", receipt.KostName)
	assert.Equal(t, "Budi Santoso", receipt.TenantName)
	assert.Equal(t, "A1", receipt.RoomNumber)
	assert.Equal(t, "Maret 2024", receipt.Period)
	assert.Equal(t, "15 Maret 2024", receipt.PaymentDate)
	assert.Equal(t, "Rp 500.000", receipt.PaymentFormatted)
	assert.Equal(t, "lima ratus ribu rupiah", receipt.AmountInWords)
	assert.Equal(t, "Sudah termasuk listrik", receipt.Notes)
}

func TestBuildReceipt_NoTenantPreloaded(t *testing.T) {
	receipt := BuildReceipt(&models.Payment{ReceiptNumber: "AW2403150042"}, "ANTIEQ WISMA KOST")

	assert.Empty(t, receipt.TenantName)
	assert.Empty(t, receipt.RoomNumber)
	assert.Empty(t, receipt.Notes)
}
