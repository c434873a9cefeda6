package services

import (
	"testing"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentCalculator_Calculate(t *testing.T) {
	tests := []struct {
		name              string
		input             PaymentInput
		wantTotalDue      int64
		wantAfterDiscount int64
		wantRemaining     int64
		wantStatus        string
	}{
		{
			name: "ExactPaymentWithArrears",
			input: PaymentInput{
				RentAmount:      500000,
				PreviousBalance: 1000000,
				PaymentAmount:   1500000,
			},
			wantTotalDue:      1500000,
			wantAfterDiscount: 1500000,
			wantRemaining:     0,
			wantStatus:        models.PaymentStatusPaidInFull,
		},
		{
			name: "UnderPaidWithDiscount",
			input: PaymentInput{
				RentAmount:     500000,
				DiscountAmount: 100000,
				PaymentAmount:  300000,
			},
			wantTotalDue:      500000,
			wantAfterDiscount: 400000,
			wantRemaining:     100000,
			wantStatus:        models.PaymentStatusUnderPaid,
		},
		{
			name: "OverPaid",
			input: PaymentInput{
				RentAmount:    500000,
				PaymentAmount: 550000,
			},
			wantTotalDue:      500000,
			wantAfterDiscount: 500000,
			wantRemaining:     -50000,
			wantStatus:        models.PaymentStatusOverPaid,
		},
		{
			name: "DiscountLargerThanDueIsNotFloored",
			input: PaymentInput{
				RentAmount:     500000,
				DiscountAmount: 600000,
				PaymentAmount:  0,
			},
			wantTotalDue:      500000,
			wantAfterDiscount: -100000,
			wantRemaining:     -100000,
			wantStatus:        models.PaymentStatusOverPaid,
		},
		{
			name:              "AllZero",
			input:             PaymentInput{},
			wantTotalDue:      0,
			wantAfterDiscount: 0,
			wantRemaining:     0,
			wantStatus:        models.PaymentStatusPaidInFull,
		},
	}

	calculator := NewPaymentCalculator("AW")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculator.Calculate(tt.input)
			assert.Equal(t, tt.wantTotalDue, result.TotalDue)
			assert.Equal(t, tt.wantAfterDiscount, result.TotalAfterDiscount)
			assert.Equal(t, tt.wantRemaining, result.RemainingBalance)
			assert.Equal(t, tt.wantStatus, result.PaymentStatus)
		})
	}
}

func TestPaymentCalculator_Idempotence(t *testing.T) {
	calculator := NewPaymentCalculator("AW")
	input := PaymentInput{
		RentAmount:      500000,
		PreviousBalance: 250000,
		PaymentAmount:   600000,
		DiscountAmount:  50000,
	}

	first := calculator.Calculate(input)
	second := calculator.Calculate(input)

	assert.Equal(t, first.TotalDue, second.TotalDue)
	assert.Equal(t, first.TotalAfterDiscount, second.TotalAfterDiscount)
	assert.Equal(t, first.RemainingBalance, second.RemainingBalance)
	assert.Equal(t, first.PaymentStatus, second.PaymentStatus)
}

func TestPaymentCalculator_ReceiptNumber(t *testing.T) {
	calculator := NewPaymentCalculator("AW")
	calculator.now = func() time.Time {
		return time.UnixMilli(1710480000000).UTC() // 2024-03-15
	}

	result := calculator.Calculate(PaymentInput{RentAmount: 500000, PaymentAmount: 500000})

	require.Len(t, result.ReceiptNumber, 12)
	assert.Equal(t, "AW240315", result.ReceiptNumber[:8])
	assert.Equal(t, "0000", result.ReceiptNumber[8:])
	assert.Equal(t, time.UnixMilli(1710480000000).UTC(), result.PaymentDate)
}
