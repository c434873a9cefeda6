package services

import (
	"fmt"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
)

// PaymentInput is everything the reconciliation needs. All amounts are whole
// rupiah and must be non-negative; a discount larger than the total due is
// the caller's responsibility to prevent.
type PaymentInput struct {
	RentAmount      int64
	PreviousBalance int64
	PaymentAmount   int64
	DiscountAmount  int64
}

// PaymentResult is a single reconciliation outcome.
type PaymentResult struct {
	TotalDue           int64     `json:"total_due"`
	TotalAfterDiscount int64     `json:"total_after_discount"`
	RemainingBalance   int64     `json:"remaining_balance"`
	PaymentStatus      string    `json:"payment_status"`
	ReceiptNumber      string    `json:"receipt_number"`
	PaymentDate        time.Time `json:"payment_date"`
}

// PaymentCalculator computes reconciliation results and stamps them with a
// receipt number. Pure apart from the clock read.
type PaymentCalculator struct {
	receiptPrefix string
	now           func() time.Time
}

func NewPaymentCalculator(receiptPrefix string) *PaymentCalculator {
	return &PaymentCalculator{
		receiptPrefix: receiptPrefix,
		now:           time.Now,
	}
}

// Calculate reconciles one payment event.
//
// remaining = (rent + previous balance - discount) - payment, and the status
// follows its sign: positive is kurang_bayar, negative lebih_bayar, zero
// lunas.
func (c *PaymentCalculator) Calculate(in PaymentInput) *PaymentResult {
	totalDue := in.RentAmount + in.PreviousBalance
	totalAfterDiscount := totalDue - in.DiscountAmount
	remainingBalance := totalAfterDiscount - in.PaymentAmount

	var status string
	switch {
	case remainingBalance > 0:
		status = models.PaymentStatusUnderPaid
	case remainingBalance < 0:
		status = models.PaymentStatusOverPaid
	default:
		status = models.PaymentStatusPaidInFull
	}

	now := c.now()
	return &PaymentResult{
		TotalDue:           totalDue,
		TotalAfterDiscount: totalAfterDiscount,
		RemainingBalance:   remainingBalance,
		PaymentStatus:      status,
		ReceiptNumber:      c.generateReceiptNumber(now),
		PaymentDate:        now,
	}
}

// generateReceiptNumber builds prefix + yymmdd + the last four digits of the
// epoch milliseconds. Practically unique for a single operator; the unique
// index on payments.receipt_number catches the rare collision.
func (c *PaymentCalculator) generateReceiptNumber(now time.Time) string {
	return fmt.Sprintf("%s%s%04d", c.receiptPrefix, now.Format("060102"), now.UnixMilli()%10000)
}
