package models

import "time"

// Payment status values, as printed on receipts.
const (
	PaymentStatusPaidInFull = "lunas"
	PaymentStatusUnderPaid  = "kurang_bayar"
	PaymentStatusOverPaid   = "lebih_bayar"
)

// Payment methods.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodEwallet  = "ewallet"
)

// Payment records one payment event. It is immutable in intent: after
// creation only PaymentAmount, DiscountAmount and Notes may be corrected by
// an operator, and the stored computed fields are not recomputed on edit.
//
// Invariant: RemainingBalance = RentAmount + PreviousBalance -
// DiscountAmount - PaymentAmount, and PaymentStatus follows its sign.
type Payment struct {
	BaseModel
	TenantID         uint      `json:"tenant_id" gorm:"not null;index"`
	Tenant           *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	ReceiptNumber    string    `json:"receipt_number" gorm:"unique;not null;size:30"`
	PaymentDate      time.Time `json:"payment_date" gorm:"type:date;not null"`
	PeriodMonth      int       `json:"period_month" gorm:"not null"`
	PeriodYear       int       `json:"period_year" gorm:"not null;index"`
	RentAmount       int64     `json:"rent_amount" gorm:"not null"`
	PreviousBalance  int64     `json:"previous_balance" gorm:"not null;default:0"`
	PaymentAmount    int64     `json:"payment_amount" gorm:"not null"`
	DiscountAmount   int64     `json:"discount_amount" gorm:"not null;default:0"`
	RemainingBalance int64     `json:"remaining_balance" gorm:"not null"`
	PaymentStatus    string    `json:"payment_status" gorm:"not null;size:20"`
	PaymentMethod    string    `json:"payment_method" gorm:"not null;size:20"`
	Notes            *string   `json:"notes" gorm:"type:text"`
}

func (p *Payment) TableName() string {
	return "payments"
}

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodEwallet:
		return true
	}
	return false
}
