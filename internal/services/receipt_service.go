package services

import (
	"context"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/format"

	"gorm.io/gorm"
)

// Receipt is the printable payload for one payment: every amount both as a
// number and as formatted rupiah, with the paid amount spelled out in words.
type Receipt struct {
	ReceiptNumber      string `json:"receipt_number"`
	KostName           string `json:"kost_name"`
	TenantName         string `json:"tenant_name"`
	RoomNumber         string `json:"room_number"`
	Period             string `json:"period"`
	PaymentDate        string `json:"payment_date"`
	PaymentMethod      string `json:"payment_method"`
	RentAmount         int64  `json:"rent_amount"`
	PreviousBalance    int64  `json:"previous_balance"`
	DiscountAmount     int64  `json:"discount_amount"`
	PaymentAmount      int64  `json:"payment_amount"`
	RemainingBalance   int64  `json:"remaining_balance"`
	PaymentStatus      string `json:"payment_status"`
	RentFormatted      string `json:"rent_formatted"`
	PreviousFormatted  string `json:"previous_formatted"`
	DiscountFormatted  string `json:"discount_formatted"`
	PaymentFormatted   string `json:"payment_formatted"`
	RemainingFormatted string `json:"remaining_formatted"`
	AmountInWords      string `json:"amount_in_words"`
	Notes              string `json:"notes,omitempty"`
}

// ReceiptService renders receipts from stored payments.
type ReceiptService struct {
	db       *gorm.DB
	kostName string
}

func NewReceiptService(db *gorm.DB, kostName string) *ReceiptService {
	return &ReceiptService{
		db:       db,
		kostName: kostName,
	}
}

// ForPayment builds the receipt for one payment record.
func (s *ReceiptService) ForPayment(ctx context.Context, paymentID uint) (*Receipt, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).Preload("Tenant").First(&payment, paymentID).Error
	if err != nil {
		return nil, err
	}

	return BuildReceipt(&payment, s.kostName), nil
}

// BuildReceipt formats a payment into its printable form.
func BuildReceipt(payment *models.Payment, kostName string) *Receipt {
	receipt := &Receipt{
		ReceiptNumber:      payment.ReceiptNumber,
		KostName:           kostName,
		Period:             format.FormatPeriod(payment.PeriodMonth, payment.PeriodYear),
		PaymentDate:        format.FormatDate(payment.PaymentDate),
		PaymentMethod:      payment.PaymentMethod,
		RentAmount:         payment.RentAmount,
		PreviousBalance:    payment.PreviousBalance,
		DiscountAmount:     payment.DiscountAmount,
		PaymentAmount:      payment.PaymentAmount,
		RemainingBalance:   payment.RemainingBalance,
		PaymentStatus:      payment.PaymentStatus,
		RentFormatted:      format.FormatCurrency(payment.RentAmount),
		PreviousFormatted:  format.FormatCurrency(payment.PreviousBalance),
		DiscountFormatted:  format.FormatCurrency(payment.DiscountAmount),
		PaymentFormatted:   format.FormatCurrency(payment.PaymentAmount),
		RemainingFormatted: format.FormatCurrency(payment.RemainingBalance),
		AmountInWords:      format.Terbilang(payment.PaymentAmount),
	}

	if payment.Tenant != nil {
		receipt.TenantName = payment.Tenant.Name
		receipt.RoomNumber = payment.Tenant.RoomNumber
	}
	if payment.Notes != nil {
		receipt.Notes = *payment.Notes
	}

	return receipt
}
