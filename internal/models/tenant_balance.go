package models

import "time"

// TenantBalance is the cached per-tenant summary maintained by the
// update_tenant_balance database procedure. Derived data: the payment
// history is authoritative and this row is eventually consistent with it.
type TenantBalance struct {
	BaseModel
	TenantID        uint       `json:"tenant_id" gorm:"uniqueIndex;not null"`
	Tenant          *Tenant    `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	CurrentBalance  int64      `json:"current_balance" gorm:"not null;default:0"`
	LastPaymentDate *time.Time `json:"last_payment_date" gorm:"type:date"`
	NextDueDate     *time.Time `json:"next_due_date" gorm:"type:date"`
}

func (b *TenantBalance) TableName() string {
	return "tenant_balances"
}
