package models

import "time"

// Tenant is a boarding-house occupant renting a numbered room at a fixed
// monthly rate. CheckinDate and MonthlyRent drive all arrears math.
//
// MonthlyRent is not historized: editing it retroactively changes the
// computed arrears for every month since check-in. That matches the books
// as the operator keeps them and is intentional.
type Tenant struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null;size:100"`
	RoomNumber  string    `json:"room_number" gorm:"not null;size:20;index"`
	Phone       *string   `json:"phone" gorm:"size:20"`
	Email       *string   `json:"email" gorm:"size:100"`
	CheckinDate time.Time `json:"checkin_date" gorm:"type:date;not null"`
	MonthlyRent int64     `json:"monthly_rent" gorm:"not null"`
}

func (t *Tenant) TableName() string {
	return "tenants"
}
