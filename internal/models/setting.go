package models

import "gorm.io/datatypes"

// Setting keys.
const (
	SettingKeyWhatsApp = "whatsapp"
)

// Setting is a keyed JSON settings document, e.g. the operator's WhatsApp
// template overrides.
type Setting struct {
	BaseModel
	Key   string         `json:"key" gorm:"unique;not null;size:50"`
	Value datatypes.JSON `json:"value" gorm:"not null"`
}

func (s *Setting) TableName() string {
	return "settings"
}
