package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/config"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/format"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNoPhoneNumber      = errors.New("Penghuni tidak memiliki nomor WhatsApp")
	ErrAutomationDisabled = errors.New("Otomatisasi pesan ini sedang nonaktif")
)

// WhatsAppSettings are the operator-tunable automation settings. Stored as a
// JSON settings document; missing values fall back to the defaults the
// service was constructed with.
type WhatsAppSettings struct {
	AutoConfirmPayment  bool   `json:"auto_confirm_payment"`
	AutoReminderArrears bool   `json:"auto_reminder_arrears"`
	AutoBilling         bool   `json:"auto_billing"`
	// ReminderDaysBefore is stored for a future automated billing scheduler;
	// nothing consults it yet.
	ReminderDaysBefore int    `json:"reminder_days_before"`
	PaymentTemplate    string `json:"payment_template"`
	ArrearsTemplate    string `json:"arrears_template"`
	BillingTemplate    string `json:"billing_template"`
}

// Message is a rendered WhatsApp message plus its wa.me deep link. The
// service builds links; actually opening them is up to the client.
type Message struct {
	TenantID uint   `json:"tenant_id"`
	Phone    string `json:"phone"`
	Body     string `json:"body"`
	Link     string `json:"link"`
}

// WhatsAppService renders the notification messages. Defaults come in
// explicitly at construction time rather than being read from ambient state.
type WhatsAppService struct {
	db       *gorm.DB
	defaults WhatsAppSettings
}

func NewWhatsAppService(db *gorm.DB, cfg config.WhatsAppConfig) *WhatsAppService {
	return &WhatsAppService{
		db: db,
		defaults: WhatsAppSettings{
			AutoConfirmPayment:  cfg.AutoConfirmPayment,
			AutoReminderArrears: cfg.AutoReminderArrears,
			AutoBilling:         cfg.AutoBilling,
			ReminderDaysBefore:  cfg.ReminderDaysBefore,
			PaymentTemplate:     cfg.PaymentTemplate,
			ArrearsTemplate:     cfg.ArrearsTemplate,
			BillingTemplate:     cfg.BillingTemplate,
		},
	}
}

// Settings returns the stored settings, or the defaults when nothing is
// stored yet.
func (s *WhatsAppService) Settings(ctx context.Context) (*WhatsAppSettings, error) {
	var row models.Setting
	err := s.db.WithContext(ctx).Where("key = ?", models.SettingKeyWhatsApp).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings := s.defaults
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}

	settings := s.defaults
	if err := json.Unmarshal(row.Value, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings stores operator overrides.
func (s *WhatsAppService) SaveSettings(ctx context.Context, settings *WhatsAppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	var row models.Setting
	err = s.db.WithContext(ctx).Where("key = ?", models.SettingKeyWhatsApp).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.Setting{
			Key:   models.SettingKeyWhatsApp,
			Value: datatypes.JSON(data),
		}
		return s.db.WithContext(ctx).Create(&row).Error
	}
	if err != nil {
		return err
	}

	row.Value = datatypes.JSON(data)
	return s.db.WithContext(ctx).Save(&row).Error
}

// PaymentConfirmation renders the receipt confirmation for a recorded
// payment.
func (s *WhatsAppService) PaymentConfirmation(ctx context.Context, tenant *models.Tenant, payment *models.Payment) (*Message, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.AutoConfirmPayment {
		return nil, ErrAutomationDisabled
	}

	return s.build(tenant, settings.PaymentTemplate, map[string]string{
		"nama":     tenant.Name,
		"kamar":    tenant.RoomNumber,
		"periode":  fmt.Sprintf("%d/%d", payment.PeriodMonth, payment.PeriodYear),
		"jumlah":   format.FormatCurrency(payment.PaymentAmount),
		"kwitansi": payment.ReceiptNumber,
	})
}

// ArrearsReminder renders the arrears nudge.
func (s *WhatsAppService) ArrearsReminder(ctx context.Context, tenant *models.Tenant, arrears int64) (*Message, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.AutoReminderArrears {
		return nil, ErrAutomationDisabled
	}

	return s.build(tenant, settings.ArrearsTemplate, map[string]string{
		"nama":      tenant.Name,
		"kamar":     tenant.RoomNumber,
		"tunggakan": format.FormatCurrency(arrears),
	})
}

// BillingReminder renders the due-date reminder for one billing month.
func (s *WhatsAppService) BillingReminder(ctx context.Context, tenant *models.Tenant, amount int64, month, year int) (*Message, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.AutoBilling {
		return nil, ErrAutomationDisabled
	}

	return s.build(tenant, settings.BillingTemplate, map[string]string{
		"nama":   tenant.Name,
		"kamar":  tenant.RoomNumber,
		"jumlah": format.FormatCurrency(amount),
		"bulan":  format.FormatPeriod(month, year),
	})
}

func (s *WhatsAppService) build(tenant *models.Tenant, template string, replacements map[string]string) (*Message, error) {
	if tenant.Phone == nil || *tenant.Phone == "" {
		return nil, ErrNoPhoneNumber
	}

	body := RenderTemplate(template, replacements)
	phone := NormalizePhone(*tenant.Phone)

	return &Message{
		TenantID: tenant.ID,
		Phone:    phone,
		Body:     body,
		Link:     fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(body)),
	}, nil
}

// RenderTemplate substitutes {placeholder} occurrences.
func RenderTemplate(template string, replacements map[string]string) string {
	result := template
	for key, value := range replacements {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}
	return result
}

// NormalizePhone strips formatting and rewrites the leading national zero to
// the 62 country code, the form wa.me expects.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	normalized := digits.String()
	if strings.HasPrefix(normalized, "0") {
		normalized = "62" + normalized[1:]
	}
	return normalized
}
