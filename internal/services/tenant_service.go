package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"

	"gorm.io/gorm"
)

// TenantService handles tenant records.
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// CreateTenantParams are the move-in details.
type CreateTenantParams struct {
	Name        string
	RoomNumber  string
	Phone       string
	Email       string
	CheckinDate time.Time
	MonthlyRent int64
}

// UpdateTenantParams carries explicit edits; nil fields are left unchanged.
// Editing MonthlyRent retroactively changes computed arrears for every
// elapsed month since check-in (rent is not historized).
type UpdateTenantParams struct {
	Name        *string
	RoomNumber  *string
	Phone       *string
	Email       *string
	CheckinDate *time.Time
	MonthlyRent *int64
}

func (s *TenantService) validateCreateParams(params CreateTenantParams) error {
	if params.Name == "" {
		return errors.New("Nama penghuni wajib diisi")
	}
	if params.RoomNumber == "" {
		return errors.New("Nomor kamar wajib diisi")
	}
	if params.MonthlyRent <= 0 {
		return errors.New("Tarif sewa bulanan harus lebih dari nol")
	}
	if params.CheckinDate.IsZero() {
		return errors.New("Tanggal check-in wajib diisi")
	}
	return nil
}

// Create registers a tenant at move-in.
func (s *TenantService) Create(ctx context.Context, params CreateTenantParams) (*models.Tenant, error) {
	if err := s.validateCreateParams(params); err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		Name:        params.Name,
		RoomNumber:  params.RoomNumber,
		CheckinDate: params.CheckinDate,
		MonthlyRent: params.MonthlyRent,
	}
	if params.Phone != "" {
		tenant.Phone = &params.Phone
	}
	if params.Email != "" {
		tenant.Email = &params.Email
	}

	err := s.db.WithContext(ctx).Create(tenant).Error
	return tenant, err
}

// GetByID loads one tenant.
func (s *TenantService) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.WithContext(ctx).First(&tenant, id).Error
	return &tenant, err
}

// GetAll returns every tenant ordered by room number, the way the payment
// form lists them.
func (s *TenantService) GetAll(ctx context.Context) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	err := s.db.WithContext(ctx).Order("room_number").Find(&tenants).Error
	return tenants, err
}

// GetWithFiltersAndPage searches tenants by keyword with pagination.
func (s *TenantService) GetWithFiltersAndPage(ctx context.Context, keyword string, page, pageSize int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Tenant{})
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name ILIKE ? OR room_number ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("room_number").Offset(offset).Limit(pageSize).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// Update applies explicit edits to a tenant record.
func (s *TenantService) Update(ctx context.Context, id uint, params UpdateTenantParams) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if params.Name != nil {
		if *params.Name == "" {
			return nil, errors.New("Nama penghuni wajib diisi")
		}
		updates["name"] = *params.Name
	}
	if params.RoomNumber != nil {
		if *params.RoomNumber == "" {
			return nil, errors.New("Nomor kamar wajib diisi")
		}
		updates["room_number"] = *params.RoomNumber
	}
	if params.Phone != nil {
		updates["phone"] = *params.Phone
	}
	if params.Email != nil {
		updates["email"] = *params.Email
	}
	if params.CheckinDate != nil {
		updates["checkin_date"] = *params.CheckinDate
	}
	if params.MonthlyRent != nil {
		if *params.MonthlyRent <= 0 {
			return nil, errors.New("Tarif sewa bulanan harus lebih dari nol")
		}
		updates["monthly_rent"] = *params.MonthlyRent
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&tenant).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &tenant, nil
}

// Delete removes a tenant and the derived rows that reference it. Explicit
// destructive operator action; payment history goes with the tenant.
func (s *TenantService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.First(&tenant, id).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.TenantBalance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tenant).Error
	})
}
