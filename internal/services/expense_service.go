package services

import (
	"context"
	"errors"
	"time"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"

	"gorm.io/gorm"
)

// ExpenseService handles the outgoing-money ledger.
type ExpenseService struct {
	db *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// CreateExpenseParams describes one ledger entry.
type CreateExpenseParams struct {
	Category    string
	Description string
	Amount      int64
	ExpenseDate time.Time
	Notes       string
}

func (s *ExpenseService) validate(params CreateExpenseParams) error {
	if !models.ValidExpenseCategory(params.Category) {
		return errors.New("Kategori pengeluaran tidak valid")
	}
	if params.Description == "" {
		return errors.New("Deskripsi pengeluaran wajib diisi")
	}
	if params.Amount <= 0 {
		return errors.New("Jumlah pengeluaran harus lebih dari nol")
	}
	if params.ExpenseDate.IsZero() {
		return errors.New("Tanggal pengeluaran wajib diisi")
	}
	return nil
}

// Create records an expense.
func (s *ExpenseService) Create(ctx context.Context, params CreateExpenseParams) (*models.Expense, error) {
	if err := s.validate(params); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Category:    params.Category,
		Description: params.Description,
		Amount:      params.Amount,
		ExpenseDate: params.ExpenseDate,
	}
	if params.Notes != "" {
		expense.Notes = &params.Notes
	}

	err := s.db.WithContext(ctx).Create(expense).Error
	return expense, err
}

// GetByID loads one expense.
func (s *ExpenseService) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).First(&expense, id).Error
	return &expense, err
}

// GetWithFiltersAndPage lists expenses newest first, optionally filtered by
// category, month and year.
func (s *ExpenseService) GetWithFiltersAndPage(ctx context.Context, category string, month, year, page, pageSize int) ([]*models.Expense, int64, error) {
	var expenses []*models.Expense
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Expense{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if month != 0 {
		query = query.Where("EXTRACT(MONTH FROM expense_date) = ?", month)
	}
	if year != 0 {
		query = query.Where("EXTRACT(YEAR FROM expense_date) = ?", year)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("expense_date DESC, id DESC").Offset(offset).Limit(pageSize).Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// Update rewrites an expense entry.
func (s *ExpenseService) Update(ctx context.Context, id uint, params CreateExpenseParams) (*models.Expense, error) {
	if err := s.validate(params); err != nil {
		return nil, err
	}

	var expense models.Expense
	if err := s.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, err
	}

	expense.Category = params.Category
	expense.Description = params.Description
	expense.Amount = params.Amount
	expense.ExpenseDate = params.ExpenseDate
	if params.Notes != "" {
		expense.Notes = &params.Notes
	} else {
		expense.Notes = nil
	}

	err := s.db.WithContext(ctx).Save(&expense).Error
	return &expense, err
}

// Delete removes an expense entry.
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
