package database

import (
	"gorm.io/gorm"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/logger"
)

// Migrate runs schema migration and installs the balance procedures.
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Payment{},
		&models.TenantBalance{},
		&models.Expense{},
		&models.Setting{},
	)
	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	if err := InstallBalanceProcedures(DB); err != nil {
		appLogger.Errorf("Failed to create balance procedures: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}

// InstallBalanceProcedures installs the authoritative balance computation in
// the database. The SQL must stay in lockstep with the Go fallback in
// internal/services/balance.go: both compute the inclusive month count from
// check-in through the current month, multiply by the monthly rent, subtract
// everything ever paid and floor at zero.
func InstallBalanceProcedures(db *gorm.DB) error {
	calcFn := `
CREATE OR REPLACE FUNCTION calculate_outstanding_balance(p_tenant_id BIGINT)
RETURNS BIGINT AS $$
DECLARE
    v_checkin DATE;
    v_rent BIGINT;
    v_months INT;
    v_should_pay BIGINT;
    v_paid BIGINT;
BEGIN
    SELECT checkin_date, monthly_rent INTO v_checkin, v_rent
    FROM tenants WHERE id = p_tenant_id;
    IF NOT FOUND THEN
        RETURN 0;
    END IF;

    v_months := (EXTRACT(YEAR FROM CURRENT_DATE)::INT - EXTRACT(YEAR FROM v_checkin)::INT) * 12
              + (EXTRACT(MONTH FROM CURRENT_DATE)::INT - EXTRACT(MONTH FROM v_checkin)::INT) + 1;
    IF v_months < 1 THEN
        RETURN 0;
    END IF;

    v_should_pay := v_rent * v_months;

    SELECT COALESCE(SUM(payment_amount), 0) INTO v_paid
    FROM payments WHERE tenant_id = p_tenant_id;

    RETURN GREATEST(v_should_pay - v_paid, 0);
END;
$$ LANGUAGE plpgsql;
`
	if err := db.Exec(calcFn).Error; err != nil {
		return err
	}

	updateFn := `
CREATE OR REPLACE FUNCTION update_tenant_balance(p_tenant_id BIGINT)
RETURNS VOID AS $$
DECLARE
    v_checkin DATE;
    v_balance BIGINT;
    v_last_payment DATE;
    v_next_due DATE;
BEGIN
    SELECT checkin_date INTO v_checkin FROM tenants WHERE id = p_tenant_id;
    IF NOT FOUND THEN
        RETURN;
    END IF;

    v_balance := calculate_outstanding_balance(p_tenant_id);

    SELECT MAX(payment_date) INTO v_last_payment
    FROM payments WHERE tenant_id = p_tenant_id;

    -- anniversary day of check-in in next month, clamped to month length
    v_next_due := LEAST(
        date_trunc('month', CURRENT_DATE) + INTERVAL '1 month'
            + (EXTRACT(DAY FROM v_checkin)::INT - 1) * INTERVAL '1 day',
        date_trunc('month', CURRENT_DATE) + INTERVAL '2 month' - INTERVAL '1 day'
    )::DATE;

    INSERT INTO tenant_balances (tenant_id, current_balance, last_payment_date, next_due_date, created_at, updated_at)
    VALUES (p_tenant_id, v_balance, v_last_payment, v_next_due, NOW(), NOW())
    ON CONFLICT (tenant_id) DO UPDATE SET
        current_balance = EXCLUDED.current_balance,
        last_payment_date = EXCLUDED.last_payment_date,
        next_due_date = EXCLUDED.next_due_date,
        updated_at = NOW();
END;
$$ LANGUAGE plpgsql;
`
	return db.Exec(updateFn).Error
}
