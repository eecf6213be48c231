package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
)

// settingsService manages the named-account mappings used by the
// settlement engine and the period close.
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
	accountRepo  portsrepo.AccountRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository, accountRepo portsrepo.AccountRepository) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo, accountRepo: accountRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetLedgerSettings returns the current settings row. An unconfigured
// installation gets an empty mapping, not an error.
func (s *settingsService) GetLedgerSettings(ctx context.Context) (*domain.LedgerSettings, error) {
	settings, err := s.settingsRepo.GetLedgerSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.LedgerSettings{}, nil
		}
		return nil, fmt.Errorf("failed to load ledger settings: %w", err)
	}
	return settings, nil
}

// UpdateLedgerSettings replaces the mapping. Every non-empty account
// reference must point at an existing account.
func (s *settingsService) UpdateLedgerSettings(ctx context.Context, settings domain.LedgerSettings, userID string) (*domain.LedgerSettings, error) {
	refs := map[string]string{
		"driverWalletUSDAccountID":   settings.DriverWalletUSDAccountID,
		"driverWalletKHRAccountID":   settings.DriverWalletKHRAccountID,
		"customerWalletUSDAccountID": settings.CustomerWalletUSDAccountID,
		"customerWalletKHRAccountID": settings.CustomerWalletKHRAccountID,
		"defaultWalletAccountID":     settings.DefaultWalletAccountID,
		"deliveryRevenueAccountID":   settings.DeliveryRevenueAccountID,
		"commissionExpenseAccountID": settings.CommissionExpenseAccountID,
		"retainedEarningsAccountID":  settings.RetainedEarningsAccountID,
		"defaultBankAccountID":       settings.DefaultBankAccountID,
	}
	for field, id := range refs {
		if id == "" {
			continue
		}
		if _, err := s.accountRepo.FindAccountByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s references unknown account %s", apperrors.ErrValidation, field, id)
			}
			return nil, fmt.Errorf("failed to check account %s: %w", id, err)
		}
	}

	now := time.Now().UTC()
	settings.LastUpdatedAt = now
	settings.LastUpdatedBy = userID
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
		settings.CreatedBy = userID
	}

	if err := s.settingsRepo.SaveLedgerSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save ledger settings")
		return nil, fmt.Errorf("failed to save ledger settings: %w", err)
	}
	s.LogInfo(ctx, "Ledger settings updated")
	return &settings, nil
}
