package dto

import "github.com/dsadvance/parcel_ledger_app/internal/core/domain"

// UpdateLedgerSettingsRequest defines the payload for replacing the
// named account-role mappings.
type UpdateLedgerSettingsRequest struct {
	DriverWalletUSDAccountID   string `json:"driverWalletUSDAccountID"`
	DriverWalletKHRAccountID   string `json:"driverWalletKHRAccountID"`
	CustomerWalletUSDAccountID string `json:"customerWalletUSDAccountID"`
	CustomerWalletKHRAccountID string `json:"customerWalletKHRAccountID"`
	DefaultWalletAccountID     string `json:"defaultWalletAccountID"`
	DeliveryRevenueAccountID   string `json:"deliveryRevenueAccountID"`
	CommissionExpenseAccountID string `json:"commissionExpenseAccountID"`
	RetainedEarningsAccountID  string `json:"retainedEarningsAccountID"`
	DefaultBankAccountID       string `json:"defaultBankAccountID"`
}

// ToLedgerSettings converts the request into domain settings.
func (in UpdateLedgerSettingsRequest) ToLedgerSettings() domain.LedgerSettings {
	return domain.LedgerSettings{
		DriverWalletUSDAccountID:   in.DriverWalletUSDAccountID,
		DriverWalletKHRAccountID:   in.DriverWalletKHRAccountID,
		CustomerWalletUSDAccountID: in.CustomerWalletUSDAccountID,
		CustomerWalletKHRAccountID: in.CustomerWalletKHRAccountID,
		DefaultWalletAccountID:     in.DefaultWalletAccountID,
		DeliveryRevenueAccountID:   in.DeliveryRevenueAccountID,
		CommissionExpenseAccountID: in.CommissionExpenseAccountID,
		RetainedEarningsAccountID:  in.RetainedEarningsAccountID,
		DefaultBankAccountID:       in.DefaultBankAccountID,
	}
}
