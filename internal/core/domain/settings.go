package domain

import "fmt"

// WalletRole identifies whose wallet-liability account a posting targets.
type WalletRole string

const (
	RoleCustomer WalletRole = "customer"
	RoleDriver   WalletRole = "driver"
)

// LedgerSettings maps the named account roles the settlement engine posts
// against. Every field is an AccountID. Fields may be empty when the
// installation has not configured them; resolution then falls back to
// DefaultWalletAccountID where one applies, and otherwise errors.
type LedgerSettings struct {
	DriverWalletUSDAccountID   string `json:"driverWalletUSDAccountID,omitempty"`
	DriverWalletKHRAccountID   string `json:"driverWalletKHRAccountID,omitempty"`
	CustomerWalletUSDAccountID string `json:"customerWalletUSDAccountID,omitempty"`
	CustomerWalletKHRAccountID string `json:"customerWalletKHRAccountID,omitempty"`
	DefaultWalletAccountID     string `json:"defaultWalletAccountID,omitempty"`
	DeliveryRevenueAccountID   string `json:"deliveryRevenueAccountID,omitempty"`
	CommissionExpenseAccountID string `json:"commissionExpenseAccountID,omitempty"`
	RetainedEarningsAccountID  string `json:"retainedEarningsAccountID,omitempty"`
	DefaultBankAccountID       string `json:"defaultBankAccountID,omitempty"`
	AuditFields
}

// WalletAccount resolves the wallet-liability account for a role/currency
// pair, falling back to the generic default wallet account.
func (s LedgerSettings) WalletAccount(role WalletRole, currencyCode string) (string, error) {
	var id string
	switch role {
	case RoleDriver:
		if currencyCode == CurrencyKHR {
			id = s.DriverWalletKHRAccountID
		} else {
			id = s.DriverWalletUSDAccountID
		}
	case RoleCustomer:
		if currencyCode == CurrencyKHR {
			id = s.CustomerWalletKHRAccountID
		} else {
			id = s.CustomerWalletUSDAccountID
		}
	default:
		return "", fmt.Errorf("unknown wallet role %q", role)
	}
	if id == "" {
		id = s.DefaultWalletAccountID
	}
	if id == "" {
		return "", fmt.Errorf("no wallet account configured for %s %s", role, currencyCode)
	}
	return id, nil
}
