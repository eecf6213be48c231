package domain

import "github.com/shopspring/decimal"

// SettlementType is the closed set of wallet transaction kinds the
// settlement engine can post.
type SettlementType string

const (
	SettlementDeposit    SettlementType = "DEPOSIT"
	SettlementWithdrawal SettlementType = "WITHDRAWAL"
	SettlementSettlement SettlementType = "SETTLEMENT"
	SettlementEarning    SettlementType = "EARNING"
	SettlementRefund     SettlementType = "REFUND"
)

// RelatedItemRef points a settlement at one parcel of one booking.
type RelatedItemRef struct {
	BookingID string `json:"bookingID"`
	ItemID    string `json:"itemID"`
}

// SettlementRequest describes one wallet transaction to be turned into a
// journal entry preview.
type SettlementRequest struct {
	TransactionType SettlementType   `json:"transactionType"`
	UserID          string           `json:"userID"`
	UserName        string           `json:"userName"`
	UserRole        WalletRole       `json:"userRole"`
	Amount          decimal.Decimal  `json:"amount"`
	CurrencyCode    string           `json:"currencyCode"`
	RelatedItems    []RelatedItemRef `json:"relatedItems,omitempty"`
	BankAccountID   string           `json:"bankAccountID"`
	Description     string           `json:"description,omitempty"`
	BranchID        string           `json:"branchID"`
}

// SettlementContext is the consistent in-memory snapshot a preview is
// computed against. The caller loads it in full before invoking the
// builder; the builder itself performs no I/O.
type SettlementContext struct {
	Accounts        []Account
	Settings        LedgerSettings
	Employees       []Employee
	CommissionRules []CommissionRule
	Bookings        []Booking
	Currencies      []Currency
}

// Employee returns the employee with the given ID, if present.
func (c SettlementContext) Employee(employeeID string) (Employee, bool) {
	for _, e := range c.Employees {
		if e.EmployeeID == employeeID {
			return e, true
		}
	}
	return Employee{}, false
}

// Booking returns the booking with the given ID, if present.
func (c SettlementContext) Booking(bookingID string) (Booking, bool) {
	for _, b := range c.Bookings {
		if b.BookingID == bookingID {
			return b, true
		}
	}
	return Booking{}, false
}

// Account returns the account with the given ID, if present.
func (c SettlementContext) Account(accountID string) (Account, bool) {
	for _, a := range c.Accounts {
		if a.AccountID == accountID {
			return a, true
		}
	}
	return Account{}, false
}

// CurrencyRate returns the configured exchange rate for a currency code
// and whether the currency is configured at all.
func (c SettlementContext) CurrencyRate(code string) (decimal.Decimal, bool) {
	for _, cur := range c.Currencies {
		if cur.CurrencyCode == code {
			return cur.ExchangeRate, true
		}
	}
	return decimal.Zero, false
}

// SettlementPreviewResult is the fully-formed, line-by-line journal entry
// preview for one settlement request. A non-empty Errors list always
// forces IsValid to false.
type SettlementPreviewResult struct {
	IsValid     bool               `json:"isValid"`
	TotalDebit  decimal.Decimal    `json:"totalDebit"`
	TotalCredit decimal.Decimal    `json:"totalCredit"`
	Difference  decimal.Decimal    `json:"difference"`
	Lines       []JournalEntryLine `json:"lines"`
	Errors      []string           `json:"errors"`
	Warnings    []string           `json:"warnings"`
}
