package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a node in the chart-of-accounts tree.
// This is the primary representation used by services.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (e.g., UUID)
	Code            string      `json:"code"`            // Stable external identifier; upsert key
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	SubType         string      `json:"subType"`         // Optional finer classification
	CurrencyCode    string      `json:"currencyCode"`    // Optional account-level currency
	IsHeader        bool        `json:"isHeader"`        // Aggregation-only node
	ParentAccountID string      `json:"parentAccountID"` // Nullable, self-referencing
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// maxAccountDepth bounds the parent walk so a corrupted hierarchy can
// never hang a report.
const maxAccountDepth = 32

// AccountDepth walks ParentAccountID until it terminates, returning the
// number of hops. A missing parent, a self-reference, or a revisited node
// terminates the walk; depth accumulated up to that point is returned.
func AccountDepth(accountID string, byID map[string]Account) int {
	depth := 0
	visited := map[string]bool{}
	current := accountID
	for depth < maxAccountDepth {
		acc, ok := byID[current]
		if !ok || acc.ParentAccountID == "" || acc.ParentAccountID == current {
			return depth
		}
		if visited[current] {
			return depth
		}
		visited[current] = true
		current = acc.ParentAccountID
		depth++
	}
	return depth
}

// AccountsByID indexes a slice of accounts by AccountID.
func AccountsByID(accounts []Account) map[string]Account {
	byID := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	return byID
}
