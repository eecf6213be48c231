package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/utils/accounting"
)

// GenerateTrialBalance produces one row per account with debit/credit
// totals accumulated from the given entries, rolled up the account
// hierarchy. Parents are processed deepest-first so each child's totals
// (already including grandchildren) are added into its immediate parent
// exactly once; a parent row therefore holds the sum of its entire
// subtree. Rows whose debit and credit are both below the residual
// threshold are dropped unless the account is a header. Rows are sorted
// by account code.
//
// Summing only Depth == 0 rows yields the same totals as summing leaves;
// summing all non-header rows double-counts wherever a parent is not
// flagged as a header.
func GenerateTrialBalance(accounts []domain.Account, entries []domain.JournalEntry, branchID string) []domain.TrialBalanceRow {
	byID := domain.AccountsByID(accounts)

	rows := make(map[string]*domain.TrialBalanceRow, len(accounts))
	for _, acc := range accounts {
		rows[acc.AccountID] = &domain.TrialBalanceRow{
			AccountID:       acc.AccountID,
			AccountCode:     acc.Code,
			AccountName:     acc.Name,
			AccountType:     acc.AccountType,
			Debit:           decimal.Zero,
			Credit:          decimal.Zero,
			IsHeader:        acc.IsHeader,
			ParentAccountID: acc.ParentAccountID,
			Depth:           domain.AccountDepth(acc.AccountID, byID),
		}
	}

	for _, entry := range entries {
		if branchID != "" && entry.BranchID != branchID {
			continue
		}
		if !entry.IncludedInReports() {
			continue
		}
		for _, line := range entry.Lines {
			row, ok := rows[line.AccountID]
			if !ok {
				// Orphaned line; the health scan reports these.
				continue
			}
			row.Debit = row.Debit.Add(line.Debit)
			row.Credit = row.Credit.Add(line.Credit)
		}
	}

	// Roll up deepest-first so every subtree is complete before it is
	// added into its parent.
	ordered := make([]*domain.TrialBalanceRow, 0, len(rows))
	for _, row := range rows {
		ordered = append(ordered, row)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Depth != ordered[j].Depth {
			return ordered[i].Depth > ordered[j].Depth
		}
		return ordered[i].AccountCode < ordered[j].AccountCode
	})
	for _, row := range ordered {
		if row.ParentAccountID == "" || row.ParentAccountID == row.AccountID {
			continue
		}
		parent, ok := rows[row.ParentAccountID]
		if !ok {
			continue
		}
		parent.Debit = parent.Debit.Add(row.Debit)
		parent.Credit = parent.Credit.Add(row.Credit)
	}

	result := make([]domain.TrialBalanceRow, 0, len(ordered))
	for _, row := range ordered {
		if !row.IsHeader && accounting.IsResidual(row.Debit) && accounting.IsResidual(row.Credit) {
			continue
		}
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AccountCode < result[j].AccountCode
	})
	return result
}

// GenerateGeneralLedger returns the date-ordered postings against one
// account with a running signed balance (debit positive). An entry with
// several lines on the same account yields one row per line, not per
// entry, so split postings stay visible. DisplayedBalance starts equal to
// Balance; callers invert it for credit-normal account types.
func GenerateGeneralLedger(accountID string, entries []domain.JournalEntry) []domain.GeneralLedgerLine {
	sorted := make([]domain.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var lines []domain.GeneralLedgerLine
	balance := decimal.Zero
	for _, entry := range sorted {
		if !entry.IncludedInReports() {
			continue
		}
		for _, line := range entry.Lines {
			if line.AccountID != accountID {
				continue
			}
			balance = balance.Add(line.Debit).Sub(line.Credit)
			description := line.Description
			if description == "" {
				description = entry.Description
			}
			lines = append(lines, domain.GeneralLedgerLine{
				JournalID:        entry.JournalID,
				Date:             entry.Date,
				Description:      description,
				Reference:        entry.Reference,
				Debit:            line.Debit,
				Credit:           line.Credit,
				Balance:          balance,
				DisplayedBalance: balance,
			})
		}
	}
	return lines
}

// GeneratePeriodClosingEntry zeroes out every Revenue and Expense balance
// accumulated in [start, end] and posts the aggregate plug to the
// retained-earnings account: a positive plug (net credit needed) is profit
// credited to retained earnings, a negative one a loss debited from it.
// Returns nil when the period holds no qualifying transactions or every
// P&L balance is already zero.
func GeneratePeriodClosingEntry(start, end time.Time, accounts []domain.Account, entries []domain.JournalEntry, retainedEarningsAccountID, branchID string) *domain.JournalEntry {
	byID := domain.AccountsByID(accounts)

	balances := make(map[string]decimal.Decimal)
	qualifying := false
	for _, entry := range entries {
		if entry.IsClosingEntry || !entry.IncludedInReports() {
			continue
		}
		if branchID != "" && entry.BranchID != branchID {
			continue
		}
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}
		qualifying = true
		for _, line := range entry.Lines {
			acc, ok := byID[line.AccountID]
			if !ok {
				continue
			}
			if acc.AccountType != domain.Revenue && acc.AccountType != domain.Expense {
				continue
			}
			balances[line.AccountID] = balances[line.AccountID].Add(line.Debit).Sub(line.Credit)
		}
	}
	if !qualifying {
		return nil
	}

	accountIDs := make([]string, 0, len(balances))
	for id := range balances {
		accountIDs = append(accountIDs, id)
	}
	sort.Slice(accountIDs, func(i, j int) bool {
		return byID[accountIDs[i]].Code < byID[accountIDs[j]].Code
	})

	var closingLines []domain.JournalEntryLine
	zeroDebits := decimal.Zero
	zeroCredits := decimal.Zero
	for _, id := range accountIDs {
		bal := balances[id]
		if accounting.IsResidual(bal) {
			continue
		}
		line := domain.JournalEntryLine{
			AccountID:   id,
			Description: "Close " + byID[id].Name,
		}
		if bal.IsPositive() {
			line.Credit = bal
			zeroCredits = zeroCredits.Add(bal)
		} else {
			line.Debit = bal.Neg()
			zeroDebits = zeroDebits.Add(bal.Neg())
		}
		closingLines = append(closingLines, line)
	}
	if len(closingLines) == 0 {
		return nil
	}

	plug := zeroDebits.Sub(zeroCredits)
	if !plug.IsZero() {
		reLine := domain.JournalEntryLine{
			AccountID:   retainedEarningsAccountID,
			Description: "Retained earnings",
		}
		if plug.IsPositive() {
			// Net debit surplus: the period made a profit.
			reLine.Credit = plug
		} else {
			reLine.Debit = plug.Neg()
		}
		closingLines = append(closingLines, reLine)
	}

	return &domain.JournalEntry{
		Date:           end,
		Description:    "Period closing " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02"),
		BranchID:       branchID,
		CurrencyCode:   domain.CurrencyUSD,
		ExchangeRate:   decimal.NewFromInt(1),
		Lines:          closingLines,
		Status:         domain.StatusPosted,
		IsClosingEntry: true,
	}
}

// CalculateNetIncome derives net income from the trial balance, summing
// only Depth == 0 rows: credit-over-debit for Revenue plus
// debit-over-credit for Expense.
func CalculateNetIncome(accounts []domain.Account, entries []domain.JournalEntry, branchID string) decimal.Decimal {
	net := decimal.Zero
	for _, row := range GenerateTrialBalance(accounts, entries, branchID) {
		if row.Depth != 0 {
			continue
		}
		switch row.AccountType {
		case domain.Revenue:
			net = net.Add(row.Credit.Sub(row.Debit))
		case domain.Expense:
			net = net.Sub(row.Debit.Sub(row.Credit))
		}
	}
	return net
}
