package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/utils/accounting"
)

var ErrInvalidPreview = errors.New("settlement preview is not valid")

// SettlementItemBreakdown is one resolved (booking, item) pair with every
// amount already expressed in the settlement currency.
type SettlementItemBreakdown struct {
	BookingID          string
	ItemID             string
	Fee                decimal.Decimal
	COD                decimal.Decimal
	TaxiFee            decimal.Decimal
	PickupCommission   decimal.Decimal
	DeliveryCommission decimal.Decimal
	PickupDriverID     string
	DeliveryDriverID   string
}

// SettlementTotals is the aggregation of a driver settlement's item
// breakdowns. CODLiability is the customer net payable: COD minus fee
// minus taxi fee, summed across items. The taxi fee is a pass-through
// memo adjustment: it reduces CODLiability exactly once per item and
// never becomes a ledger line of its own.
type SettlementTotals struct {
	CODLiability       decimal.Decimal
	GrossRevenue       decimal.Decimal
	CommissionExpense  decimal.Decimal
	CommissionByDriver map[string]decimal.Decimal
}

// AccumulateSettlement folds item breakdowns into settlement totals. A
// driver assigned to both pickup and delivery of the same item receives
// one accumulation per role, never two per role.
func AccumulateSettlement(items []SettlementItemBreakdown) SettlementTotals {
	totals := SettlementTotals{
		CODLiability:       decimal.Zero,
		GrossRevenue:       decimal.Zero,
		CommissionExpense:  decimal.Zero,
		CommissionByDriver: make(map[string]decimal.Decimal),
	}
	for _, it := range items {
		totals.CODLiability = totals.CODLiability.Add(it.COD.Sub(it.Fee).Sub(it.TaxiFee))
		totals.GrossRevenue = totals.GrossRevenue.Add(it.Fee)
		totals.CommissionExpense = totals.CommissionExpense.Add(it.PickupCommission).Add(it.DeliveryCommission)
		if it.PickupDriverID != "" && it.PickupCommission.IsPositive() {
			totals.CommissionByDriver[it.PickupDriverID] = totals.CommissionByDriver[it.PickupDriverID].Add(it.PickupCommission)
		}
		if it.DeliveryDriverID != "" && it.DeliveryCommission.IsPositive() {
			totals.CommissionByDriver[it.DeliveryDriverID] = totals.CommissionByDriver[it.DeliveryDriverID].Add(it.DeliveryCommission)
		}
	}
	return totals
}

// previewBuilder accumulates the lines, errors and warnings of one
// settlement preview.
type previewBuilder struct {
	req        domain.SettlementRequest
	sctx       domain.SettlementContext
	rate       decimal.Decimal // settlement currency units per base unit
	marketRate decimal.Decimal // KHR per USD, for fee/COD conversion
	lines      []domain.JournalEntryLine
	errors     []string
	warnings   []string
}

// BuildSettlementPreview constructs the line-by-line journal entry
// preview for one settlement request against a fully-loaded context. All
// problems are collected rather than thrown so the caller can display
// every issue at once; a non-empty error list forces IsValid false.
//
// Emitted line amounts are in the base currency; each line carries the
// settlement-currency amount and rate as its audit trail.
func BuildSettlementPreview(req domain.SettlementRequest, sctx domain.SettlementContext) domain.SettlementPreviewResult {
	b := &previewBuilder{req: req, sctx: sctx}

	b.rate = decimal.NewFromInt(1)
	if req.CurrencyCode != domain.CurrencyUSD {
		if rate, ok := sctx.CurrencyRate(req.CurrencyCode); ok && !rate.IsZero() {
			b.rate = rate
		} else {
			b.rate = accounting.DefaultKHRRate
		}
	}
	if rate, ok := sctx.CurrencyRate(domain.CurrencyKHR); ok && !rate.IsZero() {
		b.marketRate = rate
	} else {
		b.marketRate = accounting.DefaultKHRRate
	}

	if req.Amount.IsNegative() {
		b.addError("settlement amount must not be negative")
	}

	switch req.TransactionType {
	case domain.SettlementDeposit:
		b.buildDeposit()
	case domain.SettlementWithdrawal, domain.SettlementRefund:
		b.buildWithdrawal()
	case domain.SettlementEarning:
		b.buildEarning()
	case domain.SettlementSettlement:
		switch req.UserRole {
		case domain.RoleDriver:
			b.buildDriverSettlement()
		case domain.RoleCustomer:
			// A customer settlement is a net payout: same shape as a
			// withdrawal.
			b.buildWithdrawal()
		default:
			b.addError(fmt.Sprintf("unknown user role %q", req.UserRole))
		}
	default:
		b.addError(fmt.Sprintf("unknown transaction type %q", req.TransactionType))
	}

	return b.result()
}

func (b *previewBuilder) addError(msg string) {
	b.errors = append(b.errors, msg)
}

func (b *previewBuilder) addWarning(msg string) {
	b.warnings = append(b.warnings, msg)
}

// toBase converts a settlement-currency amount into the base currency at
// the request's resolved rate.
func (b *previewBuilder) toBase(amount decimal.Decimal) decimal.Decimal {
	if b.rate.Equal(decimal.NewFromInt(1)) {
		return accounting.Round2(amount)
	}
	return accounting.Round2(amount.Div(b.rate))
}

// appendDebit emits a debit line. amount is in the settlement currency.
func (b *previewBuilder) appendDebit(accountID string, amount decimal.Decimal, description string) {
	b.lines = append(b.lines, domain.JournalEntryLine{
		AccountID:        accountID,
		Debit:            b.toBase(amount),
		Credit:           decimal.Zero,
		Description:      description,
		OriginalAmount:   amount,
		OriginalCurrency: b.req.CurrencyCode,
		OriginalRate:     b.rate,
	})
}

// appendCredit emits a credit line. amount is in the settlement currency.
func (b *previewBuilder) appendCredit(accountID string, amount decimal.Decimal, description string) {
	b.lines = append(b.lines, domain.JournalEntryLine{
		AccountID:        accountID,
		Debit:            decimal.Zero,
		Credit:           b.toBase(amount),
		Description:      description,
		OriginalAmount:   amount,
		OriginalCurrency: b.req.CurrencyCode,
		OriginalRate:     b.rate,
	})
}

// bankAccountID resolves the cash account for the request, falling back
// to the configured default. An unresolvable bank account is an error.
func (b *previewBuilder) bankAccountID() (string, bool) {
	id := b.req.BankAccountID
	if id == "" {
		id = b.sctx.Settings.DefaultBankAccountID
	}
	if id == "" {
		b.addError("no bank account specified and no default bank account configured")
		return "", false
	}
	if _, ok := b.sctx.Account(id); !ok {
		b.addError(fmt.Sprintf("bank account %s not found", id))
		return "", false
	}
	return id, true
}

// walletAccountID resolves the wallet-liability account for a role in the
// settlement currency. An unresolvable wallet is an error.
func (b *previewBuilder) walletAccountID(role domain.WalletRole) (string, bool) {
	id, err := b.sctx.Settings.WalletAccount(role, b.req.CurrencyCode)
	if err != nil {
		b.addError(err.Error())
		return "", false
	}
	if _, ok := b.sctx.Account(id); !ok {
		b.addError(fmt.Sprintf("wallet account %s for %s not found", id, role))
		return "", false
	}
	return id, true
}

// buildDeposit: cash in, wallet liability up.
func (b *previewBuilder) buildDeposit() {
	bankID, bankOK := b.bankAccountID()
	walletID, walletOK := b.walletAccountID(b.req.UserRole)
	if !bankOK || !walletOK {
		return
	}
	b.appendDebit(bankID, b.req.Amount, "Deposit from "+b.req.UserName)
	b.appendCredit(walletID, b.req.Amount, "Wallet deposit "+b.req.UserName)
}

// buildWithdrawal: mirror of deposit, wallet liability down and cash out.
// Customer settlements and refunds share this shape.
func (b *previewBuilder) buildWithdrawal() {
	bankID, bankOK := b.bankAccountID()
	walletID, walletOK := b.walletAccountID(b.req.UserRole)
	if !bankOK || !walletOK {
		return
	}
	b.appendDebit(walletID, b.req.Amount, "Wallet payout "+b.req.UserName)
	b.appendCredit(bankID, b.req.Amount, "Payout to "+b.req.UserName)
}

// buildEarning: wallet top-up without cash movement. The commission
// expense is recognized and owed into the earner's wallet.
func (b *previewBuilder) buildEarning() {
	expenseID, expenseOK := b.commissionExpenseAccountID()
	walletID, walletOK := b.walletAccountID(b.req.UserRole)
	if !expenseOK || !walletOK {
		return
	}
	b.appendDebit(expenseID, b.req.Amount, "Earning for "+b.req.UserName)
	b.appendCredit(walletID, b.req.Amount, "Wallet earning "+b.req.UserName)
}

// commissionExpenseAccountID resolves the commission-expense account. An
// unconfigured mapping falls back to a name-based lookup with a warning;
// no candidate at all is an error.
func (b *previewBuilder) commissionExpenseAccountID() (string, bool) {
	id := b.sctx.Settings.CommissionExpenseAccountID
	if id != "" {
		if _, ok := b.sctx.Account(id); ok {
			return id, true
		}
		b.addError(fmt.Sprintf("commission expense account %s not found", id))
		return "", false
	}
	for _, acc := range b.sctx.Accounts {
		if acc.AccountType == domain.Expense && strings.Contains(strings.ToLower(acc.Name), "commission") {
			b.addWarning(fmt.Sprintf("commission expense account not configured; using %s (%s)", acc.Name, acc.AccountID))
			return acc.AccountID, true
		}
	}
	b.addError("no commission expense account configured")
	return "", false
}

// resolvedItem pairs one related-item reference with its booking and item
// records.
type resolvedItem struct {
	booking domain.Booking
	item    domain.BookingItem
}

// buildDriverSettlement splits a single cash receipt from a driver into
// COD liability, gross revenue, commission expense and per-driver
// commission payables, with a balancing plug against the settling
// driver's own wallet.
func (b *previewBuilder) buildDriverSettlement() {
	bankID, bankOK := b.bankAccountID()
	if !bankOK {
		return
	}

	resolved := make([]resolvedItem, 0, len(b.req.RelatedItems))
	for _, ref := range b.req.RelatedItems {
		booking, ok := b.sctx.Booking(ref.BookingID)
		if !ok {
			b.addError(fmt.Sprintf("booking %s not found", ref.BookingID))
			continue
		}
		item, ok := booking.Item(ref.ItemID)
		if !ok {
			b.addError(fmt.Sprintf("item %s not found on booking %s", ref.ItemID, ref.BookingID))
			continue
		}
		resolved = append(resolved, resolvedItem{booking: booking, item: item})
	}

	// Cash in: the full amount the driver hands over.
	b.appendDebit(bankID, b.req.Amount, "Settlement cash received from "+b.req.UserName)

	// Strict currency gate: a request may never mix COD currencies. No
	// partial posting beyond the cash debit is ever produced.
	mismatched := 0
	for _, ri := range resolved {
		if ri.item.CODCurrency != b.req.CurrencyCode {
			mismatched++
		}
	}
	if mismatched > 0 {
		b.addError(fmt.Sprintf("%d related item(s) have COD in a different currency than the settlement currency %s", mismatched, b.req.CurrencyCode))
		return
	}

	breakdowns := make([]SettlementItemBreakdown, 0, len(resolved))
	for _, ri := range resolved {
		breakdowns = append(breakdowns, b.breakdownItem(ri))
	}
	totals := AccumulateSettlement(breakdowns)

	if totals.CODLiability.IsPositive() {
		if customerWalletID, ok := b.walletAccountID(domain.RoleCustomer); ok {
			b.appendCredit(customerWalletID, totals.CODLiability, "COD payable to customers")
		}
	} else if totals.CODLiability.IsNegative() {
		// Fees exceeded COD collected: the customers owe the difference.
		if customerWalletID, ok := b.walletAccountID(domain.RoleCustomer); ok {
			b.appendDebit(customerWalletID, totals.CODLiability.Neg(), "COD shortfall recoverable from customers")
		}
	}

	if totals.GrossRevenue.IsPositive() {
		revenueID := b.sctx.Settings.DeliveryRevenueAccountID
		if revenueID == "" {
			b.addError("no delivery revenue account configured")
		} else if _, ok := b.sctx.Account(revenueID); !ok {
			b.addError(fmt.Sprintf("delivery revenue account %s not found", revenueID))
		} else {
			b.appendCredit(revenueID, totals.GrossRevenue, "Delivery fee revenue")
		}
	}

	if totals.CommissionExpense.IsPositive() {
		if expenseID, ok := b.commissionExpenseAccountID(); ok {
			b.appendDebit(expenseID, totals.CommissionExpense, "Driver commission expense")
		}
	}

	// One credit per earning driver, in a stable order.
	driverIDs := make([]string, 0, len(totals.CommissionByDriver))
	for id := range totals.CommissionByDriver {
		driverIDs = append(driverIDs, id)
	}
	sort.Strings(driverIDs)
	for _, driverID := range driverIDs {
		amount := totals.CommissionByDriver[driverID]
		emp, ok := b.sctx.Employee(driverID)
		if !ok || emp.Driver == nil || emp.Driver.WalletAccountID == "" {
			b.addError(fmt.Sprintf("driver %s has no wallet account for commission payout", driverID))
			continue
		}
		b.appendCredit(emp.Driver.WalletAccountID, amount, "Commission payable to "+emp.Name)
	}

	b.appendBalancingPlug()
}

// breakdownItem computes one item's amounts in the settlement currency.
// The delivery fee prefers the currency-tagged per-item value and falls
// back to prorating the booking's total fee across its items. Fee, COD
// and taxi fee are converted at the flat market rate.
func (b *previewBuilder) breakdownItem(ri resolvedItem) SettlementItemBreakdown {
	cur := b.req.CurrencyCode

	var fee decimal.Decimal
	if ri.item.DeliveryFee != nil {
		feeCurrency := ri.item.DeliveryFeeCurrency
		if feeCurrency == "" {
			feeCurrency = ri.booking.FeeCurrency
		}
		fee = accounting.Convert(*ri.item.DeliveryFee, feeCurrency, cur, b.marketRate)
	} else {
		itemCount := len(ri.booking.Items)
		if itemCount == 0 {
			itemCount = 1
		}
		prorated := accounting.Round2(ri.booking.TotalFee.Div(decimal.NewFromInt(int64(itemCount))))
		fee = accounting.Convert(prorated, ri.booking.FeeCurrency, cur, b.marketRate)
	}

	cod := accounting.Convert(ri.item.CODAmount, ri.item.CODCurrency, cur, b.marketRate)

	taxi := decimal.Zero
	if ri.item.TaxiFee.IsPositive() {
		taxiCurrency := ri.item.TaxiFeeCurrency
		if taxiCurrency == "" {
			taxiCurrency = ri.item.CODCurrency
		}
		taxi = accounting.Convert(ri.item.TaxiFee, taxiCurrency, cur, b.marketRate)
	}

	breakdown := SettlementItemBreakdown{
		BookingID:        ri.booking.BookingID,
		ItemID:           ri.item.ItemID,
		Fee:              fee,
		COD:              cod,
		TaxiFee:          taxi,
		PickupDriverID:   ri.booking.PickupDriverID,
		DeliveryDriverID: ri.booking.DeliveryDriverID,
	}

	feeBasis := fee
	if ri.booking.PickupDriverID != "" {
		if emp, ok := b.sctx.Employee(ri.booking.PickupDriverID); ok {
			breakdown.PickupCommission = CommissionAmount(emp, ri.booking, domain.CommissionPickup, b.sctx.CommissionRules, &feeBasis, cur, b.marketRate)
		}
	}
	if ri.booking.DeliveryDriverID != "" {
		if emp, ok := b.sctx.Employee(ri.booking.DeliveryDriverID); ok {
			breakdown.DeliveryCommission = CommissionAmount(emp, ri.booking, domain.CommissionDelivery, b.sctx.CommissionRules, &feeBasis, cur, b.marketRate)
		}
	}
	return breakdown
}

// appendBalancingPlug posts any residual debit/credit difference to the
// settling driver's own wallet: a net debit surplus is an overpayment
// credited to the driver, a net credit surplus a shortage debited from
// them. This also covers the degenerate zero-item settlement, which is a
// plain wallet movement.
func (b *previewBuilder) appendBalancingPlug() {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range b.lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	diff := totalDebit.Sub(totalCredit)
	if !diff.Abs().GreaterThan(accounting.BalanceTolerance) {
		return
	}

	emp, ok := b.sctx.Employee(b.req.UserID)
	if !ok || emp.Driver == nil || emp.Driver.WalletAccountID == "" {
		b.addError(fmt.Sprintf("settling driver %s has no wallet account for the balancing adjustment", b.req.UserID))
		return
	}
	// The plug is already a base-currency figure; emit it without another
	// conversion pass.
	if diff.IsPositive() {
		b.lines = append(b.lines, domain.JournalEntryLine{
			AccountID:        emp.Driver.WalletAccountID,
			Debit:            decimal.Zero,
			Credit:           diff,
			Description:      "Settlement overpayment credited to " + emp.Name,
			OriginalAmount:   diff.Mul(b.rate),
			OriginalCurrency: b.req.CurrencyCode,
			OriginalRate:     b.rate,
		})
	} else {
		b.lines = append(b.lines, domain.JournalEntryLine{
			AccountID:        emp.Driver.WalletAccountID,
			Debit:            diff.Neg(),
			Credit:           decimal.Zero,
			Description:      "Settlement shortage recovered from " + emp.Name,
			OriginalAmount:   diff.Neg().Mul(b.rate),
			OriginalCurrency: b.req.CurrencyCode,
			OriginalRate:     b.rate,
		})
	}
}

// result sums the emitted lines and finalizes validity.
func (b *previewBuilder) result() domain.SettlementPreviewResult {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range b.lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return domain.SettlementPreviewResult{
		IsValid:     len(b.errors) == 0 && accounting.WithinTolerance(totalDebit, totalCredit),
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Difference:  totalDebit.Sub(totalCredit),
		Lines:       b.lines,
		Errors:      b.errors,
		Warnings:    b.warnings,
	}
}

// settlementService loads the settlement context from the repositories
// and delegates to the pure builder; it also materializes valid previews
// into posted journal entries.
type settlementService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	journalRepo  portsrepo.JournalRepository
	settingsRepo portsrepo.SettingsRepository
	employeeRepo portsrepo.EmployeeRepository
	ruleRepo     portsrepo.CommissionRuleRepository
	bookingRepo  portsrepo.BookingRepository
	currencyRepo portsrepo.CurrencyRepository
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(repos portsrepo.RepositoryProvider) portssvc.SettlementSvcFacade {
	return &settlementService{
		accountRepo:  repos.AccountRepo,
		journalRepo:  repos.JournalRepo,
		settingsRepo: repos.SettingsRepo,
		employeeRepo: repos.EmployeeRepo,
		ruleRepo:     repos.CommissionRepo,
		bookingRepo:  repos.BookingRepo,
		currencyRepo: repos.CurrencyRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// loadContext gathers the consistent snapshot one preview is computed
// against. Everything is fetched up front; the builder itself never
// touches a repository.
func (s *settlementService) loadContext(ctx context.Context, req domain.SettlementRequest) (domain.SettlementContext, error) {
	var sctx domain.SettlementContext

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return sctx, fmt.Errorf("failed to list accounts: %w", err)
	}
	settings, err := s.settingsRepo.GetLedgerSettings(ctx)
	if err != nil {
		return sctx, fmt.Errorf("failed to load ledger settings: %w", err)
	}
	employees, err := s.employeeRepo.ListEmployees(ctx)
	if err != nil {
		return sctx, fmt.Errorf("failed to list employees: %w", err)
	}
	rules, err := s.ruleRepo.ListRules(ctx)
	if err != nil {
		return sctx, fmt.Errorf("failed to list commission rules: %w", err)
	}
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return sctx, fmt.Errorf("failed to list currencies: %w", err)
	}

	bookingIDs := make([]string, 0, len(req.RelatedItems))
	seen := make(map[string]bool, len(req.RelatedItems))
	for _, ref := range req.RelatedItems {
		if !seen[ref.BookingID] {
			seen[ref.BookingID] = true
			bookingIDs = append(bookingIDs, ref.BookingID)
		}
	}
	var bookings []domain.Booking
	if len(bookingIDs) > 0 {
		bookings, err = s.bookingRepo.FindBookingsByIDs(ctx, bookingIDs)
		if err != nil {
			return sctx, fmt.Errorf("failed to load bookings: %w", err)
		}
	}

	sctx = domain.SettlementContext{
		Accounts:        accounts,
		Settings:        *settings,
		Employees:       employees,
		CommissionRules: rules,
		Bookings:        bookings,
		Currencies:      currencies,
	}
	return sctx, nil
}

// Preview builds the settlement preview without persisting anything.
func (s *settlementService) Preview(ctx context.Context, req domain.SettlementRequest) (*domain.SettlementPreviewResult, error) {
	sctx, err := s.loadContext(ctx, req)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settlement context")
		return nil, err
	}
	preview := BuildSettlementPreview(req, sctx)
	s.LogInfo(ctx, "Settlement preview built",
		slog.String("transaction_type", string(req.TransactionType)),
		slog.String("user_id", req.UserID),
		slog.Bool("is_valid", preview.IsValid),
		slog.Int("line_count", len(preview.Lines)),
		slog.Int("error_count", len(preview.Errors)))
	return &preview, nil
}

// CreateSettlementEntry builds the preview, rejects invalid ones with an
// error carrying every collected problem, and persists the resulting
// entry as Posted. Each line keeps its own original-currency audit trail,
// so the entry's own exchange rate is 1.
func (s *settlementService) CreateSettlementEntry(ctx context.Context, req domain.SettlementRequest, creatorUserID string) (*domain.JournalEntry, error) {
	sctx, err := s.loadContext(ctx, req)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settlement context")
		return nil, err
	}

	preview := BuildSettlementPreview(req, sctx)
	if !preview.IsValid {
		reasons := strings.Join(preview.Errors, "; ")
		if reasons == "" {
			reasons = fmt.Sprintf("debits %s and credits %s do not balance", preview.TotalDebit.StringFixed(2), preview.TotalCredit.StringFixed(2))
		}
		s.LogError(ctx, ErrInvalidPreview, "Rejected invalid settlement preview",
			slog.String("transaction_type", string(req.TransactionType)),
			slog.String("reasons", reasons))
		return nil, fmt.Errorf("%w: %s", ErrInvalidPreview, reasons)
	}

	now := time.Now().UTC()
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s for %s", strings.ToLower(string(req.TransactionType)), req.UserName)
	}
	entry := domain.JournalEntry{
		JournalID:    uuid.NewString(),
		Date:         now,
		Description:  description,
		Reference:    "STL-" + now.Format("20060102") + "-" + uuid.NewString()[:8],
		BranchID:     req.BranchID,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: decimal.NewFromInt(1),
		Lines:        preview.Lines,
		Status:       domain.StatusPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to persist settlement entry", slog.String("journal_id", entry.JournalID))
		return nil, fmt.Errorf("failed to persist settlement entry: %w", err)
	}

	s.LogInfo(ctx, "Settlement entry posted",
		slog.String("journal_id", entry.JournalID),
		slog.String("reference", entry.Reference),
		slog.String("total_debit", preview.TotalDebit.String()),
		slog.String("total_credit", preview.TotalCredit.String()))
	return &entry, nil
}
