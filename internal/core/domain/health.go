package domain

import "time"

// IssueSeverity grades a health-scan finding.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "CRITICAL"
	SeverityWarning  IssueSeverity = "WARNING"
)

// IssueCode identifies the kind of integrity problem found.
type IssueCode string

const (
	IssueDuplicateCOA    IssueCode = "DUPLICATE_COA"
	IssueUnpostedDoc     IssueCode = "UNPOSTED_DOC"
	IssueUnbalanced      IssueCode = "UNBALANCED"
	IssueEmpty           IssueCode = "EMPTY"
	IssueOrphanedAccount IssueCode = "ORPHANED_ACCOUNT"
)

// HealthIssue is one finding of the ledger integrity scan. The scan is
// read-only diagnostics; nothing is auto-repaired.
type HealthIssue struct {
	Code        IssueCode     `json:"code"`
	Severity    IssueSeverity `json:"severity"`
	EntityID    string        `json:"entityID,omitempty"` // journal, account or document ID
	Description string        `json:"description"`
}

// DocumentStatus tracks whether a source document has been posted to the
// ledger yet.
type DocumentStatus string

const (
	DocumentDraft  DocumentStatus = "DRAFT"
	DocumentPosted DocumentStatus = "POSTED"
)

// Invoice is the minimal receivable-document record the health scan
// inspects for unposted drafts.
type Invoice struct {
	InvoiceID string         `json:"invoiceID"`
	Number    string         `json:"number"`
	Status    DocumentStatus `json:"status"`
	IssueDate time.Time      `json:"issueDate"`
	AuditFields
}

// Bill is the payable-side counterpart of Invoice.
type Bill struct {
	BillID    string         `json:"billID"`
	Number    string         `json:"number"`
	Status    DocumentStatus `json:"status"`
	IssueDate time.Time      `json:"issueDate"`
	AuditFields
}
