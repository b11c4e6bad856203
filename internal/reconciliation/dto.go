package reconciliation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LinkProposal is one proposed settlement link. Amount always equals the full
// cost amount of the record; partial settlement is not modeled.
type LinkProposal struct {
	ItemID   uuid.UUID       `json:"item_id"`
	RecordID uuid.UUID       `json:"record_id"`
	Amount   decimal.Decimal `json:"amount"`
	Rank     int             `json:"rank"`
}

// Report is the outcome of one matcher run over a single order. Zero
// proposals with zero unresolved records simply means there was nothing to
// reconcile.
type Report struct {
	OrderID           uuid.UUID      `json:"order_id"`
	OrderCode         string         `json:"order_code"`
	CandidateRecords  int            `json:"candidate_records"`
	CandidateItems    int            `json:"candidate_items"`
	Proposals         []LinkProposal `json:"proposals"`
	UnresolvedRecords []uuid.UUID    `json:"unresolved_records,omitempty"`
}

// ApplyResult reports what an apply run actually wrote. LinksCreated counts
// new rows; LinksExisting counts proposals that were already applied by an
// earlier run.
type ApplyResult struct {
	Report        Report `json:"report"`
	LinksCreated  int    `json:"links_created"`
	LinksExisting int    `json:"links_existing"`
	RecordsPaid   int    `json:"records_paid"`
}
