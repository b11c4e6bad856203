package reconciliation

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovale/pomar-backend/pkg/db/models"
)

// Payload fields the settlement provider has been observed carrying a
// payment date in.
var payloadDateKeys = []string{"payment_date", "settlement_date", "date"}

var payloadDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// resolvePaidAt picks the paid-at evidence for a record being linked to item,
// in priority order: the latest paid-at among the item's other linked
// records, then a date parsed from the provider payload, then now.
func resolvePaidAt(item *models.SettlementItem, recordID uuid.UUID, now time.Time) time.Time {
	if sibling := latestSiblingPaidAt(item, recordID); sibling != nil {
		return *sibling
	}
	if parsed := paidAtFromPayload(item.ProviderPayload); parsed != nil {
		return *parsed
	}
	return now
}

func latestSiblingPaidAt(item *models.SettlementItem, recordID uuid.UUID) *time.Time {
	var latest *time.Time
	for _, link := range item.Links {
		if link.CostRecordID == recordID || link.CostRecord == nil || link.CostRecord.PaidAt == nil {
			continue
		}
		if latest == nil || link.CostRecord.PaidAt.After(*latest) {
			latest = link.CostRecord.PaidAt
		}
	}
	return latest
}

func paidAtFromPayload(payload map[string]any) *time.Time {
	for _, key := range payloadDateKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			continue
		}
		if parsed := parsePayloadDate(value); parsed != nil {
			return parsed
		}
	}
	return nil
}

// parsePayloadDate understands the provider's compact 8-digit ddmmyyyy form
// plus a few common date layouts. Anything else is treated as absent.
func parsePayloadDate(value string) *time.Time {
	if isCompactDate(value) {
		parsed, err := time.Parse("02012006", value)
		if err == nil {
			return &parsed
		}
		return nil
	}
	for _, layout := range payloadDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}

func isCompactDate(value string) bool {
	if len(value) != 8 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
