package reconciliation

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/money"
)

// Tie-break ranks, ascending is better. An item that already carries a link
// to the record's own crew is the strongest signal; a bare orphan with no
// identity evidence is the weakest.
const (
	rankSameCrewLink  = 0
	rankOrphanKey     = 1
	rankOrphanName    = 2
	rankOtherCrewLink = 3
	rankOrphanBare    = 4
)

// match assigns at most one settlement item per cost record. The used set is
// local to this run: once an item is claimed by a record it cannot be claimed
// again, even when several records share the same cost amount.
func match(records []models.HarvestCostRecord, items []models.SettlementItem) ([]LinkProposal, []uuid.UUID) {
	used := make(map[uuid.UUID]bool, len(items))
	proposals := make([]LinkProposal, 0, len(records))
	var unresolved []uuid.UUID

	for i := range records {
		record := &records[i]
		if record.CostAmount == nil {
			unresolved = append(unresolved, record.ID)
			continue
		}
		target := money.Round2(*record.CostAmount)

		type scored struct {
			item *models.SettlementItem
			rank int
		}
		var survivors []scored
		for j := range items {
			item := &items[j]
			if used[item.ID] || !item.Matchable() {
				continue
			}
			if !money.ApproxEqual(item.Gap(), target) {
				continue
			}
			survivors = append(survivors, scored{item: item, rank: rankItem(item, record)})
		}
		if len(survivors) == 0 {
			unresolved = append(unresolved, record.ID)
			continue
		}

		sort.SliceStable(survivors, func(a, b int) bool {
			if survivors[a].rank != survivors[b].rank {
				return survivors[a].rank < survivors[b].rank
			}
			return survivors[a].item.CreatedAt.Before(survivors[b].item.CreatedAt)
		})

		best := survivors[0]
		used[best.item.ID] = true
		proposals = append(proposals, LinkProposal{
			ItemID:   best.item.ID,
			RecordID: record.ID,
			Amount:   target,
			Rank:     best.rank,
		})
	}
	return proposals, unresolved
}

func rankItem(item *models.SettlementItem, record *models.HarvestCostRecord) int {
	if len(item.Links) > 0 {
		for _, link := range item.Links {
			if link.CostRecord != nil && link.CostRecord.CrewID == record.CrewID {
				return rankSameCrewLink
			}
		}
		return rankOtherCrewLink
	}

	crew := record.Crew
	if crew != nil {
		if item.PayeeKey != nil && crew.PayeeKey != nil && *item.PayeeKey == *crew.PayeeKey {
			return rankOrphanKey
		}
		if item.PayeeName != nil {
			if nameMatches(*item.PayeeName, crew.Name) {
				return rankOrphanName
			}
			if crew.ResponsibleName != nil && nameMatches(*item.PayeeName, *crew.ResponsibleName) {
				return rankOrphanName
			}
		}
	}
	return rankOrphanBare
}

// nameMatches compares payee names the way providers mangle them: case
// insensitive, accepting equality or substring containment either way.
func nameMatches(sent, registered string) bool {
	a := strings.ToLower(strings.TrimSpace(sent))
	b := strings.ToLower(strings.TrimSpace(registered))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
