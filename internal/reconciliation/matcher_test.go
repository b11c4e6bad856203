package reconciliation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
)

var matcherBase = time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func dp(v string) *decimal.Decimal {
	out := decimal.RequireFromString(v)
	return &out
}

func strPtr(s string) *string { return &s }

func costRecord(crew *models.Crew, amount string) models.HarvestCostRecord {
	return models.HarvestCostRecord{
		ID:            uuid.New(),
		OrderID:       uuid.New(),
		CrewID:        crew.ID,
		FruitID:       uuid.New(),
		CostAmount:    dp(amount),
		PaymentStatus: enums.CostPaymentStatusPending,
		Crew:          crew,
	}
}

func settledItem(amount string, createdOffset time.Duration) models.SettlementItem {
	return models.SettlementItem{
		ID:         uuid.New(),
		BatchID:    uuid.New(),
		SentAmount: d(amount),
		Status:     enums.SettlementItemStatusProcessed,
		Succeeded:  true,
		CreatedAt:  matcherBase.Add(createdOffset),
	}
}

func TestMatchNoDoubleAssignmentWithEqualGaps(t *testing.T) {
	t.Parallel()

	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Norte"}
	records := []models.HarvestCostRecord{
		costRecord(crew, "60.00"),
		costRecord(crew, "60.00"),
	}
	items := []models.SettlementItem{
		settledItem("60.00", 0),
		settledItem("60.00", time.Minute),
	}

	proposals, unresolved := match(records, items)
	if len(proposals) != 2 {
		t.Fatalf("expected 2 proposals, got %d (unresolved %d)", len(proposals), len(unresolved))
	}
	if proposals[0].ItemID == proposals[1].ItemID {
		t.Fatal("same settlement item assigned twice in one run")
	}
	if len(unresolved) != 0 {
		t.Fatalf("expected no unresolved records, got %d", len(unresolved))
	}
}

func TestMatchGapTolerance(t *testing.T) {
	t.Parallel()

	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Sul"}
	records := []models.HarvestCostRecord{costRecord(crew, "100.00")}

	within := settledItem("100.01", 0)
	proposals, unresolved := match(records, []models.SettlementItem{within})
	if len(proposals) != 1 {
		t.Fatalf("expected a match within tolerance, unresolved=%d", len(unresolved))
	}

	outside := settledItem("100.02", 0)
	proposals, unresolved = match(records, []models.SettlementItem{outside})
	if len(proposals) != 0 || len(unresolved) != 1 {
		t.Fatalf("expected no match outside tolerance, got %d proposals", len(proposals))
	}
}

func TestMatchGapAccountsForExistingLinks(t *testing.T) {
	t.Parallel()

	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Leste"}
	records := []models.HarvestCostRecord{costRecord(crew, "40.00")}

	item := settledItem("100.00", 0)
	item.Links = []models.SettlementLink{{
		ID:           uuid.New(),
		ItemID:       item.ID,
		CostRecordID: uuid.New(),
		Amount:       d("60.00"),
		CostRecord:   &models.HarvestCostRecord{ID: uuid.New(), CrewID: crew.ID},
	}}

	proposals, _ := match(records, []models.SettlementItem{item})
	if len(proposals) != 1 {
		t.Fatal("expected the remaining gap to match")
	}
	if !proposals[0].Amount.Equal(d("40.00")) {
		t.Fatalf("unexpected link amount %s", proposals[0].Amount)
	}
	if proposals[0].Rank != rankSameCrewLink {
		t.Fatalf("expected same-crew rank, got %d", proposals[0].Rank)
	}
}

func TestMatchRankingPrefersIdentitySignals(t *testing.T) {
	t.Parallel()

	key := "chave-pix-77"
	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Oeste", PayeeKey: &key, ResponsibleName: strPtr("Maria Souza")}
	records := []models.HarvestCostRecord{costRecord(crew, "80.00")}

	bare := settledItem("80.00", 0)
	byName := settledItem("80.00", time.Minute)
	byName.PayeeName = strPtr("MARIA SOUZA LTDA")
	byKey := settledItem("80.00", 2*time.Minute)
	byKey.PayeeKey = &key

	proposals, _ := match(records, []models.SettlementItem{bare, byName, byKey})
	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}
	if proposals[0].ItemID != byKey.ID {
		t.Fatal("expected the payee-key match to win")
	}
	if proposals[0].Rank != rankOrphanKey {
		t.Fatalf("unexpected rank %d", proposals[0].Rank)
	}
}

func TestMatchRankingOtherCrewLinkBeatsBareOrphan(t *testing.T) {
	t.Parallel()

	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Centro"}
	records := []models.HarvestCostRecord{costRecord(crew, "50.00")}

	bare := settledItem("50.00", 0)
	otherCrew := settledItem("120.00", time.Minute)
	otherCrew.Links = []models.SettlementLink{{
		ID:           uuid.New(),
		ItemID:       otherCrew.ID,
		CostRecordID: uuid.New(),
		Amount:       d("70.00"),
		CostRecord:   &models.HarvestCostRecord{ID: uuid.New(), CrewID: uuid.New()},
	}}

	proposals, _ := match(records, []models.SettlementItem{bare, otherCrew})
	if len(proposals) != 1 || proposals[0].ItemID != otherCrew.ID {
		t.Fatal("expected the other-crew link to outrank the bare orphan")
	}
	if proposals[0].Rank != rankOtherCrewLink {
		t.Fatalf("unexpected rank %d", proposals[0].Rank)
	}
}

func TestMatchTieBreakByCreationTime(t *testing.T) {
	t.Parallel()

	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Serra"}
	records := []models.HarvestCostRecord{costRecord(crew, "25.00")}

	later := settledItem("25.00", time.Hour)
	earlier := settledItem("25.00", 0)

	proposals, _ := match(records, []models.SettlementItem{later, earlier})
	if len(proposals) != 1 || proposals[0].ItemID != earlier.ID {
		t.Fatal("expected the earlier item to win the tie")
	}
}

func TestMatchSkipsUnmatchableItems(t *testing.T) {
	t.Parallel()

	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Vale"}
	records := []models.HarvestCostRecord{costRecord(crew, "30.00")}

	failed := settledItem("30.00", 0)
	failed.Succeeded = false
	pending := settledItem("30.00", time.Minute)
	pending.Status = enums.SettlementItemStatusPending

	proposals, unresolved := match(records, []models.SettlementItem{failed, pending})
	if len(proposals) != 0 || len(unresolved) != 1 {
		t.Fatalf("expected no proposals for unmatchable items, got %d", len(proposals))
	}
}

func TestNameMatches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sent       string
		registered string
		want       bool
	}{
		{"Equipe Norte", "equipe norte", true},
		{"EQUIPE NORTE LTDA", "Equipe Norte", true},
		{"Norte", "Equipe Norte", true},
		{"Equipe Sul", "Equipe Norte", false},
		{"", "Equipe Norte", false},
		{"Equipe Norte", "  ", false},
	}
	for _, tc := range cases {
		if got := nameMatches(tc.sent, tc.registered); got != tc.want {
			t.Fatalf("nameMatches(%q, %q) = %v, want %v", tc.sent, tc.registered, got, tc.want)
		}
	}
}
