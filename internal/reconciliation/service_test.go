package reconciliation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/clock"
	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
	pkgerrors "github.com/agrovale/pomar-backend/pkg/errors"
)

var serviceInstant = time.Date(2026, time.May, 5, 8, 0, 0, 0, time.UTC)

func newMatcherService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, clock.Fixed{Instant: serviceInstant}, enums.SettlementChannelPix, nil)
	if err != nil {
		t.Fatalf("unexpected error building service: %v", err)
	}
	return svc
}

func TestServiceDiagnoseMissingOrder(t *testing.T) {
	t.Parallel()

	svc := newMatcherService(t, newStubRepo(nil))
	_, err := svc.Diagnose(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for missing order")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestServiceDiagnoseNothingToDo(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), Code: "PED-2026-0031"}
	svc := newMatcherService(t, newStubRepo(order))

	report, err := svc.Diagnose(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("zero candidates must not be an error: %v", err)
	}
	if len(report.Proposals) != 0 || len(report.UnresolvedRecords) != 0 {
		t.Fatalf("expected an empty report, got %+v", report)
	}
}

func TestServiceApplyCreatesLinksAndMarksPaid(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), Code: "PED-2026-0032"}
	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Norte"}
	repo := newStubRepo(order)
	repo.records = []models.HarvestCostRecord{
		{ID: uuid.New(), OrderID: order.ID, CrewID: crew.ID, FruitID: uuid.New(), CostAmount: dp("60.00"), PaymentStatus: enums.CostPaymentStatusPending, Crew: crew},
		{ID: uuid.New(), OrderID: order.ID, CrewID: crew.ID, FruitID: uuid.New(), CostAmount: dp("60.00"), PaymentStatus: enums.CostPaymentStatusPending, Crew: crew},
	}
	repo.items = []models.SettlementItem{
		{ID: uuid.New(), BatchID: uuid.New(), SentAmount: d("60.00"), Status: enums.SettlementItemStatusProcessed, Succeeded: true, Memo: " PED-2026-0032 ", CreatedAt: serviceInstant},
		{ID: uuid.New(), BatchID: uuid.New(), SentAmount: d("60.00"), Status: enums.SettlementItemStatusProcessed, Succeeded: true, Memo: "PED-2026-0032", CreatedAt: serviceInstant.Add(time.Minute)},
	}

	svc := newMatcherService(t, repo)
	result, err := svc.Apply(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.LinksCreated != 2 || result.RecordsPaid != 2 {
		t.Fatalf("expected 2 links and 2 paid records, got %+v", result)
	}
	for i := range repo.records {
		record := &repo.records[i]
		if record.PaymentStatus != enums.CostPaymentStatusPaid || !record.Paid {
			t.Fatalf("record %d not flipped to paid: %+v", i, record)
		}
		if record.PaidAt == nil || !record.PaidAt.Equal(serviceInstant) {
			t.Fatalf("record %d: expected paid_at defaulted to the clock, got %v", i, record.PaidAt)
		}
	}

	// A second run sees no unlinked records and re-proposes nothing.
	again, err := svc.Apply(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if again.LinksCreated != 0 || again.RecordsPaid != 0 {
		t.Fatalf("expected an idempotent second run, got %+v", again)
	}
}

func TestServiceApplyTolerantOfExistingLink(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), Code: "PED-2026-0033"}
	crew := &models.Crew{ID: uuid.New(), Name: "Equipe Sul"}
	record := models.HarvestCostRecord{ID: uuid.New(), OrderID: order.ID, CrewID: crew.ID, FruitID: uuid.New(), CostAmount: dp("45.00"), PaymentStatus: enums.CostPaymentStatusPending, Crew: crew}
	item := models.SettlementItem{ID: uuid.New(), BatchID: uuid.New(), SentAmount: d("45.00"), Status: enums.SettlementItemStatusProcessed, Succeeded: true, Memo: "PED-2026-0033", CreatedAt: serviceInstant}

	repo := newStubRepo(order)
	repo.records = []models.HarvestCostRecord{record}
	repo.items = []models.SettlementItem{item}
	// Seed the link the way a crashed earlier run would have left it: link
	// written, record not yet flipped. The candidate query still sees the
	// record because the link landed after its snapshot.
	repo.existing[linkKey{item.ID, record.ID}] = true

	svc := newMatcherService(t, repo)
	result, err := svc.Apply(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.LinksCreated != 0 || result.LinksExisting != 1 {
		t.Fatalf("expected the existing link to be tolerated, got %+v", result)
	}
	if repo.records[0].PaymentStatus != enums.CostPaymentStatusPaid {
		t.Fatal("expected the record to be flipped to paid during replay")
	}
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type linkKey struct {
	itemID   uuid.UUID
	recordID uuid.UUID
}

// stubRepo keeps the candidate pools in memory and mimics the real queries'
// filtering.
type stubRepo struct {
	order   *models.Order
	records []models.HarvestCostRecord
	items   []models.SettlementItem
	linked  map[linkKey]bool
	// existing simulates links written by another run after the candidate
	// snapshot: invisible to UnlinkedCostRecords, visible to CreateLink.
	existing map[linkKey]bool
}

func newStubRepo(order *models.Order) *stubRepo {
	return &stubRepo{order: order, linked: map[linkKey]bool{}, existing: map[linkKey]bool{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubRepo) UnlinkedCostRecords(ctx context.Context, orderID uuid.UUID) ([]models.HarvestCostRecord, error) {
	var out []models.HarvestCostRecord
	for _, record := range s.records {
		if record.OrderID != orderID || record.CostAmount == nil {
			continue
		}
		if record.PaymentStatus != enums.CostPaymentStatusPending && record.PaymentStatus != enums.CostPaymentStatusProcessing {
			continue
		}
		if s.recordLinked(record.ID) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *stubRepo) recordLinked(recordID uuid.UUID) bool {
	for key := range s.linked {
		if key.recordID == recordID {
			return true
		}
	}
	return false
}

func (s *stubRepo) CandidateItems(ctx context.Context, channel enums.SettlementChannel, memo string) ([]models.SettlementItem, error) {
	var out []models.SettlementItem
	for _, item := range s.items {
		if !item.Matchable() || strings.TrimSpace(item.Memo) != memo {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *stubRepo) CreateLink(ctx context.Context, link *models.SettlementLink) (bool, error) {
	key := linkKey{link.ItemID, link.CostRecordID}
	if s.linked[key] || s.existing[key] {
		return false, nil
	}
	s.linked[key] = true
	return true, nil
}

func (s *stubRepo) MarkRecordPaid(ctx context.Context, recordID uuid.UUID, paidAt time.Time) error {
	for i := range s.records {
		if s.records[i].ID == recordID {
			s.records[i].PaymentStatus = enums.CostPaymentStatusPaid
			s.records[i].Paid = true
			at := paidAt
			s.records[i].PaidAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
