package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/clock"
	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
	pkgerrors "github.com/agrovale/pomar-backend/pkg/errors"
	"github.com/agrovale/pomar-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service runs the settlement matcher for one order at a time. Diagnose
// reports what a run would do; Apply commits the links and cost-record
// updates inside a single transaction.
type Service interface {
	Diagnose(ctx context.Context, orderID uuid.UUID) (*Report, error)
	Apply(ctx context.Context, orderID uuid.UUID) (*ApplyResult, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	clock   clock.Clock
	channel enums.SettlementChannel
	metrics *metrics.ReconciliationMetrics
}

// NewService builds the matcher. A nil metrics receiver disables recording.
func NewService(repo Repository, tx txRunner, clk clock.Clock, channel enums.SettlementChannel, m *metrics.ReconciliationMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reconciliation repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if clk == nil {
		clk = clock.System{}
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid settlement channel %q", channel)
	}
	return &service{repo: repo, tx: tx, clock: clk, channel: channel, metrics: m}, nil
}

func (s *service) Diagnose(ctx context.Context, orderID uuid.UUID) (*Report, error) {
	started := time.Now()
	report, _, err := s.run(ctx, s.repo, orderID)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRun("diagnose", time.Since(started))
	s.metrics.AddUnresolved(len(report.UnresolvedRecords))
	return report, nil
}

func (s *service) Apply(ctx context.Context, orderID uuid.UUID) (*ApplyResult, error) {
	started := time.Now()

	var result *ApplyResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		report, items, err := s.run(ctx, repo, orderID)
		if err != nil {
			return err
		}

		result = &ApplyResult{Report: *report}
		var applyErrs error
		for _, proposal := range report.Proposals {
			item := items[proposal.ItemID]
			created, err := repo.CreateLink(ctx, &models.SettlementLink{
				ID:           uuid.New(),
				ItemID:       proposal.ItemID,
				CostRecordID: proposal.RecordID,
				Amount:       proposal.Amount,
			})
			if err != nil {
				applyErrs = multierr.Append(applyErrs, fmt.Errorf("link item %s to record %s: %w", proposal.ItemID, proposal.RecordID, err))
				continue
			}
			if created {
				result.LinksCreated++
			} else {
				result.LinksExisting++
			}

			// The record is flipped even when the link predates this run, so
			// a run that crashed between link insert and record update can be
			// replayed safely.
			paidAt := resolvePaidAt(item, proposal.RecordID, s.clock.Now())
			if err := repo.MarkRecordPaid(ctx, proposal.RecordID, paidAt); err != nil {
				applyErrs = multierr.Append(applyErrs, fmt.Errorf("mark record %s paid: %w", proposal.RecordID, err))
				continue
			}
			result.RecordsPaid++
		}
		if applyErrs != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, applyErrs, "apply settlement links")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveRun("apply", time.Since(started))
	s.metrics.AddLinks(result.LinksCreated, result.LinksExisting)
	s.metrics.AddUnresolved(len(result.Report.UnresolvedRecords))
	return result, nil
}

// run performs the shared candidate search and matching. It returns the
// report plus the candidate items keyed by id so apply mode can reach the
// preloaded links for paid-at evidence.
func (s *service) run(ctx context.Context, repo Repository, orderID uuid.UUID) (*Report, map[uuid.UUID]*models.SettlementItem, error) {
	if orderID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	records, err := repo.UnlinkedCostRecords(ctx, orderID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cost records")
	}
	items, err := repo.CandidateItems(ctx, s.channel, strings.TrimSpace(order.Code))
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settlement items")
	}

	proposals, unresolved := match(records, items)
	report := &Report{
		OrderID:           order.ID,
		OrderCode:         order.Code,
		CandidateRecords:  len(records),
		CandidateItems:    len(items),
		Proposals:         proposals,
		UnresolvedRecords: unresolved,
	}

	byID := make(map[uuid.UUID]*models.SettlementItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return report, byID, nil
}
