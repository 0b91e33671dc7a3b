package core

import (
	"context"
	"fmt"
	"time"
)

type ReconciliationReport struct {
	Scanned   int
	Resolved  int
	Remaining int
}

// ReconcilePendingEntries retries the compensating credit for entries that
// escalated to reconciliation_pending. Each entry represents a debit whose
// follow-up failed and whose inline reversal also failed; resolving it means
// crediting the source account back and closing the entry as failed. Entries
// that still cannot be reversed stay pending for the next sweep.
func (s *Service) ReconcilePendingEntries(ctx context.Context, limit int) (report ReconciliationReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observeOperation(ctx, startedAt, "reconcile_pending", err, fields)
	}()

	if s == nil || s.accountStore == nil || s.entryStore == nil {
		err = s.mapError(fmt.Errorf("core: reconciliation stores are not configured"))
		return ReconciliationReport{}, err
	}
	if limit <= 0 {
		limit = 100
	}

	pending, listErr := s.entryStore.ListByStatus(ctx, EntryStatusReconciliationPending, limit)
	if listErr != nil {
		err = s.mapError(listErr)
		return ReconciliationReport{}, err
	}
	report.Scanned = len(pending)

	for _, entry := range pending {
		if ctx.Err() != nil {
			err = s.mapError(ctx.Err())
			return report, err
		}
		if _, adjustErr := s.accountStore.AdjustBalance(ctx, entry.AccountID, entry.Amount); adjustErr != nil {
			report.Remaining++
			s.logError(ctx, "reconciliation reversal still failing", map[string]any{
				"entry_id":   entry.ID,
				"account_id": entry.AccountID,
				"error":      adjustErr.Error(),
			})
			continue
		}
		if updateErr := s.entryStore.UpdateStatus(ctx, entry.ID, EntryStatusFailed); updateErr != nil {
			// The credit landed but the status write did not. Undo the credit
			// so the next sweep starts from a clean slate.
			if _, undoErr := s.accountStore.AdjustBalance(ctx, entry.AccountID, -entry.Amount); undoErr != nil {
				s.logError(ctx, "reconciliation credit undo failed", map[string]any{
					"entry_id":   entry.ID,
					"account_id": entry.AccountID,
					"error":      undoErr.Error(),
				})
			}
			report.Remaining++
			continue
		}
		report.Resolved++
		s.logInfo(ctx, "reconciliation entry resolved", map[string]any{
			"entry_id":   entry.ID,
			"account_id": entry.AccountID,
			"amount":     entry.Amount,
		})
	}

	fields["scanned"] = report.Scanned
	fields["resolved"] = report.Resolved
	fields["remaining"] = report.Remaining
	return report, nil
}
