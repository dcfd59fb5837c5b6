package repository

import (
	"context"

	"focozero-data/internal/domain"
)

// CyclesRepository campaign cycle boundary operations. Both operations
// run their bulk writes in a single transaction: the property reset and
// the block reset either both land or neither does.
type CyclesRepository interface {
	// ResetCampaign bulk-sets every visited property back to closed
	// (refused properties are intentionally left untouched) and clears
	// every block's worked flag. Returns the modified row counts.
	ResetCampaign(ctx context.Context) (propertiesReset, blocksReset int64, err error)

	// CloseCycle records a cycle row with the given summary, links the
	// listed weekly logs to it, and performs the campaign reset, all in
	// one transaction. Returns the stored cycle.
	CloseCycle(ctx context.Context, summary domain.CycleSummary, weeklyLogIDs []string) (*domain.Cycle, error)
}
