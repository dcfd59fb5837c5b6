package repository

import (
	"context"
	"time"

	"focozero-data/internal/domain"
)

// BlockCounterDeltas atomic increments applied to a block's aggregate
// counters when a property is created (or its counts corrected). Each
// field maps to a `SET col = col + delta` expression; the update never
// reads the current value first, so concurrent property creation in the
// same block stays correct.
type BlockCounterDeltas struct {
	Properties  int    // total_properties
	PType       string // which per-type counter to move, "" for none
	TypeDelta   int
	Inhabitants int
	Dogs        int
	Cats        int
}

// BlocksRepository numbered blocks within an area.
type BlocksRepository interface {
	// GetBlock fetches a block by ID.
	GetBlock(ctx context.Context, blockID string) (*domain.Block, error)

	// ListBlocksByArea returns an area's blocks ordered by number.
	ListBlocksByArea(ctx context.Context, areaID string) ([]*domain.Block, error)

	// CreateBlock inserts a block at the requested number, shifting the
	// numbers of subsequent blocks up by one (shift-then-insert in one
	// transaction).
	CreateBlock(ctx context.Context, block *domain.Block) (string, error)

	// IncrementCounters applies atomic per-field increments to the
	// block's aggregate counters.
	IncrementCounters(ctx context.Context, blockID string, deltas BlockCounterDeltas) error

	// AssignBlock sets the block's assigned agent. ErrNotFound when the
	// block does not exist (callers batch per-ID for partial success).
	AssignBlock(ctx context.Context, blockID, agentID string) error

	// MarkWorked transitions the given blocks to worked: clears
	// assigned_to, sets worked_by/work_date and the worked flag.
	// Returns the number of blocks updated.
	MarkWorked(ctx context.Context, blockIDs []string, agentID string, workDate time.Time) (int64, error)

	// ResetResponsibles clears assigned_to on every block without
	// touching worked state. Returns the number of blocks updated.
	ResetResponsibles(ctx context.Context) (int64, error)

	// ListWorkedBlocks returns the blocks of an area marked worked by
	// the agent on the given day.
	ListWorkedBlocks(ctx context.Context, areaID, agentID string, day time.Time) ([]*domain.Block, error)

	// GetNumbersByIDs resolves block IDs to their printed numbers.
	// Unknown IDs are simply absent from the result.
	GetNumbersByIDs(ctx context.Context, blockIDs []string) (map[string]int, error)
}
