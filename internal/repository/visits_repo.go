package repository

import (
	"context"
	"time"

	"focozero-data/internal/domain"
	"focozero-data/internal/rollup"
)

// VisitsRepository immutable visit events.
type VisitsRepository interface {
	// GetVisit fetches a visit by ID.
	GetVisit(ctx context.Context, visitID string) (*domain.Visit, error)

	// CreateWithStatus inserts the visit and updates the target
	// property's status to the visit outcome in one transaction, so a
	// durable visit can never be left without its status transition.
	// Returns the generated visit ID.
	CreateWithStatus(ctx context.Context, visit *domain.Visit, newStatus string) (string, error)

	// ListAgentAreaDay returns the agent's visits on the given day whose
	// property belongs to a block of the given area (visit → property →
	// block join), each row annotated with its block identity.
	ListAgentAreaDay(ctx context.Context, agentID, areaID string, day time.Time) ([]rollup.VisitRow, error)
}
