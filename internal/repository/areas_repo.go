package repository

import (
	"context"

	"focozero-data/internal/domain"
)

// AreasRepository territory areas.
type AreasRepository interface {
	// GetArea fetches an area by ID.
	GetArea(ctx context.Context, areaID string) (*domain.Area, error)

	// ListAreas returns every area, ordered by name.
	ListAreas(ctx context.Context) ([]*domain.Area, error)

	// CreateArea inserts an area and returns its generated ID.
	CreateArea(ctx context.Context, area *domain.Area) (string, error)

	// UpdateArea overwrites name/map/responsible of an existing area.
	UpdateArea(ctx context.Context, area *domain.Area) error

	// DeleteArea removes the area and cascades its blocks and
	// properties in one transaction.
	DeleteArea(ctx context.Context, areaID string) error
}
