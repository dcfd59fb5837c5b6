package repository

import (
	"context"

	"focozero-data/internal/domain"
)

// PropertyUpdate partial update of a property. Nil fields are left
// untouched; Status in particular only changes when explicitly supplied
// (edits never drive the status machine implicitly).
type PropertyUpdate struct {
	Address     *string
	PType       *string
	Inhabitants *int
	Dogs        *int
	Cats        *int
	Note        *string
	Status      *string
}

// PropertiesRepository properties within a block.
type PropertiesRepository interface {
	// GetProperty fetches a property by ID.
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)

	// ListPropertiesByBlock returns a block's properties ordered by
	// position.
	ListPropertiesByBlock(ctx context.Context, blockID string) ([]*domain.Property, error)

	// CreateProperty inserts a property at the requested position,
	// shifting subsequent positions up by one (shift-then-insert in one
	// transaction, mirroring block numbering).
	CreateProperty(ctx context.Context, property *domain.Property) (string, error)

	// UpdateProperty applies the non-nil fields of upd.
	UpdateProperty(ctx context.Context, propertyID string, upd PropertyUpdate) error

	// CountByStatus totals properties per status across the territory.
	CountByStatus(ctx context.Context) (domain.StatusCounts, error)

	// CountVisitedByType totals the visited subset per property type.
	CountVisitedByType(ctx context.Context) (domain.TypeCounts, error)
}
