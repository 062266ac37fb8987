package repositories

import (
	"context"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/domain/pagination"
)

// PlacementRepository определяет методы чтения размещений недвижимости.
type PlacementRepository interface {
	List(ctx context.Context, args pagination.Arguments[uuid.UUID], filter entities.PlacementFilter) (*pagination.Page[uuid.UUID, entities.Placement], error)

	TotalCount(ctx context.Context) (int32, error)
}
