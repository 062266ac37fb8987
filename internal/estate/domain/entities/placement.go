package entities

import "github.com/google/uuid"

// Placement представляет размещение объекта недвижимости:
// действующие размещенные контракты управления арендой и продажей.
// Хотя бы один из контрактов всегда присутствует.
type Placement struct {
	RealtyID       uuid.UUID
	RentContractID *uuid.UUID
	SaleContractID *uuid.UUID
}

// PlacementFilter ограничивает выборку размещений по виду сделки.
type PlacementFilter struct {
	Rent bool
	Sale bool
}

// DefaultPlacementFilter включает оба вида сделок.
func DefaultPlacementFilter() PlacementFilter {
	return PlacementFilter{Rent: true, Sale: true}
}
