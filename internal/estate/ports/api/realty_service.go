package api

import (
	"context"

	"realtydesk/internal/estate/domain/entities"
)

// CreateRealty описывает команду создания объекта недвижимости.
// Повторная команда с теми же адресными полями возвращает уже
// существующий объект вместо вставки дубликата.
type CreateRealty struct {
	Country      string
	State        *string
	City         string
	Street       string
	ZipCode      *string
	BuildingName string
	NumFloors    int32
	Floor        *int32
	ApartmentNum *string
	RoomNum      *string
}

// RealtyUseCase определяет порт команд над объектами недвижимости.
type RealtyUseCase interface {
	Create(ctx context.Context, cmd CreateRealty) (*entities.Realty, error)
}
