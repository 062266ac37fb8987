package entities

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ошибки операций над объектами недвижимости.
var ErrRealtyNotExists = errors.New("realty does not exist")

// Ошибки валидации адресных полей.
var (
	ErrInvalidAddressPart = errors.New("invalid address part")
	ErrInvalidNumFloors   = errors.New("invalid number of floors")
	ErrInvalidFloor       = errors.New("invalid floor")
)

// RealtyKind указывает тип объекта недвижимости.
type RealtyKind int16

// Типы объектов недвижимости.
const (
	RealtyKindApartment RealtyKind = 1
	RealtyKindBuilding  RealtyKind = 2
	RealtyKindRoom      RealtyKind = 3
)

// String возвращает текстовое имя типа объекта.
func (k RealtyKind) String() string {
	switch k {
	case RealtyKindApartment:
		return "apartment"
	case RealtyKindBuilding:
		return "building"
	case RealtyKindRoom:
		return "room"
	default:
		return fmt.Sprintf("RealtyKind(%d)", int16(k))
	}
}

// realtyHashNamespace - пространство имен UUID для хеша дедупликации.
var realtyHashNamespace = uuid.MustParse("8f2b5a14-6c95-4e0a-9f37-d41c2e8b7a60")

// Realty представляет объект недвижимости.
type Realty struct {
	ID           uuid.UUID
	Hash         uuid.UUID
	Address      string
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
	CreatedAt    time.Time
}

// RealtyParts содержит адресные поля, определяющие объект недвижимости.
type RealtyParts struct {
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

// NewRealty создает объект недвижимости из адресных полей,
// вычисляя полный адрес и хеш дедупликации.
func NewRealty(p RealtyParts) (*Realty, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Realty{
		ID:           uuid.New(),
		Hash:         p.Hash(),
		Address:      p.FullAddress(),
		Country:      p.Country,
		State:        p.State,
		City:         p.City,
		Street:       p.Street,
		ZipCode:      p.ZipCode,
		BuildingName: p.BuildingName,
		NumFloors:    p.NumFloors,
		Floor:        p.Floor,
		ApartmentNum: p.ApartmentNum,
		RoomNum:      p.RoomNum,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Validate проверяет адресные поля.
func (p RealtyParts) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"country", p.Country},
		{"city", p.City},
		{"street", p.Street},
		{"building name", p.BuildingName},
	}
	for _, part := range required {
		if !validText(part.value, maxTextLen) {
			return fmt.Errorf("%w: %s", ErrInvalidAddressPart, part.field)
		}
	}

	optional := []struct {
		field string
		value *string
	}{
		{"state", p.State},
		{"zip code", p.ZipCode},
		{"apartment num", p.ApartmentNum},
		{"room num", p.RoomNum},
	}
	for _, part := range optional {
		if part.value != nil && !validText(*part.value, maxTextLen) {
			return fmt.Errorf("%w: %s", ErrInvalidAddressPart, part.field)
		}
	}

	if p.NumFloors < 0 || p.NumFloors > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrInvalidNumFloors, p.NumFloors)
	}
	if p.Floor != nil && (*p.Floor < 0 || *p.Floor > math.MaxUint16) {
		return fmt.Errorf("%w: %d", ErrInvalidFloor, *p.Floor)
	}

	return nil
}

// Hash вычисляет детерминированный хеш адресных полей для дедупликации.
//
// Порядок полей зафиксирован: его изменение меняет хеши уже
// сохраненных объектов и требует миграции данных.
func (p RealtyParts) Hash() uuid.UUID {
	var b bytes.Buffer
	writeHashPart(&b, &p.Country)
	writeHashPart(&b, p.State)
	writeHashPart(&b, &p.City)
	writeHashPart(&b, &p.Street)
	writeHashPart(&b, p.ZipCode)
	writeHashPart(&b, &p.BuildingName)
	numFloors := strconv.FormatInt(int64(p.NumFloors), 10)
	writeHashPart(&b, &numFloors)
	var floor *string
	if p.Floor != nil {
		f := strconv.FormatInt(int64(*p.Floor), 10)
		floor = &f
	}
	writeHashPart(&b, floor)
	writeHashPart(&b, p.ApartmentNum)
	writeHashPart(&b, p.RoomNum)

	return uuid.NewSHA1(realtyHashNamespace, b.Bytes())
}

func writeHashPart(b *bytes.Buffer, s *string) {
	if s != nil {
		b.WriteByte(1)
		b.WriteString(*s)
	} else {
		b.WriteByte(0)
	}
	b.WriteByte(0x1f)
}

// FullAddress собирает полный адрес из заполненных частей.
func (p RealtyParts) FullAddress() string {
	parts := make([]string, 0, 9)
	parts = append(parts, p.Country)
	if p.State != nil {
		parts = append(parts, *p.State)
	}
	parts = append(parts, p.City, p.Street)
	if p.ZipCode != nil {
		parts = append(parts, *p.ZipCode)
	}
	parts = append(parts, p.BuildingName)
	if p.Floor != nil {
		parts = append(parts, strconv.FormatInt(int64(*p.Floor), 10))
	}
	if p.ApartmentNum != nil {
		parts = append(parts, *p.ApartmentNum)
	}
	if p.RoomNum != nil {
		parts = append(parts, *p.RoomNum)
	}
	return strings.Join(parts, ", ")
}

// Kind определяет тип объекта по заполненным полям.
func (r *Realty) Kind() RealtyKind {
	if r.RoomNum != nil {
		return RealtyKindRoom
	}
	if r.ApartmentNum != nil {
		return RealtyKindApartment
	}
	return RealtyKindBuilding
}
