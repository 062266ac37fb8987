package entities

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Ошибки денежных типов.
var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidMoney    = errors.New("invalid money format")
	ErrInvalidPercent  = errors.New("percent must be between 0 and 100")
)

// Currency перечисляет поддерживаемые валюты.
// Значения совпадают с кодами в колонках *_currency базы данных.
type Currency int16

// Коды валют.
const (
	CurrencyUSD Currency = iota + 1
	CurrencyEUR
	CurrencyRUB
)

// Valid сообщает, известен ли код валюты.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyRUB:
		return true
	default:
		return false
	}
}

// String возвращает буквенный код валюты.
func (c Currency) String() string {
	switch c {
	case CurrencyUSD:
		return "USD"
	case CurrencyEUR:
		return "EUR"
	case CurrencyRUB:
		return "RUB"
	default:
		return fmt.Sprintf("Currency(%d)", int16(c))
	}
}

// ParseCurrency разбирает буквенный код валюты.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToUpper(s) {
	case "USD":
		return CurrencyUSD, nil
	case "EUR":
		return CurrencyEUR, nil
	case "RUB":
		return CurrencyRUB, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
}

// Money представляет денежную сумму в конкретной валюте.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney создает денежную сумму с проверкой валюты.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.Valid() {
		return Money{}, fmt.Errorf("%w: %d", ErrUnknownCurrency, int16(currency))
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// String возвращает представление вида "123.45USD".
func (m Money) String() string {
	return m.Amount.String() + m.Currency.String()
}

// Equal сравнивает суммы с учетом валюты.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// ParseMoney разбирает строку вида "123.45USD".
func ParseMoney(s string) (Money, error) {
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i <= 0 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	amount, err := decimal.NewFromString(s[:i])
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	currency, err := ParseCurrency(s[i:])
	if err != nil {
		return Money{}, err
	}

	return Money{Amount: amount, Currency: currency}, nil
}

// Percent представляет процентное значение в диапазоне [0, 100].
type Percent decimal.Decimal

// NewPercent создает Percent с проверкой диапазона.
func NewPercent(value decimal.Decimal) (Percent, error) {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return Percent{}, fmt.Errorf("%w: %s", ErrInvalidPercent, value)
	}
	return Percent(value), nil
}

// Decimal возвращает числовое значение процента.
func (p Percent) Decimal() decimal.Decimal {
	return decimal.Decimal(p)
}

// String возвращает представление вида "5.5%".
func (p Percent) String() string {
	return decimal.Decimal(p).String() + "%"
}
