package entities

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Ошибки операций над пользователями.
var (
	ErrUserNotExists = errors.New("user does not exist")
	ErrLoginOccupied = errors.New("login is already occupied")
	ErrNoContactInfo = errors.New("either email or phone must be provided")
	ErrWrongPassword = errors.New("wrong password")
)

// Ошибки валидации полей пользователя.
var (
	ErrInvalidUserName = errors.New("invalid user name")
	ErrInvalidLogin    = errors.New("invalid login")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPhone    = errors.New("invalid phone")
	ErrInvalidPassword = errors.New("invalid password")
)

// Регулярные выражения валидации полей пользователя.
var (
	loginRegexp = regexp.MustCompile(`^\S[\p{L}\p{N}]{0,98}\S$`)
	emailRegexp = regexp.MustCompile(`^([^\x00-\x20\x22\x28\x29\x2c\x2e\x3a-\x3c\x3e\x40\x5b-\x5d\x7f-\xff]+|\x22([^\x0d\x22\x5c\x80-\xff]|\x5c[\x00-\x7f])*\x22)(\x2e([^\x00-\x20\x22\x28\x29\x2c\x2e\x3a-\x3c\x3e\x40\x5b-\x5d\x7f-\xff]+|\x22([^\x0d\x22\x5c\x80-\xff]|\x5c[\x00-\x7f])*\x22))*\x40([^\x00-\x20\x22\x28\x29\x2c\x2e\x3a-\x3c\x3e\x40\x5b-\x5d\x7f-\xff]+|\x5b([^\x0d\x5b-\x5d\x80-\xff]|\x5c[\x00-\x7f])*\x5d)(\x2e([^\x00-\x20\x22\x28\x29\x2c\x2e\x3a-\x3c\x3e\x40\x5b-\x5d\x7f-\xff]+|\x5b([^\x0d\x5b-\x5d\x80-\xff]|\x5c[\x00-\x7f])*\x5d))*$`)
	phoneRegexp = regexp.MustCompile(`^([+]?\d{1,2}[-\s]?|)\d{3}[-\s]?\d{3}[-\s]?\d{4}$`)
)

// User представляет пользователя системы.
// Пароль хранится только в виде хеша.
type User struct {
	ID           uuid.UUID
	Name         string
	Login        string
	PasswordHash string
	Email        *string
	Phone        *string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// NewUser создает пользователя, проверяя поля.
// Требуется хотя бы один контакт: email или телефон.
func NewUser(name, login, passwordHash string, email, phone *string) (*User, error) {
	if err := ValidateUserName(name); err != nil {
		return nil, err
	}
	if err := ValidateLogin(login); err != nil {
		return nil, err
	}
	if email == nil && phone == nil {
		return nil, ErrNoContactInfo
	}
	if email != nil {
		if err := ValidateEmail(*email); err != nil {
			return nil, err
		}
	}
	if phone != nil {
		if err := ValidatePhone(*phone); err != nil {
			return nil, err
		}
	}

	return &User{
		ID:           uuid.New(),
		Name:         name,
		Login:        login,
		PasswordHash: passwordHash,
		Email:        email,
		Phone:        phone,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ValidateUserName проверяет имя пользователя.
func ValidateUserName(name string) error {
	if !validText(name, maxTextLen) {
		return fmt.Errorf("%w: %q", ErrInvalidUserName, name)
	}
	return nil
}

// ValidateLogin проверяет логин: 2-100 символов, буквы и цифры внутри,
// без пробельных и управляющих символов по краям.
func ValidateLogin(login string) error {
	if !loginRegexp.MatchString(login) {
		return fmt.Errorf("%w: %q", ErrInvalidLogin, login)
	}
	return nil
}

// ValidateEmail проверяет адрес электронной почты.
func ValidateEmail(email string) error {
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// ValidatePhone проверяет номер телефона.
func ValidatePhone(phone string) error {
	if !phoneRegexp.MatchString(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return nil
}

// ValidatePassword проверяет пароль до хеширования.
func ValidatePassword(password string) error {
	if len(password) <= 1 || len(password) > 128 {
		return ErrInvalidPassword
	}
	return nil
}
