package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Схемы хранения пароля
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// PasswordScheme — единственная точка сравнения паролей. Схема
// подменяется через конфигурацию, вызывающий код не меняется.
type PasswordScheme interface {
	Hash(password string) (string, error)
	Verify(stored, supplied string) bool
}

func NewPasswordScheme(name string) (PasswordScheme, error) {
	switch name {
	case SchemePlain, "":
		return PlainScheme{}, nil
	case SchemeBcrypt:
		return BcryptScheme{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme: %q", name)
	}
}

// PlainScheme хранит пароль как есть и сравнивает побайтово.
// Унаследовано от существующих данных; ровно поэтому сравнение
// изолировано за интерфейсом.
type PlainScheme struct{}

func (PlainScheme) Hash(password string) (string, error) {
	return password, nil
}

func (PlainScheme) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptScheme хранит соленый хэш
type BcryptScheme struct{}

func (BcryptScheme) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (BcryptScheme) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}
