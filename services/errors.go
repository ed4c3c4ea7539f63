package services

import "errors"

// Ошибки бизнес-логики; обработчики различают их через errors.Is
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)
