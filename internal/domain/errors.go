package domain

import (
	"errors"
	"strings"
)

// Сентинельные ошибки доменного слоя.
// Хендлеры переводят их в HTTP-статусы; наружу детали не утекают.
var (
	// ErrNotFound — ресурс отсутствует или принадлежит другому пользователю.
	// Эти два случая намеренно неразличимы для вызывающего.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated — отсутствующий, неизвестный или испорченный токен.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError — структурная ошибка валидации: поле -> список сообщений.
// Сериализуется в тело ответа 400 как есть.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add добавляет сообщение к полю.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty сообщает, накопились ли ошибки.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AuthenticationError — неверные учетные данные при выдаче токена.
// Не привязана к конкретному полю формы (non_field_errors в ответе).
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AsValidation возвращает *ValidationError, если err им является.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsAuthentication возвращает *AuthenticationError, если err им является.
func AsAuthentication(err error) (*AuthenticationError, bool) {
	var ae *AuthenticationError
	ok := errors.As(err, &ae)
	return ae, ok
}
