package clients

import (
	"errors"
	"fmt"

	"printshop_api/internal/core/models"
)

// ErrNotFound возвращается на HTTP 404 одиночных выборок: вызывающий обязан
// отличать "товара нет" от транзиентного отказа.
var ErrNotFound = errors.New("resource not found")

// RateLimitError — 429/503 после исчерпания всех попыток ретрая.
type RateLimitError struct {
	Supplier   models.Supplier
	Endpoint   string
	Attempts   int
	LastStatus int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: %s rate limited after %d attempts (last status %d)",
		e.Supplier, e.Endpoint, e.Attempts, e.LastStatus)
}

// AuthError — отказ логина либо отклонённые учётные данные (401/403).
// Не ретраится: бесконечные повторы с теми же кредами бессмысленны.
type AuthError struct {
	Supplier models.Supplier
	Status   int
	Reason   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed (status %d): %s", e.Supplier, e.Status, e.Reason)
}

// ValidationError — некорректный вход или неполная конфигурация адаптера.
// Поднимается синхронно, до любого сетевого вызова.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}
