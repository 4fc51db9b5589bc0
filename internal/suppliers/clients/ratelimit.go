package clients

import (
	"time"

	"golang.org/x/time/rate"
)

// NewWindowLimiter строит клиентский лимитер "budget запросов на окно":
// burst равен бюджету окна, пополнение размазано по окну. Превышение бюджета
// блокирует вызов в Wait до освобождения окна — мы не стреляем запросом,
// чтобы узнать про 429 постфактум.
func NewWindowLimiter(budget int, window time.Duration) *rate.Limiter {
	if budget <= 0 || window <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(budget)), budget)
}
