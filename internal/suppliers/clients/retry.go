package clients

import (
	"net/http"
	"strconv"
	"time"
)

// RetryPolicy — ограниченные повторы на 429/503. Задержка берётся из
// серверной подсказки Retry-After, когда она есть, иначе экспоненциально
// растёт от BaseDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 4, BaseDelay: 500 * time.Millisecond}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	return p
}

// Delay возвращает паузу перед попыткой attempt+1.
// retryAfter — сырое значение заголовка Retry-After (секунды либо HTTP-дата).
func (p RetryPolicy) Delay(attempt int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
		if at, err := http.ParseTime(retryAfter); err == nil {
			if wait := time.Until(at); wait > 0 {
				return wait
			}
			return 0
		}
	}
	return p.BaseDelay << (attempt - 1)
}

// retryableStatus: повторяем только перегрузку, любой другой 4xx/5xx
// не лечится повтором.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}
