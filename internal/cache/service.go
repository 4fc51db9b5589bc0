package cache

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"printshop_api/internal/core/models"
	"printshop_api/metrics"
	"printshop_api/pkg/logger"
)

const defaultCostPerCall = 0.01

// Service оборачивает внешний кэш и деградирует без него: ни одна ошибка
// бэкенда не доходит до вызывающего — она логируется, считается в метриках
// и превращается в промах.
type Service struct {
	store       Store
	log         logger.Logger
	stats       statsCounter
	ttl         TTLConfig
	costPerCall float64
	enabled     bool
}

type ServiceOption func(*Service)

// WithTTLConfig переопределяет длительности TTL по категориям.
func WithTTLConfig(ttl TTLConfig) ServiceOption {
	return func(s *Service) { s.ttl = ttl }
}

// WithCostPerCall задаёт оценку стоимости одного сетевого вызова
// для расчёта экономии.
func WithCostPerCall(cost float64) ServiceOption {
	return func(s *Service) {
		if cost > 0 {
			s.costPerCall = cost
		}
	}
}

// NewService проверяет доступность бэкенда одним пингом. store может быть
// nil — тогда кэш выключен, все операции корректно отвечают "мимо".
func NewService(store Store, writer io.Writer, opts ...ServiceOption) *Service {
	s := &Service{
		store:       store,
		log:         logger.NewLogger(writer, "[CACHE]"),
		ttl:         DefaultTTLConfig(),
		costPerCall: defaultCostPerCall,
	}
	for _, opt := range opts {
		opt(s)
	}

	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			s.log.Log("cache backend unreachable, running without cache: %v", err)
		} else {
			s.enabled = true
		}
	}
	return s
}

// Enabled сообщает, стоит ли рассчитывать на кэш. Вызывающие используют
// это, чтобы пропускать оптимизации, зависящие от кэша.
func (s *Service) Enabled() bool { return s.enabled }

// Get декодирует закэшированное значение в dest. false — значение
// отсутствует, истекло или бэкенд недоступен; различие вызывающему не нужно.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.enabled {
		s.stats.miss()
		return false
	}

	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Log("get %s failed: %v", key, err)
		metrics.RecordCacheError("get")
		s.stats.miss()
		return false
	}
	if !found {
		s.stats.miss()
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// Битая запись: убираем, чтобы не спотыкаться о неё повторно.
		s.log.Log("corrupt cache entry %s, dropping: %v", key, err)
		s.Delete(ctx, key)
		s.stats.miss()
		return false
	}

	s.stats.hit()
	return true
}

// Set сериализует и сохраняет значение. false при любой неудаче (логируется).
func (s *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	if !s.enabled {
		return false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Log("marshal for %s failed: %v", key, err)
		return false
	}
	if err := s.store.Set(ctx, key, string(raw), ttl); err != nil {
		s.log.Log("set %s failed: %v", key, err)
		metrics.RecordCacheError("set")
		return false
	}
	return true
}

// Delete удаляет один ключ.
func (s *Service) Delete(ctx context.Context, key string) bool {
	if !s.enabled {
		return false
	}
	if _, err := s.store.Del(ctx, key); err != nil {
		s.log.Log("delete %s failed: %v", key, err)
		metrics.RecordCacheError("delete")
		return false
	}
	return true
}

// DeletePattern снимает все ключи по glob-шаблону, возвращая число удалённых.
func (s *Service) DeletePattern(ctx context.Context, pattern string) int {
	if !s.enabled {
		return 0
	}

	keys, err := s.store.Keys(ctx, pattern)
	if err != nil {
		s.log.Log("scan %s failed: %v", pattern, err)
		metrics.RecordCacheError("scan")
		return 0
	}
	if len(keys) == 0 {
		return 0
	}

	deleted, err := s.store.Del(ctx, keys...)
	if err != nil {
		s.log.Log("bulk delete %s failed: %v", pattern, err)
		metrics.RecordCacheError("delete")
		return 0
	}
	s.log.Log("invalidated %d keys matching %s", deleted, pattern)
	return deleted
}

// Stats — снапшот счётчиков с производными hit rate и экономией.
func (s *Service) Stats() models.CacheStats {
	return s.stats.snapshot(s.costPerCall)
}

func (s *Service) ResetStats() {
	s.stats.reset()
}
