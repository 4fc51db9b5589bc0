package cache

import (
	"sync"

	"printshop_api/internal/core/models"
)

// statsCounter — счётчики попаданий на процесс. Не скрытый синглтон:
// живёт внутри Service и сбрасывается явно.
type statsCounter struct {
	mu              sync.Mutex
	hits            int64
	misses          int64
	apiCallsAvoided int64
}

func (s *statsCounter) hit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits++
	s.apiCallsAvoided++
}

func (s *statsCounter) miss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.misses++
}

func (s *statsCounter) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits, s.misses, s.apiCallsAvoided = 0, 0, 0
}

// snapshot считает производные метрики в момент снятия.
func (s *statsCounter) snapshot(costPerCall float64) models.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.CacheStats{
		Hits:            s.hits,
		Misses:          s.misses,
		APICallsAvoided: s.apiCallsAvoided,
	}
	if total := s.hits + s.misses; total > 0 {
		stats.HitRate = float64(s.hits) / float64(total)
	}
	stats.EstimatedCostSavings = float64(s.hits) * costPerCall
	return stats
}
