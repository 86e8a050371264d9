package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/stats"
)

type StatsRepository struct {
	mu      sync.RWMutex
	records []stats.Record
}

func NewStatsRepository(records []stats.Record) *StatsRepository {
	return &StatsRepository{records: append([]stats.Record(nil), records...)}
}

func (r *StatsRepository) Add(records ...stats.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
}

func (r *StatsRepository) ListByGameTimeRange(_ context.Context, start, end time.Time) ([]stats.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.Record, 0)
	for _, record := range r.records {
		if !record.GameTime.Before(start) && record.GameTime.Before(end) {
			out = append(out, record)
		}
	}
	return out, nil
}
