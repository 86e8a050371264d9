package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/audit"
)

type AuditRepository struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Append(_ context.Context, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

// List returns entries newest first, matching the Postgres ordering.
func (r *AuditRepository) List(_ context.Context, filter audit.ListFilter) ([]audit.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]audit.Entry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if filter.TeamID != "" && entry.TeamID != filter.TeamID {
			continue
		}
		matched = append(matched, entry)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []audit.Entry{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// All returns every entry in insertion order. Test helper.
func (r *AuditRepository) All() []audit.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]audit.Entry(nil), r.entries...)
}
