package memory

import (
	"context"
	"sync"
)

// TxManager serializes units of work with a plain mutex. The in-memory
// repositories mutate shared maps directly, so "transaction" here means
// mutual exclusion, not rollback; tests that need rollback semantics assert
// on the error path before any write happens.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
