package txmanager

import "context"

// Manager is the explicit unit-of-work boundary. Every core operation runs
// inside exactly one WithinTx call: fn's error rolls the whole transaction
// back, nil commits it. Implementations carry the live transaction in the
// derived context so repositories join it transparently.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
