package config

import "context"

// OperationContext returns ctx bounded by OperationTimeout.
func (c Common) OperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.OperationTimeout)
}
