package coordinator

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/partlog/partlog-go-sdk/internal/config"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/trace"
)

type Config struct {
	config.Common

	Trace trace.Coordinator

	// MemberID is generated by NewMemberID if empty.
	MemberID string

	// HeartbeatInterval is the period of heartbeats and membership checks.
	HeartbeatInterval time.Duration

	// MaxStaleness is how long the member keeps its partitions while the registry
	// is unreachable. Zero means forever.
	MaxStaleness time.Duration

	// RetryPolicy is used for registration.
	RetryPolicy retry.Policy
}

type Option func(cfg *Config)

func newConfig(opts ...Option) Config {
	cfg := Config{
		Common:            config.NewCommon(),
		HeartbeatInterval: 3 * time.Second,
		MaxStaleness:      30 * time.Second,
		RetryPolicy:       retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MemberID == "" {
		cfg.MemberID = NewMemberID("partlog")
	}

	return cfg
}

func WithClock(clock clockwork.Clock) Option {
	return func(cfg *Config) {
		cfg.Clock = clock
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

func WithOperationTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.OperationTimeout = timeout
	}
}

func WithTrace(tracer trace.Coordinator) Option {
	return func(cfg *Config) {
		cfg.Trace = cfg.Trace.Compose(tracer)
	}
}

func WithMemberID(id string) Option {
	return func(cfg *Config) {
		cfg.MemberID = id
	}
}

func WithHeartbeatInterval(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.HeartbeatInterval = d
	}
}

func WithMaxStaleness(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.MaxStaleness = d
	}
}

func WithRetryPolicy(p retry.Policy) Option {
	return func(cfg *Config) {
		cfg.RetryPolicy = p
	}
}
