package topicreader

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/partlog/partlog-go-sdk/internal/config"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/trace"
)

// InitialPosition selects where to start reading a partition without checkpoint.
type InitialPosition int

const (
	InitialPositionEarliest InitialPosition = iota
	InitialPositionLatest
)

func (p InitialPosition) String() string {
	switch p {
	case InitialPositionEarliest:
		return "earliest"
	case InitialPositionLatest:
		return "latest"
	default:
		return fmt.Sprintf("InitialPosition(%d)", int(p))
	}
}

func ParseInitialPosition(s string) (InitialPosition, error) {
	switch strings.ToLower(s) {
	case "", "earliest":
		return InitialPositionEarliest, nil
	case "latest":
		return InitialPositionLatest, nil
	default:
		return 0, fmt.Errorf("partlog: unknown initial position %q", s)
	}
}

type CheckpointMode int

const (
	// CheckpointAuto commits the end of a batch after the processor handled it without error.
	CheckpointAuto CheckpointMode = iota

	// CheckpointManual commits only when the processor calls its Checkpointer.
	CheckpointManual
)

func (m CheckpointMode) String() string {
	switch m {
	case CheckpointAuto:
		return "auto"
	case CheckpointManual:
		return "manual"
	default:
		return fmt.Sprintf("CheckpointMode(%d)", int(m))
	}
}

func ParseCheckpointMode(s string) (CheckpointMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return CheckpointAuto, nil
	case "manual":
		return CheckpointManual, nil
	default:
		return 0, fmt.Errorf("partlog: unknown checkpoint mode %q", s)
	}
}

type ReaderConfig struct {
	config.Common

	Trace           trace.TopicReader
	InitialPosition InitialPosition
	CheckpointMode  CheckpointMode
	RetryPolicy     retry.Policy

	MaxFetchCount int
	MaxFetchBytes int

	// EmptyFetchBackoff is a pause after a fetch returned nothing.
	EmptyFetchBackoff time.Duration

	// ProcessRetryBackoff is a pause before redelivery of a batch the processor failed.
	ProcessRetryBackoff time.Duration

	// FetchPauseInterval is a pause after fetch retries are exhausted.
	FetchPauseInterval time.Duration

	// OnStale is called when the reader lost a partition because another owner moved its checkpoint.
	OnStale func(partition topictypes.PartitionID, err error)
}

type ReaderOption func(cfg *ReaderConfig)

func newReaderConfig(opts ...ReaderOption) ReaderConfig {
	cfg := ReaderConfig{
		Common:              config.NewCommon(),
		RetryPolicy:         retry.DefaultPolicy(),
		MaxFetchCount:       500,
		MaxFetchBytes:       1 << 20,
		EmptyFetchBackoff:   500 * time.Millisecond,
		ProcessRetryBackoff: time.Second,
		FetchPauseInterval:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxFetchCount <= 0 {
		cfg.MaxFetchCount = 1
	}

	return cfg
}

func WithClock(clock clockwork.Clock) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.Clock = clock
	}
}

func WithLogger(l logrus.FieldLogger) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.Logger = l
	}
}

func WithOperationTimeout(timeout time.Duration) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.OperationTimeout = timeout
	}
}

func WithTrace(tracer trace.TopicReader) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.Trace = cfg.Trace.Compose(tracer)
	}
}

func WithInitialPosition(p InitialPosition) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.InitialPosition = p
	}
}

func WithCheckpointMode(mode CheckpointMode) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.CheckpointMode = mode
	}
}

func WithRetryPolicy(p retry.Policy) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.RetryPolicy = p
	}
}

// WithMaxFetchCount limits messages of one batch passed to the processor.
func WithMaxFetchCount(n int) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.MaxFetchCount = n
	}
}

// WithMaxFetchBytes limits bytes of one batch, the first message is returned even if it is larger.
func WithMaxFetchBytes(n int) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.MaxFetchBytes = n
	}
}

func WithEmptyFetchBackoff(d time.Duration) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.EmptyFetchBackoff = d
	}
}

func WithProcessRetryBackoff(d time.Duration) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.ProcessRetryBackoff = d
	}
}

func WithFetchPauseInterval(d time.Duration) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.FetchPauseInterval = d
	}
}

func WithOnStale(f func(partition topictypes.PartitionID, err error)) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.OnStale = f
	}
}
