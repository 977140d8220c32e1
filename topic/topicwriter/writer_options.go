package topicwriter

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/partlog/partlog-go-sdk/internal/config"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/trace"
)

type WriterConfig struct {
	config.Common

	Trace       trace.TopicWriter
	Queue       PartitionQueueConfig
	Partitioner Partitioner
	RetryPolicy retry.Policy

	// SenderConcurrency limits simultaneous put requests of all partitions.
	SenderConcurrency int

	// PartitionCheckInterval is the period of partition count refresh, zero disables it.
	PartitionCheckInterval time.Duration

	// StopTimeout bounds waiting for senders after Close gave up flushing.
	StopTimeout time.Duration
}

type WriterOption func(cfg *WriterConfig)

func newWriterConfig(opts ...WriterOption) WriterConfig {
	cfg := WriterConfig{
		Common: config.NewCommon(),
		Queue: PartitionQueueConfig{
			MaxPutMessageNumber: 1000,
			MaxPutMessageBytes:  4 << 20,
			MaxBufferedTime:     200 * time.Millisecond,
			MaxBufferedBytes:    64 << 20,
		},
		RetryPolicy:            retry.DefaultPolicy(),
		SenderConcurrency:      8,
		PartitionCheckInterval: time.Minute,
		StopTimeout:            5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Partitioner == nil {
		cfg.Partitioner = NewKeyHashPartitioner()
	}
	if cfg.SenderConcurrency <= 0 {
		cfg.SenderConcurrency = 1
	}

	return cfg
}

func WithClock(clock clockwork.Clock) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Clock = clock
	}
}

func WithLogger(l logrus.FieldLogger) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Logger = l
	}
}

func WithOperationTimeout(timeout time.Duration) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.OperationTimeout = timeout
	}
}

func WithTrace(tracer trace.TopicWriter) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Trace = cfg.Trace.Compose(tracer)
	}
}

// WithMaxPutMessageNumber set message count which triggers flush, also max messages in one put request.
func WithMaxPutMessageNumber(n int) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Queue.MaxPutMessageNumber = n
	}
}

// WithMaxPutMessageBytes set pending size which triggers flush, also max bytes in one put request.
func WithMaxPutMessageBytes(n int) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Queue.MaxPutMessageBytes = n
	}
}

// WithMaxBufferedTime bounds how long a message waits for a batch, zero disables the bound.
func WithMaxBufferedTime(d time.Duration) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Queue.MaxBufferedTime = d
	}
}

func WithMaxBufferedBytes(n int) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Queue.MaxBufferedBytes = n
	}
}

func WithMaxBufferedCount(n int) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Queue.MaxBufferedCount = n
	}
}

func WithBlockOnFull(block bool) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Queue.BlockOnFull = block
	}
}

func WithPartitioner(p Partitioner) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.Partitioner = p
	}
}

func WithRetryPolicy(p retry.Policy) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.RetryPolicy = p
	}
}

func WithSenderConcurrency(n int) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.SenderConcurrency = n
	}
}

func WithPartitionCheckInterval(d time.Duration) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.PartitionCheckInterval = d
	}
}

func WithStopTimeout(d time.Duration) WriterOption {
	return func(cfg *WriterConfig) {
		cfg.StopTimeout = d
	}
}
