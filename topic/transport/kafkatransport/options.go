package kafkatransport

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/segmentio/kafka-go"

	"github.com/partlog/partlog-go-sdk/topic/topiccodec"
)

type Config struct {
	Clock clockwork.Clock

	// Timeout bounds a whole request to kafka including dialing, zero means no timeout.
	Timeout time.Duration

	// MaxWait is how long a broker holds a fetch with no new records.
	MaxWait time.Duration

	// DefaultMaxBytes limits fetch response size when GetMessages is called without a limit.
	DefaultMaxBytes int

	RequiredAcks kafka.RequiredAcks

	// Codec compresses produced batches, CodecUnspecified and CodecRaw send them as is.
	Codec topiccodec.Codec
}

type Option func(cfg *Config)

func newConfig(opts ...Option) Config {
	cfg := Config{
		Clock:           clockwork.NewRealClock(),
		Timeout:         10 * time.Second,
		MaxWait:         500 * time.Millisecond,
		DefaultMaxBytes: 1 << 20,
		RequiredAcks:    kafka.RequireAll,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func WithClock(clock clockwork.Clock) Option {
	return func(cfg *Config) {
		cfg.Clock = clock
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.Timeout = timeout
	}
}

func WithMaxWait(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.MaxWait = d
	}
}

func WithDefaultMaxBytes(n int) Option {
	return func(cfg *Config) {
		cfg.DefaultMaxBytes = n
	}
}

func WithRequiredAcks(acks kafka.RequiredAcks) Option {
	return func(cfg *Config) {
		cfg.RequiredAcks = acks
	}
}

func WithCodec(codec topiccodec.Codec) Option {
	return func(cfg *Config) {
		cfg.Codec = codec
	}
}

func compression(codec topiccodec.Codec) kafka.Compression {
	switch codec {
	case topiccodec.CodecGzip:
		return kafka.Gzip
	case topiccodec.CodecSnappy:
		return kafka.Snappy
	case topiccodec.CodecLz4:
		return kafka.Lz4
	case topiccodec.CodecZstd:
		return kafka.Zstd
	default:
		return 0
	}
}
