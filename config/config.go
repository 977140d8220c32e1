// Package config loads writer, reader and coordinator settings from a yaml file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/coordinator"
	"github.com/partlog/partlog-go-sdk/topic/topiccodec"
	"github.com/partlog/partlog-go-sdk/topic/topicreader"
	"github.com/partlog/partlog-go-sdk/topic/topicwriter"
)

// Config is the file schema. Zero values keep defaults of the components.
type Config struct {
	OperationTimeout time.Duration     `yaml:"operation_timeout"`
	Transport        TransportConfig   `yaml:"transport"`
	Etcd             EtcdConfig        `yaml:"etcd"`
	Producer         ProducerConfig    `yaml:"producer"`
	Consumer         ConsumerConfig    `yaml:"consumer"`
	Coordinator      CoordinatorConfig `yaml:"coordinator"`
	Retry            *RetryConfig      `yaml:"retry"`
}

type TransportConfig struct {
	// Kind is grpc or kafka.
	Kind  string   `yaml:"kind"`
	Addrs []string `yaml:"addrs"`
	Codec string   `yaml:"codec"`
}

type EtcdConfig struct {
	Endpoints   []string      `yaml:"endpoints"`
	Prefix      string        `yaml:"prefix"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type ProducerConfig struct {
	MaxPutMessageNumber int   `yaml:"max_put_message_number"`
	MaxPutMessageBytes  int   `yaml:"max_put_message_bytes"`
	MaxBufferedBytes    int   `yaml:"max_buffered_bytes"`
	MaxBufferedCount    int   `yaml:"max_buffered_count"`
	MaxBufferedMillis   int64 `yaml:"max_buffered_millis"`
	BlockOnFull         bool  `yaml:"block_on_full"`
}

type ConsumerConfig struct {
	InitialPosition   string        `yaml:"initial_position"`
	CheckpointMode    string        `yaml:"checkpoint_mode"`
	MaxFetchCount     int           `yaml:"max_fetch_count"`
	MaxFetchBytes     int           `yaml:"max_fetch_bytes"`
	EmptyFetchBackoff time.Duration `yaml:"empty_fetch_backoff"`
}

type CoordinatorConfig struct {
	Group             string        `yaml:"group"`
	MemberID          string        `yaml:"member_id"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	MaxStaleness      time.Duration `yaml:"max_staleness"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	Factor         float64       `yaml:"factor"`
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, xerrors.WithStackTrace(fmt.Errorf("partlog: read config: %w", err))
	}

	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, xerrors.WithStackTrace(fmt.Errorf("partlog: parse config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Transport.Kind {
	case "", "grpc", "kafka":
	default:
		return invalid("transport.kind", c.Transport.Kind)
	}
	if _, err := topiccodec.Parse(c.Transport.Codec); err != nil {
		return invalid("transport.codec", c.Transport.Codec)
	}
	if _, err := topicreader.ParseInitialPosition(c.Consumer.InitialPosition); err != nil {
		return invalid("consumer.initial_position", c.Consumer.InitialPosition)
	}
	if _, err := topicreader.ParseCheckpointMode(c.Consumer.CheckpointMode); err != nil {
		return invalid("consumer.checkpoint_mode", c.Consumer.CheckpointMode)
	}
	if c.Producer.MaxBufferedMillis < 0 {
		return invalid("producer.max_buffered_millis", c.Producer.MaxBufferedMillis)
	}
	if c.Retry != nil && c.Retry.Factor != 0 && c.Retry.Factor < 1 {
		return invalid("retry.factor", c.Retry.Factor)
	}

	return nil
}

func invalid(key string, value interface{}) error {
	return xerrors.WithStackTrace(fmt.Errorf("partlog: invalid value %v of %s", value, key))
}

// Codec of the transport, CodecUnspecified for an invalid name.
func (c Config) Codec() topiccodec.Codec {
	codec, _ := topiccodec.Parse(c.Transport.Codec)

	return codec
}

// RetryPolicy overrides fields of retry.DefaultPolicy set in the file.
func (c Config) RetryPolicy() (retry.Policy, bool) {
	if c.Retry == nil {
		return retry.Policy{}, false
	}

	p := retry.DefaultPolicy()
	if c.Retry.MaxAttempts != 0 {
		p.MaxAttempts = c.Retry.MaxAttempts
	}
	if c.Retry.InitialBackoff > 0 {
		p.InitialBackoff = c.Retry.InitialBackoff
	}
	if c.Retry.MaxBackoff > 0 {
		p.MaxBackoff = c.Retry.MaxBackoff
	}
	if c.Retry.Factor != 0 {
		p.Factor = c.Retry.Factor
	}

	return p, true
}

func (c Config) WriterOptions() []topicwriter.WriterOption {
	var opts []topicwriter.WriterOption
	if c.OperationTimeout > 0 {
		opts = append(opts, topicwriter.WithOperationTimeout(c.OperationTimeout))
	}
	if p := c.Producer; p.MaxPutMessageNumber > 0 {
		opts = append(opts, topicwriter.WithMaxPutMessageNumber(p.MaxPutMessageNumber))
	}
	if p := c.Producer; p.MaxPutMessageBytes > 0 {
		opts = append(opts, topicwriter.WithMaxPutMessageBytes(p.MaxPutMessageBytes))
	}
	if p := c.Producer; p.MaxBufferedBytes > 0 {
		opts = append(opts, topicwriter.WithMaxBufferedBytes(p.MaxBufferedBytes))
	}
	if p := c.Producer; p.MaxBufferedCount > 0 {
		opts = append(opts, topicwriter.WithMaxBufferedCount(p.MaxBufferedCount))
	}
	if p := c.Producer; p.MaxBufferedMillis > 0 {
		opts = append(opts, topicwriter.WithMaxBufferedTime(time.Duration(p.MaxBufferedMillis)*time.Millisecond))
	}
	if c.Producer.BlockOnFull {
		opts = append(opts, topicwriter.WithBlockOnFull(true))
	}
	if p, ok := c.RetryPolicy(); ok {
		opts = append(opts, topicwriter.WithRetryPolicy(p))
	}

	return opts
}

// ReaderOptions expects a validated config, invalid enums keep defaults.
func (c Config) ReaderOptions() []topicreader.ReaderOption {
	var opts []topicreader.ReaderOption
	if c.OperationTimeout > 0 {
		opts = append(opts, topicreader.WithOperationTimeout(c.OperationTimeout))
	}
	if pos, err := topicreader.ParseInitialPosition(c.Consumer.InitialPosition); err == nil {
		opts = append(opts, topicreader.WithInitialPosition(pos))
	}
	if mode, err := topicreader.ParseCheckpointMode(c.Consumer.CheckpointMode); err == nil {
		opts = append(opts, topicreader.WithCheckpointMode(mode))
	}
	if c.Consumer.MaxFetchCount > 0 {
		opts = append(opts, topicreader.WithMaxFetchCount(c.Consumer.MaxFetchCount))
	}
	if c.Consumer.MaxFetchBytes > 0 {
		opts = append(opts, topicreader.WithMaxFetchBytes(c.Consumer.MaxFetchBytes))
	}
	if c.Consumer.EmptyFetchBackoff > 0 {
		opts = append(opts, topicreader.WithEmptyFetchBackoff(c.Consumer.EmptyFetchBackoff))
	}
	if p, ok := c.RetryPolicy(); ok {
		opts = append(opts, topicreader.WithRetryPolicy(p))
	}

	return opts
}

func (c Config) CoordinatorOptions() []coordinator.Option {
	var opts []coordinator.Option
	if c.OperationTimeout > 0 {
		opts = append(opts, coordinator.WithOperationTimeout(c.OperationTimeout))
	}
	if c.Coordinator.MemberID != "" {
		opts = append(opts, coordinator.WithMemberID(c.Coordinator.MemberID))
	}
	if c.Coordinator.HeartbeatInterval > 0 {
		opts = append(opts, coordinator.WithHeartbeatInterval(c.Coordinator.HeartbeatInterval))
	}
	if c.Coordinator.MaxStaleness > 0 {
		opts = append(opts, coordinator.WithMaxStaleness(c.Coordinator.MaxStaleness))
	}
	if p, ok := c.RetryPolicy(); ok {
		opts = append(opts, coordinator.WithRetryPolicy(p))
	}

	return opts
}
