package config

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/partlog/partlog-go-sdk/internal/config"
	"github.com/partlog/partlog-go-sdk/topic/coordinator"
	"github.com/partlog/partlog-go-sdk/topic/topicreader"
	"github.com/partlog/partlog-go-sdk/topic/topicwriter"
)

// Config of a topic client. Common settings are passed to every writer,
// reader and coordinator the client starts, before their own options.
type Config struct {
	config.Common

	writerOptions      []topicwriter.WriterOption
	readerOptions      []topicreader.ReaderOption
	coordinatorOptions []coordinator.Option
}

func (c Config) WriterOptions(opts ...topicwriter.WriterOption) []topicwriter.WriterOption {
	res := []topicwriter.WriterOption{
		topicwriter.WithClock(c.Clock),
		topicwriter.WithLogger(c.Logger),
		topicwriter.WithOperationTimeout(c.OperationTimeout),
	}
	res = append(res, c.writerOptions...)

	return append(res, opts...)
}

func (c Config) ReaderOptions(opts ...topicreader.ReaderOption) []topicreader.ReaderOption {
	res := []topicreader.ReaderOption{
		topicreader.WithClock(c.Clock),
		topicreader.WithLogger(c.Logger),
		topicreader.WithOperationTimeout(c.OperationTimeout),
	}
	res = append(res, c.readerOptions...)

	return append(res, opts...)
}

func (c Config) CoordinatorOptions(opts ...coordinator.Option) []coordinator.Option {
	res := []coordinator.Option{
		coordinator.WithClock(c.Clock),
		coordinator.WithLogger(c.Logger),
		coordinator.WithOperationTimeout(c.OperationTimeout),
	}
	res = append(res, c.coordinatorOptions...)

	return append(res, opts...)
}

type Option func(c *Config)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithOperationTimeout set the maximum amount of time of one transport or store call.
// If OperationTimeout is zero then no timeout is used.
func WithOperationTimeout(operationTimeout time.Duration) Option {
	return func(c *Config) {
		c.OperationTimeout = operationTimeout
	}
}

// WithWriterOptions defines defaults of every writer started by the client.
func WithWriterOptions(opts ...topicwriter.WriterOption) Option {
	return func(c *Config) {
		c.writerOptions = append(c.writerOptions, opts...)
	}
}

// WithReaderOptions defines defaults of every reader started by the client.
func WithReaderOptions(opts ...topicreader.ReaderOption) Option {
	return func(c *Config) {
		c.readerOptions = append(c.readerOptions, opts...)
	}
}

// WithCoordinatorOptions defines defaults of every group membership of the client.
func WithCoordinatorOptions(opts ...coordinator.Option) Option {
	return func(c *Config) {
		c.coordinatorOptions = append(c.coordinatorOptions, opts...)
	}
}

func New(opts ...Option) Config {
	c := Config{
		Common: config.NewCommon(),
	}
	for _, o := range opts {
		o(&c)
	}

	return c
}
