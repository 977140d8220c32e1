package config

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Common is a part of config shared by the writer, the reader and the coordinator.
type Common struct {
	Clock  clockwork.Clock
	Logger logrus.FieldLogger

	// OperationTimeout bounds a single transport or store call.
	// If OperationTimeout is zero then no timeout is used.
	OperationTimeout time.Duration
}

func NewCommon() Common {
	return Common{
		Clock:  clockwork.NewRealClock(),
		Logger: logrus.StandardLogger(),
	}
}

type Option func(c *Common)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Common) {
		c.Clock = clock
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Common) {
		c.Logger = l
	}
}

// WithOperationTimeout set the maximum amount of time of one transport call.
func WithOperationTimeout(operationTimeout time.Duration) Option {
	return func(c *Common) {
		c.OperationTimeout = operationTimeout
	}
}

func New(opts ...Option) Common {
	c := NewCommon()
	for _, o := range opts {
		o(&c)
	}

	return c
}
