package topic

import (
	"context"

	internaltopic "github.com/partlog/partlog-go-sdk/internal/topic"
	"github.com/partlog/partlog-go-sdk/internal/topic/config"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/coordinator"
	"github.com/partlog/partlog-go-sdk/topic/topicreader"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/topicwriter"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

type Client interface {
	// Close closes every writer and reader started by the client.
	Close(context.Context) error

	DescribePartitions(ctx context.Context, topic string) ([]topictypes.PartitionID, error)

	StartWriter(ctx context.Context, topic string, opts ...topicwriter.WriterOption) (*topicwriter.Writer, error)

	StartReader(
		topic string,
		store checkpoint.Store,
		factory topicreader.MessageProcessorFactory,
		opts ...topicreader.ReaderOption,
	) (*topicreader.Reader, error)

	StartGroupReader(
		ctx context.Context,
		group, topic string,
		store checkpoint.Store,
		registry coordinator.Registry,
		factory topicreader.MessageProcessorFactory,
		opts ...topicreader.ReaderOption,
	) (*topicreader.GroupReader, error)
}

var _ Client = (*internaltopic.Client)(nil)

type Option = config.Option

func NewClient(tr transport.Transport, opts ...Option) Client {
	return internaltopic.New(tr, opts...)
}

var (
	WithClock              = config.WithClock
	WithLogger             = config.WithLogger
	WithOperationTimeout   = config.WithOperationTimeout
	WithWriterOptions      = config.WithWriterOptions
	WithReaderOptions      = config.WithReaderOptions
	WithCoordinatorOptions = config.WithCoordinatorOptions
)
