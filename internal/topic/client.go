package topic

import (
	"context"
	"errors"
	"fmt"

	"github.com/partlog/partlog-go-sdk/internal/topic/config"
	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/coordinator"
	"github.com/partlog/partlog-go-sdk/topic/topicreader"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/topicwriter"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

var ErrClientClosed = errors.New("partlog: topic client closed")

type closer interface {
	Close(ctx context.Context) error
}

// Client starts writers and readers over one transport and closes them on Close.
type Client struct {
	cfg       config.Config
	transport transport.Transport

	m       xsync.Mutex
	started []closer
	closed  bool
}

func New(tr transport.Transport, opts ...config.Option) *Client {
	return &Client{
		cfg:       config.New(opts...),
		transport: tr,
	}
}

func (c *Client) DescribePartitions(ctx context.Context, topic string) ([]topictypes.PartitionID, error) {
	ctx, cancel := c.cfg.OperationContext(ctx)
	defer cancel()

	partitions, err := c.transport.DescribePartitions(ctx, topic)
	if err != nil {
		return nil, xerrors.WithStackTrace(fmt.Errorf("partlog: describe partitions of %q: %w", topic, err))
	}

	return partitions, nil
}

func (c *Client) StartWriter(
	ctx context.Context,
	topic string,
	opts ...topicwriter.WriterOption,
) (*topicwriter.Writer, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	w, err := topicwriter.NewWriter(ctx, c.transport, topic, c.cfg.WriterOptions(opts...)...)
	if err != nil {
		return nil, err
	}

	if err = c.track(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

// StartReader creates a reader of topic. Partitions are started by the caller.
func (c *Client) StartReader(
	topic string,
	store checkpoint.Store,
	factory topicreader.MessageProcessorFactory,
	opts ...topicreader.ReaderOption,
) (*topicreader.Reader, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	r := topicreader.NewReader(c.transport, store, topic, factory, c.cfg.ReaderOptions(opts...)...)
	if err := c.track(context.Background(), r); err != nil {
		return nil, err
	}

	return r, nil
}

// StartGroupReader joins group and reads partitions of topic assigned to the member.
func (c *Client) StartGroupReader(
	ctx context.Context,
	group, topic string,
	store checkpoint.Store,
	registry coordinator.Registry,
	factory topicreader.MessageProcessorFactory,
	opts ...topicreader.ReaderOption,
) (*topicreader.GroupReader, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	g, err := topicreader.StartGroupReader(ctx, c.transport, store, registry, group, topic, factory,
		c.cfg.ReaderOptions(opts...), c.cfg.CoordinatorOptions(),
	)
	if err != nil {
		return nil, err
	}

	if err = c.track(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// Close closes everything the client started, the latest first.
func (c *Client) Close(ctx context.Context) error {
	var started []closer
	c.m.WithLock(func() {
		if c.closed {
			return
		}
		c.closed = true
		started, c.started = c.started, nil
	})

	var errs []error
	for i := len(started) - 1; i >= 0; i-- {
		if err := started[i].Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (c *Client) checkOpen() (err error) {
	c.m.WithLock(func() {
		if c.closed {
			err = xerrors.WithStackTrace(ErrClientClosed)
		}
	})

	return err
}

// track remembers started for Close, or closes it if the client was closed meanwhile.
func (c *Client) track(ctx context.Context, started closer) error {
	var closed bool
	c.m.WithLock(func() {
		closed = c.closed
		if !closed {
			c.started = append(c.started, started)
		}
	})
	if !closed {
		return nil
	}

	return errors.Join(xerrors.WithStackTrace(ErrClientClosed), started.Close(ctx))
}
