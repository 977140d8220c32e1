package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set"

	"github.com/partlog/partlog-go-sdk/internal/backgroundworkers"
	"github.com/partlog/partlog-go-sdk/internal/metrics"
	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
	"github.com/partlog/partlog-go-sdk/log"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/trace"
)

var (
	ErrCoordinatorStarted = errors.New("partlog: coordinator already started")
	ErrCoordinatorStopped = errors.New("partlog: coordinator stopped")
)

// PartitionDescriber lists partitions of a topic, transport.Transport implements it.
type PartitionDescriber interface {
	DescribePartitions(ctx context.Context, topic string) ([]topictypes.PartitionID, error)
}

// PartitionConsumer reads partitions given to the member, topicreader.Reader implements it.
type PartitionConsumer interface {
	StartPartition(ctx context.Context, partition topictypes.PartitionID, generation int64) error
	StopPartition(ctx context.Context, partition topictypes.PartitionID) error

	// Partitions returns partitions read now. A consumer may drop a partition by itself,
	// for example after another owner moved its checkpoint.
	Partitions() []topictypes.PartitionID
}

// Coordinator keeps the member in a consumer group and makes the consumer
// read exactly the partitions assigned to the member.
//
// While the registry is unreachable the member keeps its partitions,
// but not longer than MaxStaleness after the last successful heartbeat.
type Coordinator struct {
	cfg        Config
	group      string
	topic      string
	registry   Registry
	describer  PartitionDescriber
	consumer   PartitionConsumer
	background *backgroundworkers.BackgroundWorker

	// ops serializes membership operations of the loop, Start and Stop.
	ops            sync.Mutex
	owned          mapset.Set
	lastMembers    []string
	lastPartitions []topictypes.PartitionID
	lastHeartbeat  time.Time
	started        bool

	m          xsync.RWMutex
	state      MemberState
	generation int64
	assignment PartitionAssignment
}

func New(
	registry Registry,
	describer PartitionDescriber,
	consumer PartitionConsumer,
	group, topic string,
	opts ...Option,
) *Coordinator {
	cfg := newConfig(opts...)
	cfg.Trace = log.Coordinator(cfg.Logger).Compose(cfg.Trace)

	return &Coordinator{
		cfg:        cfg,
		group:      group,
		topic:      topic,
		registry:   registry,
		describer:  describer,
		consumer:   consumer,
		background: backgroundworkers.New(context.Background()),
		owned:      mapset.NewThreadUnsafeSet(),
	}
}

func (c *Coordinator) MemberID() string {
	return c.cfg.MemberID
}

func (c *Coordinator) State() (s MemberState) {
	c.m.WithRLock(func() {
		s = c.state
	})

	return s
}

// Assignment returns the last assignment of the group known to the member.
func (c *Coordinator) Assignment() (a PartitionAssignment) {
	c.m.WithRLock(func() {
		a = c.assignment
	})

	return a
}

func (c *Coordinator) Generation() (g int64) {
	c.m.WithRLock(func() {
		g = c.generation
	})

	return g
}

// Start registers the member, takes its partitions and starts the heartbeat loop.
func (c *Coordinator) Start(ctx context.Context) error {
	c.ops.Lock()
	defer c.ops.Unlock()

	switch {
	case c.State() == MemberStateLeft:
		return xerrors.WithStackTrace(ErrCoordinatorStopped)
	case c.started:
		return xerrors.WithStackTrace(ErrCoordinatorStarted)
	}

	c.setState(MemberStateJoining)
	if err := c.register(ctx); err != nil {
		return err
	}
	c.started = true
	c.syncAssignment(ctx)

	if !c.background.Start("coordinator-"+c.group, c.loop) {
		return xerrors.WithStackTrace(ErrCoordinatorStopped)
	}

	return nil
}

// Stop releases all partitions and leaves the group. ctx bounds waiting for the consumer.
// Repeated calls do nothing.
func (c *Coordinator) Stop(ctx context.Context) error {
	if c.State() == MemberStateLeft {
		return nil
	}

	loopErr := c.background.Close(ctx, xerrors.WithStackTrace(ErrCoordinatorStopped))

	c.ops.Lock()
	defer c.ops.Unlock()

	if c.State() == MemberStateLeft {
		return nil
	}

	stopErr := c.releaseAll(ctx)
	leaveErr := c.registry.Leave(ctx, c.group, c.cfg.MemberID)
	c.setState(MemberStateLeft)

	return errors.Join(loopErr, stopErr, leaveErr)
}

func (c *Coordinator) loop(ctx context.Context) {
	ticker := c.cfg.Clock.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.ops.Lock()
			c.refresh(ctx)
			c.ops.Unlock()
		}
	}
}

// refresh makes one heartbeat and rebalances if members or partitions changed.
func (c *Coordinator) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if c.State() == MemberStateJoining {
		if err := c.register(ctx); err != nil {
			c.onRegistryError(ctx, err)

			return
		}
	} else if err := c.heartbeat(ctx); err != nil {
		if !errors.Is(err, ErrMemberExpired) {
			c.onRegistryError(ctx, err)

			return
		}

		c.traceRegistryError(err)
		_ = c.releaseAll(ctx)
		c.setState(MemberStateJoining)
		if err = c.register(ctx); err != nil {
			c.onRegistryError(ctx, err)

			return
		}
	}

	c.syncAssignment(ctx)
}

// syncAssignment reads members and partitions after a successful heartbeat.
func (c *Coordinator) syncAssignment(ctx context.Context) {
	members, err := c.members(ctx)
	if err != nil {
		c.onRegistryError(ctx, err)

		return
	}
	c.lastHeartbeat = c.cfg.Clock.Now()

	partitions, err := c.partitions(ctx)
	if err != nil {
		c.traceRegistryError(err)

		return
	}

	c.rebalance(ctx, members, partitions)
}

func (c *Coordinator) register(ctx context.Context) error {
	_, err := retry.Do(ctx, c.cfg.Clock, c.cfg.RetryPolicy, func(ctx context.Context, attempt int) error {
		opCtx, cancel := c.cfg.OperationContext(ctx)
		defer cancel()

		return c.registry.Register(opCtx, c.group, c.cfg.MemberID)
	}, nil)
	if err != nil {
		return xerrors.WithStackTrace(fmt.Errorf("partlog: register %s in group %s: %w", c.cfg.MemberID, c.group, err))
	}
	c.lastHeartbeat = c.cfg.Clock.Now()

	return nil
}

func (c *Coordinator) heartbeat(ctx context.Context) error {
	opCtx, cancel := c.cfg.OperationContext(ctx)
	defer cancel()

	return c.registry.Heartbeat(opCtx, c.group, c.cfg.MemberID)
}

func (c *Coordinator) members(ctx context.Context) ([]string, error) {
	opCtx, cancel := c.cfg.OperationContext(ctx)
	defer cancel()

	return c.registry.Members(opCtx, c.group)
}

func (c *Coordinator) partitions(ctx context.Context) ([]topictypes.PartitionID, error) {
	opCtx, cancel := c.cfg.OperationContext(ctx)
	defer cancel()

	partitions, err := c.describer.DescribePartitions(opCtx, c.topic)
	if err != nil {
		return nil, xerrors.WithStackTrace(fmt.Errorf("partlog: describe partitions of %q: %w", c.topic, err))
	}

	return partitions, nil
}

// onRegistryError keeps current partitions until MaxStaleness passed since the last heartbeat.
func (c *Coordinator) onRegistryError(ctx context.Context, err error) {
	stale := c.traceRegistryError(err)

	if c.cfg.MaxStaleness <= 0 || stale < c.cfg.MaxStaleness || c.State() == MemberStateJoining {
		return
	}

	_ = c.releaseAll(ctx)
	c.setState(MemberStateJoining)
}

func (c *Coordinator) traceRegistryError(err error) time.Duration {
	stale := c.cfg.Clock.Since(c.lastHeartbeat)
	trace.CoordinatorOnRegistryError(c.cfg.Trace, trace.OnCoordinatorRegistryErrorInfo{
		Group:    c.group,
		MemberID: c.cfg.MemberID,
		Stale:    stale,
		Error:    err,
	})

	return stale
}

func (c *Coordinator) rebalance(ctx context.Context, members []string, partitions []topictypes.PartitionID) {
	members = sortedMembers(members)
	partitions = sortedPartitions(partitions)
	lost := c.forgetLost()
	if len(lost) == 0 &&
		c.State() == MemberStateAssigned &&
		equalSlices(members, c.lastMembers) &&
		equalSlices(partitions, c.lastPartitions) {
		return
	}

	c.setState(MemberStateRebalancing)

	var generation int64
	c.m.WithLock(func() {
		c.generation++
		generation = c.generation
	})
	assignment := Assign(generation, members, partitions)
	target := partitionSet(assignment.For(c.cfg.MemberID))

	removed := setPartitions(c.owned.Difference(target))
	added := setPartitions(target.Difference(c.owned))

	var errs []error
	for _, p := range removed {
		if err := c.consumer.StopPartition(ctx, p); err != nil {
			errs = append(errs, err)
		}
		c.owned.Remove(p)
	}
	for _, p := range added {
		if err := c.consumer.StartPartition(ctx, p, generation); err != nil {
			errs = append(errs, err)

			continue
		}
		c.owned.Add(p)
	}
	err := errors.Join(errs...)

	// a failed start is retried on the next heartbeat
	if err == nil {
		c.lastMembers, c.lastPartitions = members, partitions
	} else {
		c.lastMembers, c.lastPartitions = nil, nil
	}

	c.m.WithLock(func() {
		c.assignment = assignment
	})

	metrics.RebalancesTotal.WithLabelValues(c.group).Inc()
	metrics.AssignedPartitions.WithLabelValues(c.group).Set(float64(c.owned.Cardinality()))
	trace.CoordinatorOnRebalance(c.cfg.Trace, trace.OnCoordinatorRebalanceInfo{
		Group:      c.group,
		MemberID:   c.cfg.MemberID,
		Generation: generation,
		Members:    len(members),
		Partitions: len(partitions),
		Assigned:   toInt64(setPartitions(c.owned)),
		Added:      toInt64(added),
		Removed:    toInt64(removed),
		Lost:       toInt64(lost),
		Error:      err,
	})

	c.setState(MemberStateAssigned)
}

// forgetLost removes from owned partitions the consumer does not read anymore,
// so the rebalance starts them again from their current checkpoint.
func (c *Coordinator) forgetLost() []topictypes.PartitionID {
	lost := setPartitions(c.owned.Difference(partitionSet(c.consumer.Partitions())))
	for _, p := range lost {
		c.owned.Remove(p)
	}

	return lost
}

// releaseAll stops every owned partition.
func (c *Coordinator) releaseAll(ctx context.Context) error {
	var errs []error
	for _, p := range setPartitions(c.owned) {
		if err := c.consumer.StopPartition(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	c.owned.Clear()
	c.lastMembers, c.lastPartitions = nil, nil
	c.m.WithLock(func() {
		c.assignment = PartitionAssignment{}
	})
	metrics.AssignedPartitions.WithLabelValues(c.group).Set(0)

	return errors.Join(errs...)
}

func (c *Coordinator) setState(to MemberState) {
	var from MemberState
	c.m.WithLock(func() {
		from = c.state
		c.state = to
	})
	if from == to {
		return
	}

	trace.CoordinatorOnStateChange(c.cfg.Trace, trace.OnCoordinatorStateChangeInfo{
		Group:    c.group,
		MemberID: c.cfg.MemberID,
		From:     from.String(),
		To:       to.String(),
	})
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func toInt64(partitions []topictypes.PartitionID) []int64 {
	res := make([]int64, len(partitions))
	for i, p := range partitions {
		res[i] = int64(p)
	}

	return res
}
