package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

const defaultEtcdPrefix = "/partlog"

type EtcdStoreConfig struct {
	// Prefix of all keys, "/partlog" by default.
	Prefix string

	// Group is the consumer group the checkpoints belong to.
	Group string

	Clock clockwork.Clock
}

// EtcdStore keeps checkpoints under <prefix>/groups/<group>/checkpoints/<topic>/<partition>.
type EtcdStore struct {
	client *clientv3.Client
	prefix string
	clock  clockwork.Clock
}

type etcdCheckpoint struct {
	Offset        int64 `json:"offset"`
	CommittedAtMs int64 `json:"committed_at_ms"`
}

var _ Store = (*EtcdStore)(nil)

func NewEtcdStore(client *clientv3.Client, cfg EtcdStoreConfig) *EtcdStore {
	if cfg.Prefix == "" {
		cfg.Prefix = defaultEtcdPrefix
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return &EtcdStore{
		client: client,
		prefix: path.Join(cfg.Prefix, "groups", cfg.Group, "checkpoints"),
		clock:  cfg.Clock,
	}
}

func (s *EtcdStore) Get(ctx context.Context, topic string, partition topictypes.PartitionID) (Checkpoint, bool, error) {
	cp, _, ok, err := s.get(ctx, topic, partition)

	return cp, ok, err
}

// CompareAndSet reads the current value and writes next in a transaction
// conditioned on the revision it read.
func (s *EtcdStore) CompareAndSet(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	expected, next topictypes.Offset,
) (bool, error) {
	current, modRevision, ok, err := s.get(ctx, topic, partition)
	if err != nil {
		return false, err
	}

	currentOffset := topictypes.OffsetUnset
	if ok {
		currentOffset = current.Offset
	}
	if currentOffset != expected {
		return false, nil
	}

	value, err := json.Marshal(etcdCheckpoint{
		Offset:        int64(next),
		CommittedAtMs: s.clock.Now().UnixMilli(),
	})
	if err != nil {
		return false, xerrors.WithStackTrace(err)
	}

	key := s.key(topic, partition)
	cmp := clientv3.Compare(clientv3.CreateRevision(key), "=", 0)
	if ok {
		cmp = clientv3.Compare(clientv3.ModRevision(key), "=", modRevision)
	}

	resp, err := s.client.Txn(ctx).
		If(cmp).
		Then(clientv3.OpPut(key, string(value))).
		Commit()
	if err != nil {
		return false, s.wrap("compare and set", err)
	}

	return resp.Succeeded, nil
}

func (s *EtcdStore) get(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
) (cp Checkpoint, modRevision int64, ok bool, err error) {
	resp, err := s.client.Get(ctx, s.key(topic, partition))
	if err != nil {
		return Checkpoint{}, 0, false, s.wrap("get", err)
	}
	if len(resp.Kvs) == 0 {
		return Checkpoint{}, 0, false, nil
	}

	kv := resp.Kvs[0]
	var stored etcdCheckpoint
	if err = json.Unmarshal(kv.Value, &stored); err != nil {
		return Checkpoint{}, 0, false, xerrors.WithStackTrace(
			fmt.Errorf("partlog: decode checkpoint %q: %w", kv.Key, err),
		)
	}

	return Checkpoint{
		Partition:   partition,
		Offset:      topictypes.Offset(stored.Offset),
		CommittedAt: time.UnixMilli(stored.CommittedAtMs),
	}, kv.ModRevision, true, nil
}

func (s *EtcdStore) key(topic string, partition topictypes.PartitionID) string {
	return path.Join(s.prefix, topic, strconv.Itoa(int(partition)))
}

func (s *EtcdStore) wrap(op string, err error) error {
	wrapped := fmt.Errorf("partlog: etcd checkpoint %s: %w", op, err)
	if !errors.Is(err, context.Canceled) {
		wrapped = xerrors.Retryable(wrapped)
	}

	return xerrors.WithStackTrace(wrapped)
}
