package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.etcd.io/etcd/api/v3/v3rpc/rpctypes"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
)

const (
	defaultEtcdPrefix = "/partlog"
	defaultEtcdTTL    = 10 * time.Second
)

type EtcdRegistryConfig struct {
	// Prefix of all keys, "/partlog" by default.
	Prefix string

	// TTL of member leases, rounded up to seconds. A member is dropped
	// by etcd if it has not sent a heartbeat for TTL.
	TTL time.Duration

	Clock clockwork.Clock
}

// EtcdRegistry keeps a member under <prefix>/groups/<group>/members/<id>
// attached to the member's own lease.
type EtcdRegistry struct {
	client *clientv3.Client
	prefix string
	ttl    int64
	clock  clockwork.Clock

	m      xsync.Mutex
	leases map[string]clientv3.LeaseID
}

type etcdMember struct {
	JoinedAtMs int64 `json:"joined_at_ms"`
}

var _ Registry = (*EtcdRegistry)(nil)

func NewEtcdRegistry(client *clientv3.Client, cfg EtcdRegistryConfig) *EtcdRegistry {
	if cfg.Prefix == "" {
		cfg.Prefix = defaultEtcdPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultEtcdTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	ttl := int64((cfg.TTL + time.Second - 1) / time.Second)

	return &EtcdRegistry{
		client: client,
		prefix: path.Join(cfg.Prefix, "groups"),
		ttl:    ttl,
		clock:  cfg.Clock,
		leases: make(map[string]clientv3.LeaseID),
	}
}

// Register grants a new lease and puts the member key with it.
// A lease of previous registration is revoked.
func (r *EtcdRegistry) Register(ctx context.Context, group, memberID string) error {
	lease, err := r.client.Grant(ctx, r.ttl)
	if err != nil {
		return r.wrap("grant lease", err)
	}

	value, err := json.Marshal(etcdMember{JoinedAtMs: r.clock.Now().UnixMilli()})
	if err != nil {
		return xerrors.WithStackTrace(err)
	}

	if _, err = r.client.Put(ctx, r.key(group, memberID), string(value), clientv3.WithLease(lease.ID)); err != nil {
		_, _ = r.client.Revoke(context.WithoutCancel(ctx), lease.ID)

		return r.wrap("put member", err)
	}

	var (
		previous clientv3.LeaseID
		ok       bool
	)
	r.m.WithLock(func() {
		previous, ok = r.leases[r.key(group, memberID)]
		r.leases[r.key(group, memberID)] = lease.ID
	})
	if ok && previous != lease.ID {
		_, _ = r.client.Revoke(ctx, previous)
	}

	return nil
}

func (r *EtcdRegistry) Heartbeat(ctx context.Context, group, memberID string) error {
	key := r.key(group, memberID)

	var (
		lease clientv3.LeaseID
		ok    bool
	)
	r.m.WithLock(func() {
		lease, ok = r.leases[key]
	})
	if !ok {
		return xerrors.WithStackTrace(fmt.Errorf("%w: %s in group %s is not registered", ErrMemberExpired, memberID, group))
	}

	if _, err := r.client.KeepAliveOnce(ctx, lease); err != nil {
		if errors.Is(err, rpctypes.ErrLeaseNotFound) {
			r.forget(key, lease)

			return xerrors.WithStackTrace(fmt.Errorf("%w: %s in group %s: %w", ErrMemberExpired, memberID, group, err))
		}

		return r.wrap("keep alive", err)
	}

	return nil
}

func (r *EtcdRegistry) Members(ctx context.Context, group string) ([]string, error) {
	prefix := r.groupPrefix(group)
	resp, err := r.client.Get(ctx, prefix, clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return nil, r.wrap("get members", err)
	}

	res := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		id := strings.TrimPrefix(string(kv.Key), prefix)
		if id != "" {
			res = append(res, id)
		}
	}
	sort.Strings(res)

	return res, nil
}

// Leave revokes the member lease which deletes the member key.
func (r *EtcdRegistry) Leave(ctx context.Context, group, memberID string) error {
	key := r.key(group, memberID)

	var (
		lease clientv3.LeaseID
		ok    bool
	)
	r.m.WithLock(func() {
		lease, ok = r.leases[key]
		delete(r.leases, key)
	})

	if ok {
		if _, err := r.client.Revoke(ctx, lease); err != nil && !errors.Is(err, rpctypes.ErrLeaseNotFound) {
			return r.wrap("revoke lease", err)
		}

		return nil
	}

	if _, err := r.client.Delete(ctx, key); err != nil {
		return r.wrap("delete member", err)
	}

	return nil
}

func (r *EtcdRegistry) forget(key string, lease clientv3.LeaseID) {
	r.m.WithLock(func() {
		if r.leases[key] == lease {
			delete(r.leases, key)
		}
	})
}

func (r *EtcdRegistry) groupPrefix(group string) string {
	return path.Join(r.prefix, group, "members") + "/"
}

func (r *EtcdRegistry) key(group, memberID string) string {
	return r.groupPrefix(group) + memberID
}

func (r *EtcdRegistry) wrap(op string, err error) error {
	wrapped := fmt.Errorf("partlog: etcd registry %s: %w", op, err)
	if !errors.Is(err, context.Canceled) {
		wrapped = xerrors.Retryable(wrapped)
	}

	return xerrors.WithStackTrace(wrapped)
}
