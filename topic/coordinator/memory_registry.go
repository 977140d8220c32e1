package coordinator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
)

// MemoryRegistry keeps members in memory of one process.
// A member expires if it has not sent a heartbeat for TTL.
type MemoryRegistry struct {
	clock clockwork.Clock
	ttl   time.Duration

	m      xsync.Mutex
	groups map[string]map[string]time.Time
}

func NewMemoryRegistry(clock clockwork.Clock, ttl time.Duration) *MemoryRegistry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &MemoryRegistry{
		clock:  clock,
		ttl:    ttl,
		groups: make(map[string]map[string]time.Time),
	}
}

func (r *MemoryRegistry) Register(ctx context.Context, group, memberID string) error {
	if err := ctx.Err(); err != nil {
		return xerrors.WithStackTrace(err)
	}

	r.m.WithLock(func() {
		members, ok := r.groups[group]
		if !ok {
			members = make(map[string]time.Time)
			r.groups[group] = members
		}
		members[memberID] = r.clock.Now().Add(r.ttl)
	})

	return nil
}

func (r *MemoryRegistry) Heartbeat(ctx context.Context, group, memberID string) error {
	if err := ctx.Err(); err != nil {
		return xerrors.WithStackTrace(err)
	}

	var err error
	r.m.WithLock(func() {
		now := r.clock.Now()
		expires, ok := r.groups[group][memberID]
		if !ok || !now.Before(expires) {
			delete(r.groups[group], memberID)
			err = xerrors.WithStackTrace(fmt.Errorf("%w: %s in group %s", ErrMemberExpired, memberID, group))

			return
		}
		r.groups[group][memberID] = now.Add(r.ttl)
	})

	return err
}

func (r *MemoryRegistry) Members(ctx context.Context, group string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	var res []string
	r.m.WithLock(func() {
		now := r.clock.Now()
		for id, expires := range r.groups[group] {
			if now.Before(expires) {
				res = append(res, id)
			}
		}
	})
	sort.Strings(res)

	return res, nil
}

func (r *MemoryRegistry) Leave(ctx context.Context, group, memberID string) error {
	r.m.WithLock(func() {
		delete(r.groups[group], memberID)
	})

	return nil
}

// Expire drops the member immediately as if its heartbeats were lost.
func (r *MemoryRegistry) Expire(group, memberID string) {
	r.m.WithLock(func() {
		delete(r.groups[group], memberID)
	})
}
