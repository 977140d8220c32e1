package backgroundworkers

import (
	"context"
	"runtime/pprof"
	"sync"
	"sync/atomic"

	"github.com/partlog/partlog-go-sdk/internal/xcontext"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
)

// A BackgroundWorker runs named goroutines bound to one context.
// It must not be copied after first use.
type BackgroundWorker struct {
	ctx     context.Context
	workers sync.WaitGroup
	running atomic.Int64

	onceInit sync.Once

	m      xsync.Mutex
	cancel xcontext.CancelErrFunc
}

func New(parent context.Context) *BackgroundWorker {
	ctx, cancel := xcontext.WithErrCancel(parent)

	return &BackgroundWorker{
		ctx:    ctx,
		cancel: cancel,
	}
}

func (b *BackgroundWorker) Context() context.Context {
	b.init()

	return b.ctx
}

// Start runs f in a new goroutine labeled with name.
// It returns false if the worker is already closed and f was not started.
func (b *BackgroundWorker) Start(name string, f func(ctx context.Context)) bool {
	b.init()

	b.m.Lock()
	defer b.m.Unlock()

	if b.ctx.Err() != nil {
		return false
	}

	b.workers.Add(1)
	b.running.Add(1)
	go func() {
		defer func() {
			b.running.Add(-1)
			b.workers.Done()
		}()

		pprof.Do(b.ctx, pprof.Labels("background", name), f)
	}()

	return true
}

// Running returns number of goroutines not finished yet.
func (b *BackgroundWorker) Running() int {
	return int(b.running.Load())
}

func (b *BackgroundWorker) Done() <-chan struct{} {
	b.init()

	b.m.Lock()
	defer b.m.Unlock()

	return b.ctx.Done()
}

// Close cancels the worker context with err and waits for all goroutines
// until ctx is done.
func (b *BackgroundWorker) Close(ctx context.Context, err error) error {
	b.init()

	b.m.WithLock(func() {
		b.cancel(err)
	})

	waitChan := make(chan struct{})

	go func() {
		b.workers.Wait()
		close(waitChan)
	}()

	select {
	case <-waitChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *BackgroundWorker) init() {
	b.onceInit.Do(func() {
		if b.ctx == nil {
			b.ctx, b.cancel = xcontext.WithErrCancel(context.Background())
		}
	})
}
