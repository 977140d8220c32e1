package topicwriter

import (
	"context"
	"sync"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

type SendResult struct {
	Partition topictypes.PartitionID
	Offset    topictypes.Offset
}

// SendFuture is completed exactly once, with the message offset or with an error.
type SendFuture struct {
	done chan struct{}
	once sync.Once

	res SendResult
	err error
}

func newSendFuture() *SendFuture {
	return &SendFuture{done: make(chan struct{})}
}

func (f *SendFuture) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the message is acknowledged or failed.
func (f *SendFuture) Wait(ctx context.Context) (SendResult, error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		return SendResult{}, ctx.Err()
	}
}

// Err returns completion error, it must be called after Done is closed.
func (f *SendFuture) Err() error {
	<-f.done

	return f.err
}

func (f *SendFuture) resolve(res SendResult, err error) (resolved bool) {
	f.once.Do(func() {
		f.res = res
		f.err = err
		close(f.done)
		resolved = true
	})

	return resolved
}
