package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulbellamy/ratecounter"
	log "github.com/sirupsen/logrus"
)

const monitoringFrequency = 5 * time.Second

// throughput reports messages and bytes per second of a produce or consume run.
type throughput struct {
	name     string
	messages *ratecounter.RateCounter
	bytes    *ratecounter.RateCounter
	total    atomic.Uint64
	errors   atomic.Uint64
}

func newThroughput(name string) *throughput {
	return &throughput{
		name:     name,
		messages: ratecounter.NewRateCounter(monitoringFrequency),
		bytes:    ratecounter.NewRateCounter(monitoringFrequency),
	}
}

func (t *throughput) Add(size int) {
	t.messages.Incr(1)
	t.bytes.Incr(int64(size))
	t.total.Add(1)
}

func (t *throughput) Error() {
	t.errors.Add(1)
}

// Run prints stats until ctx is done.
func (t *throughput) Run(ctx context.Context) {
	ticker := time.NewTicker(monitoringFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.print()

			return
		case <-ticker.C:
			t.print()
		}
	}
}

func (t *throughput) print() {
	seconds := int64(monitoringFrequency / time.Second)
	log.Infof("%s: %d messages/sec, %s/sec, total %d messages, %d errors",
		t.name,
		t.messages.Rate()/seconds,
		humanize.Bytes(uint64(t.bytes.Rate()/seconds)),
		t.total.Load(),
		t.errors.Load(),
	)
}
