package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/partlog/partlog-go-sdk/topic/topicwriter"
)

// How much the rate limiter may burst over the rate
const burstRatio = 0.1

var (
	pRate  *float64
	pCount *uint
	pSize  *uint
)

var produceCmd = &cobra.Command{
	Use:   "produce",
	Short: "Produce messages to a topic",
	Long: `Sends lines of stdin as messages, or generates --count messages
of --size bytes when --count is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		serveMetrics(ctx)

		tr, closeTransport, err := openTransport(cfg)
		if err != nil {
			return err
		}
		defer closeTransport()

		client := newClient(cfg, tr)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				log.Errorf("close: %v", err)
			}
		}()

		w, err := client.StartWriter(ctx, *topicName)
		if err != nil {
			return err
		}

		stats := newThroughput("produce")
		statsCtx, stopStats := context.WithCancel(ctx)
		defer stopStats()
		go stats.Run(statsCtx)

		var limiter *rate.Limiter
		if *pRate > 0 {
			limiter = rate.NewLimiter(rate.Limit(*pRate), int(math.Ceil(*pRate*burstRatio)))
		}

		next := stdinMessages()
		if *pCount > 0 {
			next = generatedMessages(*pCount, *pSize)
		}

		for {
			data, ok := next()
			if !ok {
				break
			}
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					break
				}
			}

			fut, err := w.Send(ctx, topicwriter.Message{Data: bytes.NewReader(data)})
			if err != nil {
				if errors.Is(err, topicwriter.ErrProducerNotActive) {
					return err
				}
				stats.Error()
				log.Warnf("send: %v", err)

				continue
			}
			go func(size int) {
				if _, err := fut.Wait(ctx); err != nil {
					stats.Error()

					return
				}
				stats.Add(size)
			}(len(data))
		}

		return w.Flush(ctx)
	},
}

func stdinMessages() func() ([]byte, bool) {
	scanner := bufio.NewScanner(os.Stdin)

	return func() ([]byte, bool) {
		if !scanner.Scan() {
			return nil, false
		}

		return append([]byte(nil), scanner.Bytes()...), true
	}
}

func generatedMessages(count, size uint) func() ([]byte, bool) {
	var seq uint

	return func() ([]byte, bool) {
		if seq >= count {
			return nil, false
		}
		seq++

		data := []byte(fmt.Sprintf("%d %s", seq, time.Now().Format(time.RFC3339Nano)))
		if uint(len(data)) < size {
			data = append(data, bytes.Repeat([]byte{'.'}, int(size)-len(data))...)
		}

		return data, true
	}
}

func init() {
	rootCmd.AddCommand(produceCmd)
	pRate = produceCmd.Flags().Float64("rate", 0, "Messages per second, zero means no limit")
	pCount = produceCmd.Flags().Uint("count", 0, "Number of generated messages, zero reads stdin")
	pSize = produceCmd.Flags().Uint("size", 100, "Minimal size of a generated message in bytes")
}
