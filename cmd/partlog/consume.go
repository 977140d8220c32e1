package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/partlog/partlog-go-sdk/config"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/coordinator"
	"github.com/partlog/partlog-go-sdk/topic/topicreader"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

var (
	cGroup      *string
	cRegistry   *string
	cCheckpoint *string
	cEtcd       *string
	cQuiet      *bool
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Consume a topic in a consumer group",
	Long: `Joins the consumer group, prints messages of the assigned partitions
and checkpoints them until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		group := cfg.Coordinator.Group
		if cmd.Flags().Changed("group") || group == "" {
			group = *cGroup
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		serveMetrics(ctx)

		tr, closeTransport, err := openTransport(cfg)
		if err != nil {
			return err
		}
		defer closeTransport()

		store, registry, closeEtcd, err := openGroupStorage(cfg, group)
		if err != nil {
			return err
		}
		defer closeEtcd()

		stats := newThroughput("consume")
		go stats.Run(ctx)

		var out io.Writer = os.Stdout
		if *cQuiet {
			out = io.Discard
		}

		client := newClient(cfg, tr)
		g, err := client.StartGroupReader(ctx, group, *topicName, store, registry,
			topicreader.MessageProcessorFactoryFunc(func(topic string, partition topictypes.PartitionID) topicreader.MessageProcessor {
				return &printProcessor{out: out, stats: stats}
			}),
		)
		if err != nil {
			return err
		}
		log.Infof("member %s joined group %s", g.Coordinator().MemberID(), group)

		<-ctx.Done()

		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return client.Close(closeCtx)
	},
}

func openGroupStorage(cfg config.Config, group string) (
	checkpoint.Store,
	coordinator.Registry,
	func() error,
	error,
) {
	var (
		store    checkpoint.Store
		registry coordinator.Registry
		closer   = func() error { return nil }
	)

	if *cCheckpoint == "etcd" || *cRegistry == "etcd" {
		client, err := newEtcdClient(cfg, *cEtcd)
		if err != nil {
			return nil, nil, nil, err
		}
		closer = client.Close

		if *cCheckpoint == "etcd" {
			store = checkpoint.NewEtcdStore(client, checkpoint.EtcdStoreConfig{Prefix: cfg.Etcd.Prefix, Group: group})
		}
		if *cRegistry == "etcd" {
			registry = coordinator.NewEtcdRegistry(client, coordinator.EtcdRegistryConfig{Prefix: cfg.Etcd.Prefix})
		}
	}

	switch *cCheckpoint {
	case "memory":
		store = checkpoint.NewMemoryStore(nil)
	case "etcd":
	default:
		_ = closer()

		return nil, nil, nil, fmt.Errorf("partlog: unknown checkpoint store %q", *cCheckpoint)
	}

	switch *cRegistry {
	case "memory":
		registry = coordinator.NewMemoryRegistry(clockwork.NewRealClock(), 30*time.Second)
	case "etcd":
	default:
		_ = closer()

		return nil, nil, nil, fmt.Errorf("partlog: unknown registry %q", *cRegistry)
	}

	return store, registry, closer, nil
}

type printProcessor struct {
	out       io.Writer
	stats     *throughput
	partition topictypes.PartitionID
}

func (p *printProcessor) Init(ctx context.Context, partition topictypes.PartitionID, startOffset topictypes.Offset) error {
	p.partition = partition
	log.Infof("partition %v: reading from offset %d", partition, startOffset)

	return nil
}

func (p *printProcessor) Process(ctx context.Context, batch topicreader.Batch, _ topicreader.Checkpointer) error {
	for _, mess := range batch.Messages {
		fmt.Fprintf(p.out, "%v/%d\t%s\n", batch.Partition, mess.Offset, mess.Data)
		p.stats.Add(mess.Size())
	}

	return nil
}

func (p *printProcessor) Shutdown(ctx context.Context, cp topicreader.Checkpointer) {
	log.Infof("partition %v: released", p.partition)
}

func init() {
	rootCmd.AddCommand(consumeCmd)
	cGroup = consumeCmd.Flags().String("group", "partlog-cli", "Consumer group name")
	cRegistry = consumeCmd.Flags().String("registry", "memory", "Group membership registry: memory or etcd")
	cCheckpoint = consumeCmd.Flags().String("checkpoint", "memory", "Checkpoint store: memory or etcd")
	cEtcd = consumeCmd.Flags().String("etcd", "", "List of etcd endpoints (comma separated), overrides etcd.endpoints")
	cQuiet = consumeCmd.Flags().Bool("quiet", false, "Do not print messages, only throughput")
}
