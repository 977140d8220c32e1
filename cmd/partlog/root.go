package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	clientv3 "go.etcd.io/etcd/client/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/partlog/partlog-go-sdk/config"
	"github.com/partlog/partlog-go-sdk/topic"
	"github.com/partlog/partlog-go-sdk/topic/transport"
	"github.com/partlog/partlog-go-sdk/topic/transport/grpctransport"
	"github.com/partlog/partlog-go-sdk/topic/transport/kafkatransport"
)

var (
	configPath    *string
	logLevel      *string
	transportKind *string
	addrs         *string
	topicName     *string
	metricsAddr   *string
)

var rootCmd = &cobra.Command{
	Use:   "partlog",
	Short: "partlog is a client of a partitioned append-only log",
	Long: `Produces messages to a topic and consumes them in a consumer group,
checkpointing progress of every partition.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(*logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)

		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	configPath = flags.String("config", "", "Path to yaml config, flags override its values")
	logLevel = flags.String("log-level", "info", "Log level")
	transportKind = flags.String("transport", "grpc", "Transport to the broker: grpc or kafka")
	addrs = flags.String("addr", "localhost:7070", "List of host:port of brokers (comma separated)")
	topicName = flags.String("topic", "", "Topic name")
	metricsAddr = flags.String("metrics-addr", "", "Serve prometheus metrics on this address, e.g. :8001")
}

// loadConfig reads the config file and applies explicitly set flags over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("transport") || cfg.Transport.Kind == "" {
		cfg.Transport.Kind = *transportKind
	}
	if flags.Changed("addr") || len(cfg.Transport.Addrs) == 0 {
		cfg.Transport.Addrs = strings.Split(*addrs, ",")
	}
	if *topicName == "" {
		return config.Config{}, errors.New("partlog: --topic is required")
	}

	return cfg, cfg.Validate()
}

func openTransport(cfg config.Config) (transport.Transport, func() error, error) {
	switch cfg.Transport.Kind {
	case "kafka":
		opts := []kafkatransport.Option{kafkatransport.WithCodec(cfg.Codec())}
		if cfg.OperationTimeout > 0 {
			opts = append(opts, kafkatransport.WithTimeout(cfg.OperationTimeout))
		}

		return kafkatransport.New(cfg.Transport.Addrs, opts...), func() error { return nil }, nil
	case "grpc", "":
		conn, err := grpc.NewClient(cfg.Transport.Addrs[0], grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, err
		}

		return grpctransport.New(conn), conn.Close, nil
	default:
		return nil, nil, fmt.Errorf("partlog: unknown transport %q", cfg.Transport.Kind)
	}
}

func newClient(cfg config.Config, tr transport.Transport) topic.Client {
	return topic.NewClient(tr,
		topic.WithLogger(log.StandardLogger()),
		topic.WithOperationTimeout(cfg.OperationTimeout),
		topic.WithWriterOptions(cfg.WriterOptions()...),
		topic.WithReaderOptions(cfg.ReaderOptions()...),
		topic.WithCoordinatorOptions(cfg.CoordinatorOptions()...),
	)
}

func newEtcdClient(cfg config.Config, endpoints string) (*clientv3.Client, error) {
	etcdCfg := clientv3.Config{
		Endpoints:   cfg.Etcd.Endpoints,
		DialTimeout: cfg.Etcd.DialTimeout,
	}
	if endpoints != "" {
		etcdCfg.Endpoints = strings.Split(endpoints, ",")
	}
	if etcdCfg.DialTimeout == 0 {
		etcdCfg.DialTimeout = 5 * time.Second
	}
	if len(etcdCfg.Endpoints) == 0 {
		return nil, errors.New("partlog: etcd endpoints are required")
	}

	return clientv3.New(etcdCfg)
}

func serveMetrics(ctx context.Context) {
	if *metricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              *metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server error: %v", err)
		}
	}()
}
