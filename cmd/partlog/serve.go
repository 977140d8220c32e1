package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/partlog/partlog-go-sdk/topic/transport/grpctransport"
	"github.com/partlog/partlog-go-sdk/topic/transport/memtransport"
)

var (
	sListen     *string
	sTopics     *string
	sPartitions *int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an in-memory broker over grpc",
	Long: `Runs a broker which keeps topics in memory, for local tries of produce and consume.
Data is lost on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		serveMetrics(ctx)

		broker := memtransport.New(clockwork.NewRealClock())
		for _, name := range strings.Split(*sTopics, ",") {
			if name = strings.TrimSpace(name); name != "" {
				broker.CreateTopic(name, *sPartitions)
			}
		}

		lis, err := net.Listen("tcp", *sListen)
		if err != nil {
			return err
		}

		server := grpc.NewServer()
		grpctransport.RegisterServer(server, broker)
		go func() {
			<-ctx.Done()
			done := make(chan struct{})
			go func() {
				server.GracefulStop()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				server.Stop()
			}
		}()

		log.Infof("serving topics %s with %d partitions on %s", *sTopics, *sPartitions, lis.Addr())
		if err := server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	sListen = serveCmd.Flags().String("listen", ":7070", "Address to listen on")
	sTopics = serveCmd.Flags().String("topics", "events", "Topics to create (comma separated)")
	sPartitions = serveCmd.Flags().Int("partitions", 4, "Number of partitions of each topic")
}
