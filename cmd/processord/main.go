// Command processord runs the stream-processing gRPC server: the thin
// bootstrapping binary spec.md §6 describes, wiring configuration, the
// plugin registry, and the stream server together. It does not itself
// register any record handlers — a hosting application links this package's
// internal/registry.Manager and calls Register before Serve.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	_ "google.golang.org/grpc/encoding/gzip"

	_ "go.uber.org/automaxprocs"

	"github.com/synnergychain/stream-processor-sdk/internal/registry"
	"github.com/synnergychain/stream-processor-sdk/internal/server/health"
	"github.com/synnergychain/stream-processor-sdk/internal/stream"
	"github.com/synnergychain/stream-processor-sdk/pkg/config"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		host      string
		port      int
		debug     bool
		env       string
		debugPort int
	)

	cmd := &cobra.Command{
		Use:   "processord",
		Short: "Run the Synnergy stream-processing server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(host, port, debug, env, debugPort)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&host, "host", "0.0.0.0", "address the gRPC server binds to")
	flags.IntVar(&port, "port", 4000, "port the gRPC server listens on")
	flags.BoolVar(&debug, "debug", false, "enable debug logging and JSON-less log output")
	flags.StringVar(&env, "env", "", "named config overlay merged on top of config/default.yaml")
	flags.IntVar(&debugPort, "debug-port", 6060, "port serving /healthz and /metrics")

	viper.BindPFlag("server.host", flags.Lookup("host"))
	viper.BindPFlag("server.port", flags.Lookup("port"))
	viper.BindPFlag("server.debug", flags.Lookup("debug"))

	return cmd
}

func run(host string, port int, debug bool, env string, debugPort int) error {
	_ = godotenv.Load() // optional .env, ignored if absent

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if host != "0.0.0.0" {
		cfg.Server.Host = host
	}
	if port != 4000 {
		cfg.Server.Port = port
	}
	if debug {
		cfg.Server.Debug = true
	}

	log := newLogger(cfg.Server.Debug)

	mgr := registry.NewManager()
	srv := stream.New(stream.Options{
		Manager:              mgr,
		RecordTimeout:        time.Duration(cfg.Server.RecordTimeoutSeconds) * time.Second,
		MaxConcurrentRecords: int64(cfg.Server.MaxConcurrentRecords),
		StoreCacheSize:       cfg.Store.CacheSize,
		Logger:               log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	processorpb.RegisterProcessorServiceServer(grpcServer, srv)

	debugSrv := health.New(srv, log)
	debugSrv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, debugPort))

	log.WithFields(logrus.Fields{
		"addr":       addr,
		"debug_addr": fmt.Sprintf("%s:%d", cfg.Server.Host, debugPort),
	}).Info("processord: serving")

	errCh := make(chan error, 1)
	go func() {
		errCh <- grpcServer.Serve(lis)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	case <-sig:
		log.Info("processord: shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := stream.Shutdown(
			func() error { grpcServer.GracefulStop(); return nil },
			func() error { return debugSrv.Shutdown(ctx) },
		)
		if err != nil {
			log.WithError(err).Warn("processord: shutdown reported errors")
		}
		return nil
	}
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
