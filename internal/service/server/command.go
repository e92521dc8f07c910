package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	api "github.com/oshokin/machine-timeline/internal/api/grpc/timeline"
	"github.com/oshokin/machine-timeline/internal/logger"
	"github.com/oshokin/machine-timeline/internal/repository/signals"
	"github.com/oshokin/machine-timeline/internal/service/common"
)

// Options controls the server process and configuration.
type Options struct {
	// Settings holds the settings file path and the folder override.
	Settings common.Overrides
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
}

var (
	// ErrNoServerAddress indicates missing server configuration.
	ErrNoServerAddress = errors.New("no server address configured")
	// errNotADirectory is returned when the folder path names a file.
	errNotADirectory = errors.New("not a directory")
)

// Run starts the gRPC server and blocks until context is canceled or server stops.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "server")

	cfg, err := common.LoadSettings(&opts.Settings)
	if err != nil {
		return err
	}

	if err = cfg.RequireFolder(); err != nil {
		return err
	}

	// Day files are listed per request, but a wrong folder is better reported at startup.
	info, err := os.Stat(cfg.FolderPath)
	if err != nil {
		return fmt.Errorf("open folder: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("open folder %s: %w", cfg.FolderPath, errNotADirectory)
	}

	listenAddress, err := resolveListenAddress(cfg.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	svc := newService(signals.NewRepository(cfg.FolderPath, nil))

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	api.Register(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Timeline server listening", "listen_address", lis.Addr().String(), "folder", cfg.FolderPath)

	// Closed after GracefulStop so Run returns only once the server has fully stopped.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// resolveListenAddress returns override when set, otherwise the port of configAddr on all interfaces.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
