package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/handler"
	"github.com/MKhiriev/go-community-access/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if len(servers.transports()) == 0 {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) transports() []transport {
	var list []transport
	if s.httpServer != nil {
		list = append(list, s.httpServer)
	}
	if s.gRPCServer != nil {
		list = append(list, s.gRPCServer)
	}
	return list
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx, s.transports()); err != nil {
		s.logger.Err(err).Msg("error running server")
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown() {
	for _, t := range s.transports() {
		t.Shutdown()
	}
}

// run serves every transport until ctx is done or one of them exits.
func (s *server) run(ctx context.Context, transports []transport) error {
	if len(transports) == 0 {
		return errNoServersAreCreated
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, t := range transports {
		g.Go(func() error {
			s.logger.Info().Str("transport", t.name()).Msg("launching transport")
			if err := t.serve(); err != nil {
				return fmt.Errorf("%s: %w", t.name(), err)
			}
			// a transport returning without error before shutdown still ends the process
			if ctx.Err() == nil {
				return fmt.Errorf("%s: %w", t.name(), errTransportStopped)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		for _, t := range transports {
			t.Shutdown()
		}
		return nil
	})

	return g.Wait()
}
