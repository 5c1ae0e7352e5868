package main

import (
	"fmt"
	"log/slog"

	"recordstore/internal/configuration"
	"recordstore/internal/host"
	"recordstore/internal/metrics"
	"recordstore/internal/persistence"
	"recordstore/internal/transport"
)

type Services struct {
	Host      *host.Host
	Transport *transport.Service
	Metrics   *metrics.Server
}

func NewServices(cfg configuration.ConfigProvider) (*Services, error) {
	persister, err := openPersister(cfg.GetStorage())
	if err != nil {
		return nil, err
	}

	h, err := host.Open(persister)
	if err != nil {
		persister.Close()
		return nil, fmt.Errorf("open host: %w", err)
	}

	svc := &Services{
		Host:      h,
		Transport: transport.NewTransportService(cfg.GetTransport(), h),
	}

	if m := cfg.GetMetrics(); m.Enabled {
		svc.Metrics = metrics.NewServer(m.Address)
	}

	return svc, nil
}

func openPersister(storage *configuration.StorageConfigurationProperties) (persistence.Persister, error) {
	if storage.Dir == "" {
		slog.Warn("no storage dir configured, state will not survive a restart")
		return persistence.NewMemory(storage.SnapCount), nil
	}

	w, err := persistence.OpenWAL(storage.Dir, storage.NoSync, storage.SnapCount)
	if err != nil {
		return nil, fmt.Errorf("open state log: %w", err)
	}
	return w, nil
}

func (s *Services) Start() error {
	if s.Metrics != nil {
		if err := s.Metrics.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
	}

	if _, err := s.Transport.StartServer(); err != nil {
		return fmt.Errorf("start transport server: %w", err)
	}
	return nil
}

func (s *Services) Stop() {
	s.Transport.Stop()
	if s.Metrics != nil {
		s.Metrics.Stop()
	}
	if err := s.Host.Close(); err != nil {
		slog.Error("failed to close state log", "error", err)
	}
}
