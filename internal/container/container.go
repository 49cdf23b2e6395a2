package container

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/brackenfield/objmeasure/internal/config"
	"github.com/brackenfield/objmeasure/internal/factory"
	"github.com/brackenfield/objmeasure/internal/logger"
	"github.com/brackenfield/objmeasure/internal/measure"
	"github.com/brackenfield/objmeasure/internal/measure/features"
	"github.com/brackenfield/objmeasure/internal/observer"
	"github.com/brackenfield/objmeasure/internal/repository"
	"github.com/brackenfield/objmeasure/internal/storage"
	"github.com/brackenfield/objmeasure/internal/transport"
	"github.com/brackenfield/objmeasure/internal/worker"
)

// Container holds all application dependencies: the measurement
// tool, its extractor and parallelizer collaborators, the image
// fetcher, the run-history repository, the observer fan-out, and the
// HTTP handler.
type Container struct {
	config    *config.Config
	tool      *measure.MeasurementTool
	fetcher   storage.ImageFetcher
	runs      repository.RunRepository
	publisher *observer.EventPublisher
	handler   http.Handler
}

// NewContainer wires the full dependency graph from environment
// configuration.
func NewContainer() (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	componentFactory := factory.NewComponentFactory()

	chainCodeExtractor, err := componentFactory.ExtractorFactory.CreateChainCodeExtractor(factory.MooreExtractor)
	if err != nil {
		return nil, err
	}
	convexHullExtractor, err := componentFactory.ExtractorFactory.CreateConvexHullExtractor(factory.MooreExtractor)
	if err != nil {
		return nil, err
	}

	storageType := factory.HTTPStorage
	if cfg.AzureContainerURL != "" {
		storageType = factory.AzureStorage
	}
	fetcher, err := componentFactory.StorageFactory.CreateStorage(storageType, cfg.AzureContainerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build image fetcher: %w", err)
	}

	tool := features.NewDefaultTool()
	tool.SetLogger(logger.NewMeasureAdapter(nil))
	tool.SetChainCodeExtractor(chainCodeExtractor)
	tool.SetConvexHullExtractor(convexHullExtractor)
	tool.SetParallelizer(worker.NewPool(cfg.WorkerPoolSize).Run)

	runs, err := repository.NewSQLiteRunRepository(cfg.RunHistoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history repository: %w", err)
	}

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(observer.NewMetricsObserver())
	if cfg.MetricsEnabled {
		publisher.Subscribe(observer.NewPrometheusObserver(prometheus.DefaultRegisterer))
	}

	handler := transport.NewHandler(transport.Deps{
		Tool:      tool,
		Fetcher:   fetcher,
		Runs:      runs,
		Publisher: publisher,
		Config:    cfg,
	})

	logrus.WithField("features", len(tool.Features())).Info("measurement tool ready")

	return &Container{
		config:    cfg,
		tool:      tool,
		fetcher:   fetcher,
		runs:      runs,
		publisher: publisher,
		handler:   handler,
	}, nil
}

// Handler returns the HTTP handler.
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Tool returns the measurement tool, for non-HTTP callers (the CLI).
func (c *Container) Tool() *measure.MeasurementTool {
	return c.tool
}

// Fetcher returns the image fetcher, for non-HTTP callers (the CLI).
func (c *Container) Fetcher() storage.ImageFetcher {
	return c.fetcher
}

// Close releases held resources (the run-history database handle).
func (c *Container) Close() error {
	return c.runs.Close()
}
