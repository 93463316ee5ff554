// Package container provides dependency injection for the spend-rollup application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"

	"fjacquet/spend-rollup/internal/common"
	"fjacquet/spend-rollup/internal/config"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/report"
	"fjacquet/spend-rollup/internal/rollup"
	"fjacquet/spend-rollup/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	source   store.TransactionSource
	engine   *rollup.Engine
	reporter *report.ReportGenerator
	closers  []io.Closer
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	common.SetDelimiter(cfg.Delimiter())

	source, closers, err := openSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	if ttl := cfg.CacheTTL(); ttl > 0 {
		source = store.NewCachedSource(source, ttl, logger)
		logger.Debug("Transaction cache enabled", logging.Field{Key: "cache_ttl", Value: ttl.String()})
	}

	engine := rollup.NewEngine(source, logger, cfg.Location())

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldSource, Value: cfg.Source.Type},
		logging.Field{Key: logging.FieldSourcePath, Value: cfg.Source.Path})

	return &Container{
		logger:   logger,
		config:   cfg,
		source:   source,
		engine:   engine,
		reporter: report.NewReportGenerator(logger),
		closers:  closers,
	}, nil
}

func openSource(cfg *config.Config, logger logging.Logger) (store.TransactionSource, []io.Closer, error) {
	switch cfg.Source.Type {
	case config.SourceCSV:
		return store.NewCSVSource(cfg.Source.Path, logger), nil, nil
	case config.SourceYAML:
		path := cfg.Source.Path
		if found, err := store.FindFile(path); err == nil {
			path = found
		}
		src, err := store.LoadYAMLSource(path, logger)
		if err != nil {
			return nil, nil, err
		}
		return src, nil, nil
	case config.SourceSQLite:
		src, err := store.OpenSQLiteSource(cfg.Source.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return src, []io.Closer{src}, nil
	}
	return nil, nil, fmt.Errorf("unknown source type: %s", cfg.Source.Type)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetSource returns the transaction source, cached when configured.
func (c *Container) GetSource() store.TransactionSource {
	return c.source
}

// GetImporter returns the source as an Importer, or store.ErrReadOnly when the
// configured backend cannot store transactions.
func (c *Container) GetImporter() (store.Importer, error) {
	importer, ok := c.source.(store.Importer)
	if !ok {
		return nil, fmt.Errorf("%s source: %w", c.config.Source.Type, store.ErrReadOnly)
	}
	return importer, nil
}

// GetEngine returns the rollup engine.
func (c *Container) GetEngine() *rollup.Engine {
	return c.engine
}

// GetReportGenerator returns the output encoder.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// Close releases the resources held by the source.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.logger.Debug("Container closed")
	return firstErr
}
