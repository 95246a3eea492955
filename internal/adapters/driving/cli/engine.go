package cli

import (
	"context"
	"fmt"

	"github.com/gitpress-labs/gitpress/internal/config"
	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
	"github.com/gitpress-labs/gitpress/internal/core/services"
	"github.com/gitpress-labs/gitpress/internal/logger"
	"github.com/gitpress-labs/gitpress/internal/metadata/yaml"
	"github.com/gitpress-labs/gitpress/internal/render/markdown"
	"github.com/gitpress-labs/gitpress/internal/sources"
)

// engine bundles the wired service graph for a command invocation.
type engine struct {
	cfg    *domain.Config
	source driven.Source
	store  *services.IndexStore
	syncer *services.Synchronizer
	query  *services.Query
}

// newEngine loads the configuration and wires source, parser, builder,
// index store, synchroniser and query service together.
func newEngine(ctx context.Context) (*engine, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	src, err := sources.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	logger.Info("Using %s source at %s", src.Type(), cfg.SourceLocation)

	parser := services.NewParser(markdown.New(), yaml.New())
	builder := services.NewBuilder(parser)
	store := services.NewIndexStore()
	syncer := services.NewSynchronizer(*cfg, src, builder, store)

	return &engine{
		cfg:    cfg,
		source: src,
		store:  store,
		syncer: syncer,
		query:  services.NewQuery(store),
	}, nil
}

// Close releases the source.
func (e *engine) Close() error {
	return e.source.Close()
}
