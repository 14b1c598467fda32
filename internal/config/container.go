package config

import (
	"context"
	"fmt"

	"resume-intake/internal/domain"
	"resume-intake/internal/infra/llm"
	"resume-intake/internal/infra/rabbitmq"
	"resume-intake/internal/infra/supabase"
	"resume-intake/internal/repository"
	"resume-intake/internal/service"
	"resume-intake/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config           domain.Config
	Logger           domain.Logger
	ModelProvider    domain.ModelProvider
	ResumeRepository domain.ResumeRepository
	EventPublisher   domain.EventPublisher
	TextExtractor    *service.TextExtractor
	ResumeExtractor  *service.ResumeExtractor
	ResumeService    *service.ResumeService

	closers []func() error
}

// NewContainer creates a new dependency injection container from the environment
func NewContainer(ctx context.Context) (*Container, error) {
	return NewContainerWithConfig(ctx, NewConfig())
}

// NewContainerWithConfig wires every component from cfg.
func NewContainerWithConfig(ctx context.Context, cfg domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(cfg.GetLogLevel())
	c := &Container{Config: cfg, Logger: appLogger}

	pages, err := service.NewPageTextExtractor(cfg.GetPDFEngine(), appLogger)
	if err != nil {
		return nil, err
	}
	c.TextExtractor = service.NewTextExtractor(pages, cfg.GetTempDir(), appLogger)

	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}
	var ai domain.FieldExtractor
	if provider != nil {
		c.ModelProvider = provider
		c.closers = append(c.closers, provider.Close)
		ai = service.NewAIExtractor(provider, cfg.GetAIModels(), appLogger)
		appLogger.Info("AI extraction enabled", "provider", cfg.GetAIProvider(), "models", len(cfg.GetAIModels()))
	} else {
		appLogger.Warn("AI extraction disabled, using pattern extraction only")
	}
	c.ResumeExtractor = service.NewResumeExtractor(ai, service.NewFallbackExtractor(appLogger), appLogger)

	repo, err := c.newRepository(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.ResumeRepository = repo

	publisher, err := c.newPublisher()
	if err != nil {
		c.Close()
		return nil, err
	}
	c.EventPublisher = publisher
	c.closers = append(c.closers, publisher.Close)

	c.ResumeService = service.NewResumeService(c.TextExtractor, c.ResumeExtractor, repo, publisher, appLogger)
	return c, nil
}

// DATABASE_URL wins over Supabase; without either records stay in memory.
func (c *Container) newRepository(ctx context.Context) (domain.ResumeRepository, error) {
	if dsn := c.Config.GetDatabaseURL(); dsn != "" {
		db, err := repository.OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, db.Close)
		c.Logger.Info("Using PostgreSQL resume repository")
		return repository.NewPostgresResumeRepository(db, c.Logger), nil
	}

	if c.Config.GetSupabaseURL() != "" {
		client := supabase.NewClient(c.Config.GetSupabaseURL(), c.Config.GetSupabaseKey(), c.Logger)
		if err := client.Initialize(); err != nil {
			return nil, err
		}
		c.Logger.Info("Using Supabase resume repository")
		return repository.NewSupabaseResumeRepository(client.DB(), c.Logger), nil
	}

	c.Logger.Warn("No database configured, resumes are kept in memory")
	return repository.NewMemoryResumeRepository(), nil
}

func (c *Container) newPublisher() (domain.EventPublisher, error) {
	url := c.Config.GetRabbitMQURL()
	if url == "" {
		c.Logger.Debug("RabbitMQ not configured, resume events are not published")
		return rabbitmq.NoopPublisher{}, nil
	}

	publisher, err := rabbitmq.NewPublisher(url, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return publisher, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Error("Failed to close dependency", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	c.closers = nil
	return firstErr
}
