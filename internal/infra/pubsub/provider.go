package pubsub

import (
	"context"
	"log/slog"

	"plaza/config"
	"plaza/internal/domain/entity"
	"plaza/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	ProviderNone   = "none"
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// discardPublisher drops events when no broker is configured.
type discardPublisher struct {
	logger *slog.Logger
}

func (p discardPublisher) PublishEconomyEvent(_ context.Context, event *entity.EconomyEvent) error {
	p.logger.Debug("Economy event dropped, no broker configured", slog.String("type", string(event.Type)))

	return nil
}

func (discardPublisher) Close() error { return nil }

type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the broker named by pubsub.provider.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger.With(slog.String("component", "pubsub"))

	if cfg == nil || cfg.Provider == "" || cfg.Provider == ProviderNone {
		logger.Info("Economy events disabled")

		return discardPublisher{logger: logger}, nil
	}

	publisher, err := open(params.Ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Economy event publisher ready", slog.String("provider", cfg.Provider))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func open(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}

		return NewPushPublisher(cfg.LocalEndpoint, cfg.PublishTimeout, logger), nil
	case ProviderGoogle:
		switch {
		case cfg.ProjectID == "":
			return nil, errors.New("project ID is required for google provider")
		case cfg.TopicID == "":
			return nil, errors.New("topic ID is required for google provider")
		}

		return NewTopicPublisher(ctx, TopicTarget{
			ProjectID: cfg.ProjectID,
			TopicID:   cfg.TopicID,
			Timeout:   cfg.PublishTimeout,
		}, logger)
	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
