package pubsub

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/domain/entity"
	"plaza/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// TopicTarget names the Cloud Pub/Sub topic economy events go to.
type TopicTarget struct {
	ProjectID string
	TopicID   string
	Timeout   time.Duration
}

func (t TopicTarget) path() string {
	return "projects/" + t.ProjectID + "/topics/" + t.TopicID
}

type topicPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	target    TopicTarget
	logger    *slog.Logger
}

// NewTopicPublisher connects to Cloud Pub/Sub and fails fast when the topic does not exist.
func NewTopicPublisher(ctx context.Context, target TopicTarget, logger *slog.Logger, opts ...option.ClientOption) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, target.ProjectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: target.path()}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", target.TopicID)
	}

	publisher := client.Publisher(target.TopicID)
	publisher.EnableMessageOrdering = true

	return &topicPublisher{
		client:    client,
		publisher: publisher,
		target:    target,
		logger:    logger,
	}, nil
}

// PublishEconomyEvent blocks until the broker acknowledges the message.
func (p *topicPublisher) PublishEconomyEvent(ctx context.Context, event *entity.EconomyEvent) error {
	env, err := newEnvelope(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout(p.target.Timeout))
	defer cancel()

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        env.data,
		Attributes:  env.attributes,
		OrderingKey: env.orderingKey,
	})
	serverID, err := result.Get(ctx)
	if err != nil {
		// A failed ordered publish pauses its key until resumed.
		p.publisher.ResumePublish(env.orderingKey)

		return errors.Wrapf(err, "failed to publish %s event", event.Type)
	}

	deliverycontext.GetLoggerOrDefault(ctx, p.logger).Debug("Economy event published",
		slog.String("topic", p.target.path()),
		slog.String("type", string(event.Type)),
		slog.String("server_id", serverID),
	)

	return nil
}

func (p *topicPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
