package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/domain/entity"
	"plaza/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LocalSubscription is the subscription name stamped on locally pushed messages.
const LocalSubscription = "projects/local/subscriptions/plaza-economy"

// PushRequest is the body a Pub/Sub push subscription delivers. The local
// publisher produces the same shape so consumers can be developed offline.
type PushRequest struct {
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

type PushMessage struct {
	Data        []byte            `json:"data"` // base64 in JSON
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	OrderingKey string            `json:"orderingKey,omitempty"`
	PublishTime time.Time         `json:"publishTime"`
}

type pushPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewPushPublisher posts every event straight to endpoint, the way a push subscription would.
func NewPushPublisher(endpoint string, timeout time.Duration, logger *slog.Logger) service.EventPublisher {
	return &pushPublisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: publishTimeout(timeout)},
		logger:   logger,
	}
}

func (p *pushPublisher) PublishEconomyEvent(ctx context.Context, event *entity.EconomyEvent) error {
	env, err := newEnvelope(event)
	if err != nil {
		return err
	}

	push := PushRequest{
		Subscription: LocalSubscription,
		Message: PushMessage{
			Data:        env.data,
			Attributes:  env.attributes,
			MessageID:   uuid.NewString(),
			OrderingKey: env.orderingKey,
			PublishTime: time.Now().UTC(),
		},
	}
	body, err := json.Marshal(push)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to push economy event")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	deliverycontext.GetLoggerOrDefault(ctx, p.logger).Debug("Economy event pushed",
		slog.String("endpoint", p.endpoint),
		slog.String("type", string(event.Type)),
		slog.String("message_id", push.Message.MessageID),
	)

	return nil
}

func (p *pushPublisher) Close() error {
	p.client.CloseIdleConnections()

	return nil
}
