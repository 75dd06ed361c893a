package pubsub

import (
	"encoding/json"
	"time"

	"plaza/internal/domain/entity"

	"github.com/pkg/errors"
)

const (
	// SchemaEconomyV1 tags the JSON layout of entity.EconomyEvent on the wire.
	SchemaEconomyV1 = "plaza.economy.v1"

	defaultPublishTimeout = 10 * time.Second
)

// envelope is a transport neutral economy message.
type envelope struct {
	data        []byte
	attributes  map[string]string
	orderingKey string
}

// newEnvelope encodes the event. Messages are ordered per resident, and the
// attributes let subscribers filter without decoding the body.
func newEnvelope(event *entity.EconomyEvent) (envelope, error) {
	if event == nil {
		return envelope{}, errors.New("nil economy event")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return envelope{}, errors.Wrap(err, "failed to encode economy event")
	}

	attributes := map[string]string{
		"schema":     SchemaEconomyV1,
		"event_type": string(event.Type),
		"user_id":    event.UserID.String(),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return envelope{
		data:        data,
		attributes:  attributes,
		orderingKey: event.UserID.String(),
	}, nil
}

func publishTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultPublishTimeout
	}

	return d
}
