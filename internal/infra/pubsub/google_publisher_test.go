package pubsub

import (
	"context"
	"encoding/json"
	"testing"

	"plaza/internal/domain/entity"

	"cloud.google.com/go/pubsub/v2/pstest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestGooglePubSubPublisher_PublishesToFakeServer(t *testing.T) {
	srv := pstest.NewServer()
	defer srv.Close()

	// Publishing through the fake creates the topic.
	srv.Publish("projects/plaza-test/topics/economy", []byte("init"), nil)

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	target := TopicTarget{ProjectID: "plaza-test", TopicID: "economy"}
	publisher, err := NewTopicPublisher(ctx, target, newDiscardLogger(), option.WithGRPCConn(conn))
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, publisher.PublishEconomyEvent(ctx, &entity.EconomyEvent{
		RequestID: "req-1",
		Type:      entity.EventLandPurchase,
		UserID:    userID,
		Amount:    -500,
	}))
	require.NoError(t, publisher.Close())

	messages := srv.Messages()
	require.Len(t, messages, 2)
	msg := messages[1]
	assert.Equal(t, "land_purchase", msg.Attributes["event_type"])
	assert.Equal(t, "req-1", msg.Attributes["request_id"])
	assert.Equal(t, SchemaEconomyV1, msg.Attributes["schema"])
	assert.Equal(t, userID.String(), msg.OrderingKey)

	var decoded entity.EconomyEvent
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, -500, decoded.Amount)
}

func TestGooglePubSubPublisher_MissingTopic(t *testing.T) {
	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	_, err = NewTopicPublisher(context.Background(), TopicTarget{ProjectID: "plaza-test", TopicID: "missing"},
		newDiscardLogger(), option.WithGRPCConn(conn))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get topic missing")
}
