package event

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRabbitMQEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("should reject nil connection", func(t *testing.T) {
		pub, err := NewRabbitMQEventPublisher(nil, "credit-advisor", logger)
		assert.Nil(t, pub)
		assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
	})

	t.Run("should reject empty exchange name", func(t *testing.T) {
		pub, err := NewRabbitMQEventPublisher(&amqp.Connection{}, "", logger)
		assert.Nil(t, pub)
		assert.EqualError(t, err, "RabbitMQ exchange name cannot be empty")
	})
}

func TestNoopPublisher(t *testing.T) {
	var pub EventPublisher = NoopPublisher{}
	assert.NoError(t, pub.PublishCustomerCreated(context.Background(), CustomerCreatedEvent{}))
	assert.NoError(t, pub.PublishCustomerUpdated(context.Background(), CustomerUpdatedEvent{}))
}

func TestCustomerEventJSON(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	evt := CustomerCreatedEvent{
		Timestamp: ts,
		Payload: CustomerEventPayload{
			CustomerID:     7,
			NationalID:     "90010112345",
			Name:           "Jan Kowalski",
			EmploymentType: "permanent-contract",
			CreditHistory:  "good",
		},
	}

	body, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "90010112345", payload["nationalId"])
	assert.Equal(t, float64(7), payload["customerId"])
	assert.Equal(t, "permanent-contract", payload["employmentType"])
}
