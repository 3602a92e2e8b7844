package service

import (
	"context"

	"auction-desk-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Broadcaster is the delivery side of the live bus; the websocket hub
// implements it.
type Broadcaster interface {
	Broadcast(payload []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       Broadcaster
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub Broadcaster,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		logger:    log,
	}
}

// Consume forwards every frame from the live topic to the hub. Frames are
// already serialized; the consumer never inspects domain state.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	cs.hub.Broadcast(msg.Payload)
	cs.logger.Debug("Consumer", "Forwarded live frame", map[string]interface{}{
		"type":  msg.Metadata.Get("type"),
		"bytes": len(msg.Payload),
	})
	msg.Ack()
}
