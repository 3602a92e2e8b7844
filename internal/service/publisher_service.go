package service

import (
	"context"
	"encoding/json"
	"time"

	"auction-desk-be/internal/dto"
	"auction-desk-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService puts fully composed live frames on the in-process bus.
// Mutating commands return as soon as the frame is enqueued; fan-out to
// individual viewers is the consumer's problem.
type IPublisherService interface {
	PublishSnapshot(ctx context.Context, snapshot *dto.SnapshotResponse) error
	PublishLog(ctx context.Context, logMessage string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) PublishSnapshot(ctx context.Context, snapshot *dto.SnapshotResponse) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", snapshot.Type)
	return s.pubSub.Publish(s.topicName, msg)
}

func (s *publisherService) PublishLog(ctx context.Context, logMessage string) error {
	frame := map[string]interface{}{
		"type":    events.TypeLog,
		"message": logMessage,
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", events.TypeLog)
	msg.Metadata.Set("occurred_at", time.Now().UTC().Format(time.RFC3339))
	return s.pubSub.Publish(s.topicName, msg)
}
