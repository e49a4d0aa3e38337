package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"

	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

const BookingConfirmedTopic = "booking.confirmed"

// Bus carries booking notifications in-process.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, NewWatermillLogger(logger)),
		logger: logger,
	}
}

func (b *Bus) PublishBookingConfirmed(ctx context.Context, booking models.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("encode booking event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("booking_id", booking.ID)
	msg.SetContext(ctx)

	return b.pubSub.Publish(BookingConfirmedTopic, msg)
}

// SubscribeBookingConfirmed calls handle for every confirmed booking until
// ctx is done. Messages that fail to decode are acked and dropped.
func (b *Bus) SubscribeBookingConfirmed(ctx context.Context, handle func(models.Booking)) error {
	messages, err := b.pubSub.Subscribe(ctx, BookingConfirmedTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var booking models.Booking
			if err := json.Unmarshal(msg.Payload, &booking); err != nil {
				b.logger.Error("dropping undecodable booking event",
					zap.String("message_uuid", msg.UUID),
					zap.Error(err),
				)
				msg.Ack()
				continue
			}
			handle(booking)
			msg.Ack()
		}
	}()

	return nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
