package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/model"
)

// BookingEvent is published on every lifecycle change: creation, approval,
// rejection.
type BookingEvent struct {
	EventID   string       `json:"eventId"`
	BookingID int64        `json:"bookingId"`
	ItemID    int64        `json:"itemId"`
	BookerID  int64        `json:"bookerId"`
	Status    model.Status `json:"status"`
	At        time.Time    `json:"at"`
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

// NewProducer wraps a sarama producer; a nil producer disables publishing.
func NewProducer(producer sarama.SyncProducer, topic string, log *zap.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		log:      log.Named("events"),
	}
}

// BookingChanged is fire-and-forget: publish failures are logged and never
// surfaced to the caller, a booking must not fail because the broker is down.
func (p *Producer) BookingChanged(booking model.Booking) {
	if p == nil || p.producer == nil {
		return
	}
	ev := BookingEvent{
		EventID:   uuid.NewString(),
		BookingID: booking.ID,
		ItemID:    booking.Item.ID,
		BookerID:  booking.Booker.ID,
		Status:    booking.Status,
		At:        time.Now().UTC(),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("marshal booking event", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.EventID),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.log.Error("send booking event", zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
}
