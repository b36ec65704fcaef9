package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/annel0/blockscene/internal/eventbus"
	"github.com/annel0/blockscene/internal/logging"
	"github.com/annel0/blockscene/internal/world"
	"github.com/google/uuid"
)

// EventSource: имя источника событий мира в конвертах шины
const EventSource = "world"

// BusSink пересылает события мира в шину событий
type BusSink struct {
	bus    eventbus.EventBus
	logger *logging.Logger
}

// NewBusSink создаёт приёмник событий мира поверх шины
func NewBusSink(bus eventbus.EventBus, logger *logging.Logger) *BusSink {
	return &BusSink{bus: bus, logger: logger}
}

// Publish упаковывает событие в конверт и отправляет его в шину
func (s *BusSink) Publish(ev world.Event) {
	env, err := NewEnvelope(ev)
	if err != nil {
		s.logger.Error("Не удалось сериализовать событие %s: %v", ev.GetType(), err)
		return
	}
	if err := s.bus.Publish(context.Background(), env); err != nil {
		s.logger.Warn("Событие %s не опубликовано: %v", env.EventType, err)
	}
}

// NewEnvelope создаёт конверт шины с JSON-нагрузкой события мира
func NewEnvelope(ev world.Event) (*eventbus.Envelope, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	priority := 1
	if ev.GetType() == world.EventTypeWorldReset {
		priority = 5
	}
	return &eventbus.Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    EventSource,
		EventType: ev.GetType().String(),
		Version:   1,
		Priority:  priority,
		Payload:   payload,
	}, nil
}
