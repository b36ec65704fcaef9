package world

import (
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// EventType определяет тип события мира
type EventType uint8

const (
	EventTypeBlockPlaced    EventType = iota // Установка свободного блока
	EventTypeBlockRemoved                    // Удаление блока любой категории
	EventTypeEntityAdded                     // Регистрация дерева или постройки
	EventTypeWorldReset                      // Мир очищен
)

// String возвращает имя типа события (используется как EventType конверта шины)
func (t EventType) String() string {
	switch t {
	case EventTypeBlockPlaced:
		return "BlockPlaced"
	case EventTypeBlockRemoved:
		return "BlockRemoved"
	case EventTypeEntityAdded:
		return "EntityAdded"
	case EventTypeWorldReset:
		return "WorldReset"
	default:
		return "Unknown"
	}
}

// Event представляет собой интерфейс для всех событий
type Event interface {
	GetType() EventType
}

// BlockEvent представляет событие, связанное с блоком
type BlockEvent struct {
	EventType EventType  `json:"-"`
	Cell      vec.Vec3   `json:"cell"`
	Kind      block.Kind `json:"kind"`
	Part      block.Part `json:"part,omitempty"`
	Owner     Handle     `json:"owner"`
	Block     BlockID    `json:"block"`
}

// GetType возвращает тип события
func (e BlockEvent) GetType() EventType {
	return e.EventType
}

// EntityEvent представляет событие регистрации составной сущности
type EntityEvent struct {
	Type   EntityType `json:"type"`
	Name   string     `json:"name"`
	Owner  Handle     `json:"owner"`
	Blocks int        `json:"blocks"`
}

// GetType возвращает тип события
func (e EntityEvent) GetType() EventType {
	return EventTypeEntityAdded
}

// ResetEvent сообщает, что мир очищен и все хендлы устарели
type ResetEvent struct {
	Epoch uint32 `json:"epoch"`
}

// GetType возвращает тип события
func (e ResetEvent) GetType() EventType {
	return EventTypeWorldReset
}

// EventSink получает события мира. Вызывается после снятия блокировки мира.
type EventSink interface {
	Publish(ev Event)
}
