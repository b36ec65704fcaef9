package world

import (
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// EntityType определяет тип составной сущности
type EntityType uint8

const (
	EntityTypeTree      EntityType = 1 // Дерево: ствол + листва
	EntityTypeStructure EntityType = 2 // Постройка: основания, столбы, перекладины, крыша
)

// Handle адресует сущность в арене мира. Поколение совпадает с эпохой мира
// на момент создания: после Reset все старые хендлы становятся недействительными.
type Handle struct {
	Slot       int
	Generation uint32
}

// TreeHandle: хендл дерева
type TreeHandle Handle

// StructureHandle: хендл постройки
type StructureHandle Handle

// BlockID: стабильный идентификатор блока внутри сущности.
// В отличие от индекса в последовательности, не сдвигается после удалений.
type BlockID uint32

// StoredBlock описывает блок внутри последовательности сущности
type StoredBlock struct {
	ID   BlockID       // Стабильный идентификатор внутри сущности
	Pos  vec.Vec3Float // Позиция для рендера (тории использует смещения на 0.5)
	Cell vec.Vec3      // Ячейка занятости: floor(Pos)
}

// compound: общая реализация дерева и постройки: набор именованных
// упорядоченных последовательностей блоков
type compound struct {
	entityType EntityType
	name       string
	order      []block.Part
	parts      map[block.Part][]StoredBlock
	nextID     BlockID
}

func newCompound(t EntityType, name string, order []block.Part) *compound {
	return &compound{
		entityType: t,
		name:       name,
		order:      order,
		parts:      make(map[block.Part][]StoredBlock, len(order)),
	}
}

// hasPart проверяет, есть ли у сущности такая часть
func (c *compound) hasPart(p block.Part) bool {
	for _, op := range c.order {
		if op == p {
			return true
		}
	}
	return false
}

// append добавляет блок в конец последовательности
func (c *compound) append(p block.Part, pos vec.Vec3Float) StoredBlock {
	sb := StoredBlock{ID: c.nextID, Pos: pos, Cell: pos.Floor()}
	c.nextID++
	c.parts[p] = append(c.parts[p], sb)
	return sb
}

// indexOf ищет текущий индекс блока по стабильному ID
func (c *compound) indexOf(p block.Part, id BlockID) int {
	for i, sb := range c.parts[p] {
		if sb.ID == id {
			return i
		}
	}
	return -1
}

// splice удаляет ровно один элемент последовательности, сохраняя порядок остальных
func (c *compound) splice(p block.Part, index int) (StoredBlock, bool) {
	seq := c.parts[p]
	if index < 0 || index >= len(seq) {
		return StoredBlock{}, false
	}
	removed := seq[index]
	c.parts[p] = append(seq[:index], seq[index+1:]...)
	return removed, true
}

// size возвращает общее количество блоков сущности
func (c *compound) size() int {
	n := 0
	for _, p := range c.order {
		n += len(c.parts[p])
	}
	return n
}

// snapshot копирует последовательность части
func (c *compound) snapshot(p block.Part) []StoredBlock {
	seq := c.parts[p]
	out := make([]StoredBlock, len(seq))
	copy(out, seq)
	return out
}

// EntityView: неизменяемая копия сущности для чтения снаружи пакета
type EntityView struct {
	Type  EntityType
	Name  string
	Parts map[block.Part][]StoredBlock
}

// Cells возвращает ячейки части в порядке последовательности
func (v EntityView) Cells(p block.Part) []vec.Vec3 {
	seq := v.Parts[p]
	cells := make([]vec.Vec3, len(seq))
	for i, sb := range seq {
		cells[i] = sb.Cell
	}
	return cells
}

// Len возвращает общее количество блоков
func (v EntityView) Len() int {
	n := 0
	for _, seq := range v.Parts {
		n += len(seq)
	}
	return n
}

// Empty: вырожденная, но допустимая сущность без блоков
func (v EntityView) Empty() bool {
	return v.Len() == 0
}

func (c *compound) view() EntityView {
	parts := make(map[block.Part][]StoredBlock, len(c.order))
	for _, p := range c.order {
		parts[p] = c.snapshot(p)
	}
	return EntityView{Type: c.entityType, Name: c.name, Parts: parts}
}
