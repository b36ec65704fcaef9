package world

import (
	"fmt"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// cellEntry хранит владельца ячейки без индекса в последовательности:
// индекс вычисляется при запросе по стабильному ID блока
type cellEntry struct {
	kind  block.Kind
	part  block.Part
	owner Handle
	block BlockID
}

// CellIndex представляет единый индекс "ячейка → владелец", обновляемый
// инкрементально при каждой установке/удалении блока.
// Сам по себе не потокобезопасен: защищается мьютексом World.
type CellIndex struct {
	cells   map[vec.Vec3]cellEntry
	inserts uint64
	removes uint64
}

// NewCellIndex создаёт пустой индекс
func NewCellIndex() *CellIndex {
	return &CellIndex{
		cells: make(map[vec.Vec3]cellEntry),
	}
}

// Insert регистрирует владельца ячейки. Возвращает false, если ячейка уже занята.
func (ci *CellIndex) Insert(cell vec.Vec3, e cellEntry) bool {
	if _, exists := ci.cells[cell]; exists {
		return false
	}
	ci.cells[cell] = e
	ci.inserts++
	return true
}

// Remove удаляет ячейку из индекса
func (ci *CellIndex) Remove(cell vec.Vec3) {
	if _, exists := ci.cells[cell]; !exists {
		return
	}
	delete(ci.cells, cell)
	ci.removes++
}

// Lookup возвращает владельца ячейки
func (ci *CellIndex) Lookup(cell vec.Vec3) (cellEntry, bool) {
	e, ok := ci.cells[cell]
	return e, ok
}

// Contains проверяет занятость ячейки
func (ci *CellIndex) Contains(cell vec.Vec3) bool {
	_, ok := ci.cells[cell]
	return ok
}

// Count возвращает количество занятых ячеек
func (ci *CellIndex) Count() int {
	return len(ci.cells)
}

// Reset очищает индекс
func (ci *CellIndex) Reset() {
	ci.cells = make(map[vec.Vec3]cellEntry)
}

// GetStats возвращает статистику индекса
func (ci *CellIndex) GetStats() string {
	byKind := make(map[block.Kind]int)
	for _, e := range ci.cells {
		byKind[e.kind]++
	}

	return fmt.Sprintf("CellIndex Stats: %d cells (free=%d trunk=%d leaf=%d structure=%d), %d inserts, %d removes",
		len(ci.cells), byKind[block.KindFree], byKind[block.KindTrunk], byKind[block.KindLeaf],
		byKind[block.KindStructure], ci.inserts, ci.removes)
}
