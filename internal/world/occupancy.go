package world

import (
	"fmt"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// IsOccupied проверяет, занята ли ячейка каким-либо блоком: свободным,
// блоком ствола/листвы любого дерева или частью любой постройки.
func (w *World) IsOccupied(cell vec.Vec3) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isOccupiedLocked(cell)
}

func (w *World) isOccupiedLocked(cell vec.Vec3) bool {
	if w.index != nil {
		return w.index.Contains(cell)
	}
	_, ok := w.lookupLocked(cell)
	return ok
}

// Lookup возвращает владельца ячейки с актуальным индексом в последовательности
func (w *World) Lookup(cell vec.Vec3) (BlockRef, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lookupLocked(cell)
}

// lookupLocked ищет владельца ячейки. Порядок обхода: свободные блоки,
// деревья (ствол, затем листва), постройки (основания, столбы, перекладины, крыша).
func (w *World) lookupLocked(cell vec.Vec3) (BlockRef, bool) {
	if w.index != nil {
		return w.lookupIndexedLocked(cell)
	}

	if _, ok := w.free[cell]; ok {
		return BlockRef{Kind: block.KindFree, Part: block.PartNone, Index: -1, Cell: cell}, true
	}

	scan := func(arena []*compound) (BlockRef, bool) {
		for slot, c := range arena {
			for _, p := range c.order {
				for i, sb := range c.parts[p] {
					if sb.Cell == cell {
						return BlockRef{
							Kind:  block.KindOf(p),
							Part:  p,
							Owner: Handle{Slot: slot, Generation: w.epoch},
							Index: i,
							Block: sb.ID,
							Cell:  cell,
						}, true
					}
				}
			}
		}
		return BlockRef{}, false
	}

	if ref, ok := scan(w.trees); ok {
		return ref, true
	}
	return scan(w.structures)
}

func (w *World) lookupIndexedLocked(cell vec.Vec3) (BlockRef, bool) {
	e, ok := w.index.Lookup(cell)
	if !ok {
		return BlockRef{}, false
	}

	ref := BlockRef{Kind: e.kind, Part: e.part, Owner: e.owner, Index: -1, Block: e.block, Cell: cell}
	if e.kind == block.KindFree {
		return ref, true
	}

	c, found := w.ownerLocked(e.kind, e.owner)
	if !found {
		return BlockRef{}, false
	}
	ref.Index = c.indexOf(e.part, e.block)
	if ref.Index < 0 {
		return BlockRef{}, false
	}
	return ref, true
}

// ownerLocked возвращает сущность-владельца по категории блока
func (w *World) ownerLocked(kind block.Kind, h Handle) (*compound, bool) {
	switch kind {
	case block.KindTrunk, block.KindLeaf:
		return w.treeLocked(h)
	case block.KindStructure:
		return w.structureLocked(h)
	default:
		return nil, false
	}
}

// Place ставит свободный блок, только если ячейка не занята.
// Иначе возвращает ErrAlreadyOccupied и ничего не меняет.
func (w *World) Place(cell vec.Vec3) error {
	w.mu.Lock()
	if w.isOccupiedLocked(cell) {
		w.mu.Unlock()
		return fmt.Errorf("установка в %s: %w", cell, ErrAlreadyOccupied)
	}

	w.free[cell] = struct{}{}
	if w.index != nil {
		w.index.Insert(cell, cellEntry{kind: block.KindFree, part: block.PartNone})
	}
	w.mu.Unlock()

	w.emit(BlockEvent{EventType: EventTypeBlockPlaced, Cell: cell, Kind: block.KindFree})
	return nil
}

// RemoveFreeStanding удаляет свободный блок. Возвращает false, если его не было.
func (w *World) RemoveFreeStanding(cell vec.Vec3) bool {
	w.mu.Lock()
	if _, ok := w.free[cell]; !ok {
		w.mu.Unlock()
		return false
	}
	delete(w.free, cell)
	if w.index != nil {
		w.index.Remove(cell)
	}
	w.mu.Unlock()

	w.emit(BlockEvent{EventType: EventTypeBlockRemoved, Cell: cell, Kind: block.KindFree})
	return true
}

// RemoveFromTree удаляет ровно один элемент последовательности дерева по индексу.
// Индекс должен быть получен тем же запросом, что и удаление: любое удаление
// из той же последовательности сдвигает последующие индексы.
func (w *World) RemoveFromTree(h TreeHandle, part block.Part, index int) error {
	if !block.IsTreePart(part) {
		return fmt.Errorf("дерево: %w: %q", ErrUnknownPart, part)
	}
	return w.removeAt(block.KindOf(part), Handle(h), part, index)
}

// RemoveFromStructure удаляет ровно один элемент последовательности постройки по индексу
func (w *World) RemoveFromStructure(h StructureHandle, part block.Part, index int) error {
	if !block.IsStructurePart(part) {
		return fmt.Errorf("постройка: %w: %q", ErrUnknownPart, part)
	}
	return w.removeAt(block.KindStructure, Handle(h), part, index)
}

func (w *World) removeAt(kind block.Kind, h Handle, part block.Part, index int) error {
	w.mu.Lock()
	c, ok := w.ownerLocked(kind, h)
	if !ok {
		w.mu.Unlock()
		return fmt.Errorf("%s #%d: %w", kind, h.Slot, ErrStaleReference)
	}
	removed, ok := c.splice(part, index)
	if !ok {
		w.mu.Unlock()
		return fmt.Errorf("%s #%d %s[%d]: %w", kind, h.Slot, part, index, ErrStaleReference)
	}
	if w.index != nil {
		w.index.Remove(removed.Cell)
	}
	w.mu.Unlock()

	w.emit(BlockEvent{EventType: EventTypeBlockRemoved, Cell: removed.Cell, Kind: kind, Part: part, Owner: h, Block: removed.ID})
	return nil
}

// RemoveBlock удаляет блок, на который указывает результат пика.
// Ссылка перепроверяется: сначала по индексу и стабильному ID, затем поиском
// по ID. Если блока больше нет, возвращается ErrStaleReference и мир не меняется.
func (w *World) RemoveBlock(ref BlockRef) error {
	if ref.IsFree() {
		if !w.RemoveFreeStanding(ref.Cell) {
			return fmt.Errorf("свободный блок %s: %w", ref.Cell, ErrStaleReference)
		}
		return nil
	}

	w.mu.Lock()
	c, ok := w.ownerLocked(ref.Kind, ref.Owner)
	if !ok || !c.hasPart(ref.Part) {
		w.mu.Unlock()
		return fmt.Errorf("%s: %w", ref, ErrStaleReference)
	}

	index := ref.Index
	seq := c.parts[ref.Part]
	if index < 0 || index >= len(seq) || seq[index].ID != ref.Block {
		index = c.indexOf(ref.Part, ref.Block)
	}
	if index < 0 {
		w.mu.Unlock()
		return fmt.Errorf("%s: %w", ref, ErrStaleReference)
	}

	removed, _ := c.splice(ref.Part, index)
	if w.index != nil {
		w.index.Remove(removed.Cell)
	}
	w.mu.Unlock()

	w.emit(BlockEvent{
		EventType: EventTypeBlockRemoved,
		Cell:      removed.Cell,
		Kind:      ref.Kind,
		Part:      ref.Part,
		Owner:     ref.Owner,
		Block:     removed.ID,
	})
	return nil
}
