package world

import (
	"fmt"
	"sort"
	"sync"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// OccupancyMode определяет способ ответа на запросы занятости
type OccupancyMode string

const (
	// ModeScan: линейный обход всех коллекций при каждом запросе
	ModeScan OccupancyMode = "scan"
	// ModeIndexed: единый индекс ячеек, обновляемый инкрементально
	ModeIndexed OccupancyMode = "indexed"
)

// ParseOccupancyMode разбирает режим из конфигурации; пустая строка означает ModeScan
func ParseOccupancyMode(s string) (OccupancyMode, error) {
	switch OccupancyMode(s) {
	case "", ModeScan:
		return ModeScan, nil
	case ModeIndexed:
		return ModeIndexed, nil
	default:
		return "", fmt.Errorf("неизвестный режим занятости %q", s)
	}
}

// Options задаёт параметры мира
type Options struct {
	Mode OccupancyMode
	Sink EventSink
}

// World: агрегат хранилища занятости: свободные блоки, деревья и постройки.
// Владеется контроллером сцены и передаётся по ссылке.
type World struct {
	mu         sync.RWMutex
	mode       OccupancyMode
	free       map[vec.Vec3]struct{}
	trees      []*compound
	structures []*compound
	index      *CellIndex // только в ModeIndexed
	epoch      uint32
	sink       EventSink
}

// NewWorld создаёт пустой мир
func NewWorld(opts Options) *World {
	mode := opts.Mode
	if mode == "" {
		mode = ModeScan
	}

	w := &World{
		mode: mode,
		free: make(map[vec.Vec3]struct{}),
		sink: opts.Sink,
	}
	if mode == ModeIndexed {
		w.index = NewCellIndex()
	}
	return w
}

// Mode возвращает режим занятости
func (w *World) Mode() OccupancyMode {
	return w.mode
}

// SetEventSink устанавливает получателя событий
func (w *World) SetEventSink(sink EventSink) {
	w.mu.Lock()
	w.sink = sink
	w.mu.Unlock()
}

// emit отправляет события получателю. Вызывается без удержания w.mu.
func (w *World) emit(events ...Event) {
	w.mu.RLock()
	sink := w.sink
	w.mu.RUnlock()

	if sink == nil {
		return
	}
	for _, ev := range events {
		sink.Publish(ev)
	}
}

// Reset очищает мир и переводит его в новую эпоху
func (w *World) Reset() {
	w.mu.Lock()
	w.free = make(map[vec.Vec3]struct{})
	w.trees = nil
	w.structures = nil
	if w.index != nil {
		w.index.Reset()
	}
	w.epoch++
	epoch := w.epoch
	w.mu.Unlock()

	w.emit(ResetEvent{Epoch: epoch})
}

// AddTree регистрирует дерево, построенное генератором.
// Сущность отклоняется целиком, если её ячейки повторяются или уже заняты.
func (w *World) AddTree(trunk, leaves []vec.Vec3Float) (TreeHandle, error) {
	h, err := w.addCompound(EntityTypeTree, "tree", block.TreeParts, map[block.Part][]vec.Vec3Float{
		block.PartTrunk:  trunk,
		block.PartLeaves: leaves,
	})
	return TreeHandle(h), err
}

// AddStructure регистрирует постройку из четырёх частей (основания, столбы, перекладины, крыша)
func (w *World) AddStructure(name string, parts map[block.Part][]vec.Vec3Float) (StructureHandle, error) {
	for p := range parts {
		if !block.IsStructurePart(p) {
			return StructureHandle{}, fmt.Errorf("постройка %s: %w: %q", name, ErrUnknownPart, p)
		}
	}
	h, err := w.addCompound(EntityTypeStructure, name, block.StructureParts, parts)
	return StructureHandle(h), err
}

func (w *World) addCompound(t EntityType, name string, order []block.Part, parts map[block.Part][]vec.Vec3Float) (Handle, error) {
	w.mu.Lock()

	// Проверяем уникальность ячеек внутри сущности и относительно мира
	seen := make(map[vec.Vec3]struct{})
	for _, p := range order {
		for _, pos := range parts[p] {
			cell := pos.Floor()
			if _, dup := seen[cell]; dup {
				w.mu.Unlock()
				return Handle{}, fmt.Errorf("%s: %w %s", name, ErrDuplicateCell, cell)
			}
			seen[cell] = struct{}{}
			if w.isOccupiedLocked(cell) {
				w.mu.Unlock()
				return Handle{}, fmt.Errorf("%s: %w %s", name, ErrAlreadyOccupied, cell)
			}
		}
	}

	c := newCompound(t, name, order)
	var h Handle
	if t == EntityTypeTree {
		h = Handle{Slot: len(w.trees), Generation: w.epoch}
		w.trees = append(w.trees, c)
	} else {
		h = Handle{Slot: len(w.structures), Generation: w.epoch}
		w.structures = append(w.structures, c)
	}

	for _, p := range order {
		for _, pos := range parts[p] {
			sb := c.append(p, pos)
			if w.index != nil {
				w.index.Insert(sb.Cell, cellEntry{kind: block.KindOf(p), part: p, owner: h, block: sb.ID})
			}
		}
	}
	total := c.size()
	w.mu.Unlock()

	w.emit(EntityEvent{Type: t, Name: name, Owner: h, Blocks: total})
	return h, nil
}

// treeLocked возвращает дерево по хендлу, проверяя эпоху
func (w *World) treeLocked(h Handle) (*compound, bool) {
	if h.Generation != w.epoch || h.Slot < 0 || h.Slot >= len(w.trees) {
		return nil, false
	}
	return w.trees[h.Slot], true
}

// structureLocked возвращает постройку по хендлу, проверяя эпоху
func (w *World) structureLocked(h Handle) (*compound, bool) {
	if h.Generation != w.epoch || h.Slot < 0 || h.Slot >= len(w.structures) {
		return nil, false
	}
	return w.structures[h.Slot], true
}

// Tree возвращает копию дерева по хендлу
func (w *World) Tree(h TreeHandle) (EntityView, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	c, ok := w.treeLocked(Handle(h))
	if !ok {
		return EntityView{}, false
	}
	return c.view(), true
}

// Structure возвращает копию постройки по хендлу
func (w *World) Structure(h StructureHandle) (EntityView, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	c, ok := w.structureLocked(Handle(h))
	if !ok {
		return EntityView{}, false
	}
	return c.view(), true
}

// TreeHandles возвращает хендлы всех деревьев текущей эпохи
func (w *World) TreeHandles() []TreeHandle {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]TreeHandle, len(w.trees))
	for i := range w.trees {
		out[i] = TreeHandle{Slot: i, Generation: w.epoch}
	}
	return out
}

// StructureHandles возвращает хендлы всех построек текущей эпохи
func (w *World) StructureHandles() []StructureHandle {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]StructureHandle, len(w.structures))
	for i := range w.structures {
		out[i] = StructureHandle{Slot: i, Generation: w.epoch}
	}
	return out
}

// FreeCells возвращает отсортированный список свободно стоящих блоков
func (w *World) FreeCells() []vec.Vec3 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.freeCellsLocked()
}

func (w *World) freeCellsLocked() []vec.Vec3 {
	cells := make([]vec.Vec3, 0, len(w.free))
	for c := range w.free {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return cells
}

// Count возвращает общее количество блоков во всех коллекциях
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n := len(w.free)
	for _, t := range w.trees {
		n += t.size()
	}
	for _, s := range w.structures {
		n += s.size()
	}
	return n
}

// FreeCount возвращает количество свободно стоящих блоков
func (w *World) FreeCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.free)
}

// TreeCount возвращает количество деревьев (включая опустевшие)
func (w *World) TreeCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.trees)
}

// StructureCount возвращает количество построек (включая опустевшие)
func (w *World) StructureCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.structures)
}

// ForEachBlock обходит все блоки мира: свободные (в порядке координат),
// затем деревья и постройки в порядке регистрации
func (w *World) ForEachBlock(fn func(BlockInfo)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, cell := range w.freeCellsLocked() {
		fn(BlockInfo{
			Kind:     block.KindFree,
			Part:     block.PartNone,
			Material: block.MaterialFor(block.PartNone),
			Pos:      cell.ToFloat(),
			Cell:     cell,
		})
	}

	walk := func(c *compound) {
		for _, p := range c.order {
			for _, sb := range c.parts[p] {
				fn(BlockInfo{
					Kind:     block.KindOf(p),
					Part:     p,
					Material: block.MaterialFor(p),
					Pos:      sb.Pos,
					Cell:     sb.Cell,
				})
			}
		}
	}
	for _, t := range w.trees {
		walk(t)
	}
	for _, s := range w.structures {
		walk(s)
	}
}

// GetStats возвращает краткую статистику мира
func (w *World) GetStats() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	total := len(w.free)
	for _, t := range w.trees {
		total += t.size()
	}
	for _, s := range w.structures {
		total += s.size()
	}

	stats := fmt.Sprintf("World Stats: mode=%s epoch=%d blocks=%d free=%d trees=%d structures=%d",
		w.mode, w.epoch, total, len(w.free), len(w.trees), len(w.structures))
	if w.index != nil {
		stats += "; " + w.index.GetStats()
	}
	return stats
}
