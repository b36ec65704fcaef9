package generator

import (
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// Builder собирает блоки сущности по частям. Общий для всех частей набор
// занятых ячеек отбрасывает повторы после округления вниз: побеждает первый.
type Builder struct {
	parts   map[block.Part][]vec.Vec3Float
	used    map[vec.Vec3]struct{}
	dropped int
}

// NewBuilder создаёт пустой сборщик
func NewBuilder() *Builder {
	return &Builder{
		parts: make(map[block.Part][]vec.Vec3Float),
		used:  make(map[vec.Vec3]struct{}),
	}
}

// Add добавляет блок в часть. Возвращает false, если ячейка уже использована.
func (b *Builder) Add(p block.Part, x, y, z float64) bool {
	pos := vec.Vec3Float{X: x, Y: y, Z: z}
	cell := pos.Floor()
	if _, exists := b.used[cell]; exists {
		b.dropped++
		return false
	}
	b.used[cell] = struct{}{}
	b.parts[p] = append(b.parts[p], pos)
	return true
}

// AddInt добавляет блок с целочисленными координатами
func (b *Builder) AddInt(p block.Part, x, y, z int) bool {
	return b.Add(p, float64(x), float64(y), float64(z))
}

// Box заполняет параллелепипед [x0..x1]×[y0..y1]×[z0..z1] включительно
func (b *Builder) Box(p block.Part, x0, x1, y0, y1, z0, z1 int) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				b.AddInt(p, x, y, z)
			}
		}
	}
}

// Blocks возвращает позиции части в порядке добавления
func (b *Builder) Blocks(p block.Part) []vec.Vec3Float {
	return b.parts[p]
}

// Parts возвращает все части
func (b *Builder) Parts() map[block.Part][]vec.Vec3Float {
	return b.parts
}

// Len возвращает количество принятых блоков
func (b *Builder) Len() int {
	return len(b.used)
}

// Dropped возвращает количество отброшенных повторов
func (b *Builder) Dropped() int {
	return b.dropped
}
