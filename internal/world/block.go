package world

import (
	"fmt"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// BlockRef: дискриминированная ссылка на владельца блока: свободный набор,
// конкретное дерево или постройка, часть и позиция в последовательности
type BlockRef struct {
	Kind  block.Kind // Категория блока
	Part  block.Part // Часть сущности (PartNone для свободных блоков)
	Owner Handle     // Хендл дерева или постройки; пустой для свободных блоков
	Index int        // Индекс в последовательности на момент запроса
	Block BlockID    // Стабильный ID блока внутри сущности
	Cell  vec.Vec3   // Занятая ячейка
}

// IsFree проверяет, указывает ли ссылка на свободно стоящий блок
func (r BlockRef) IsFree() bool {
	return r.Kind == block.KindFree
}

// Tree возвращает хендл дерева-владельца
func (r BlockRef) Tree() TreeHandle {
	return TreeHandle(r.Owner)
}

// Structure возвращает хендл постройки-владельца
func (r BlockRef) Structure() StructureHandle {
	return StructureHandle(r.Owner)
}

// Material возвращает материал, которым рисуется блок
func (r BlockRef) Material() block.Material {
	return block.MaterialFor(r.Part)
}

func (r BlockRef) String() string {
	if r.IsFree() {
		return fmt.Sprintf("free%s", r.Cell)
	}
	return fmt.Sprintf("%s#%d/%s[%d] id=%d %s", r.Kind, r.Owner.Slot, r.Part, r.Index, r.Block, r.Cell)
}

// BlockInfo описывает блок при обходе мира (для рендерера)
type BlockInfo struct {
	Kind     block.Kind
	Part     block.Part
	Material block.Material
	Pos      vec.Vec3Float
	Cell     vec.Vec3
}
