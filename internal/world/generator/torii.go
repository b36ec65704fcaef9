package generator

import (
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// ToriiName: имя постройки-ворот в мире
const ToriiName = "torii"

// Torii строит ворота-тории: два столба шириной 4 блока, две перекладины и
// двухслойную крышу с загнутыми концами. Позиции смещены на половину блока
// по высоте (и по z для крыши) для рендера; занятость считается по floor.
// Ячейки, совпавшие после округления (нижняя перекладина со столбами,
// второй слой крыши с первым), отбрасываются сборщиком.
func Torii(base vec.Vec2) *Builder {
	b := NewBuilder()
	bx, bz := float64(base.X), float64(base.Y)

	// Основания столбов: нижние 2 блока (чёрные)
	for y := 0; y < 2; y++ {
		b.Add(block.PartFeet, bx, float64(y)+0.5, bz)
		b.Add(block.PartFeet, bx+4, float64(y)+0.5, bz)
	}
	// Столбы: оставшиеся 5 блоков (красные)
	for y := 2; y < 7; y++ {
		b.Add(block.PartPillars, bx, float64(y)+0.5, bz)
		b.Add(block.PartPillars, bx+4, float64(y)+0.5, bz)
	}
	// Нижняя перекладина y=5.5, x=0..4
	for x := 0; x <= 4; x++ {
		b.Add(block.PartCrossbeams, bx+float64(x), 5.5, bz)
	}
	// Верхняя перекладина y=7, x=-1..5
	for x := -1; x <= 5; x++ {
		b.Add(block.PartCrossbeams, bx+float64(x), 7.0, bz)
	}
	// Крыша: основной слой y=8, x=-1..5
	for x := -1; x <= 5; x++ {
		b.Add(block.PartRoof, bx+float64(x), 8.0, bz+0.5)
	}
	// Крыша: второй слой y=8.5, x=0..4
	for x := 0; x <= 4; x++ {
		b.Add(block.PartRoof, bx+float64(x), 8.5, bz+0.5)
	}
	// Загнутые концы крыши
	b.Add(block.PartRoof, bx-2, 8.5, bz+0.5)
	b.Add(block.PartRoof, bx+6, 8.5, bz+0.5)
	return b
}
