package generator

import (
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
)

// TreeShape строит дерево от якоря (x, z) на уровне земли
type TreeShape func(base vec.Vec2) *Builder

// CherryTrees: все формы вишнёвых деревьев в порядке номеров
var CherryTrees = []TreeShape{CherryTree1, CherryTree2, CherryTree3, CherryTree4, CherryTree5, CherryTree6}

const (
	trunk  = block.PartTrunk
	leaves = block.PartLeaves
)

// CherryTree1: высокий ствол с двумя боковыми ветвями и плоской кроной
func CherryTree1(base vec.Vec2) *Builder {
	b := NewBuilder()
	bx, bz := base.X, base.Y

	for i := 0; i < 8; i++ {
		b.AddInt(trunk, bx, i, bz)
	}
	b.AddInt(trunk, bx+1, 3, bz)
	b.AddInt(trunk, bx+2, 3, bz)
	b.AddInt(trunk, bx+2, 4, bz)
	b.AddInt(trunk, bx-1, 5, bz)
	b.AddInt(trunk, bx-2, 5, bz)
	b.AddInt(trunk, bx-2, 6, bz)

	b.Box(leaves, bx-2, bx+2, 8, 8, bz-2, bz+2)
	b.Box(leaves, bx+1, bx+3, 4, 4, bz-1, bz+1)
	b.Box(leaves, bx-3, bx-1, 6, 6, bz-1, bz+1)
	return b
}

// CherryTree2: низкий ствол с четырьмя ветвями под плотной кроной
func CherryTree2(base vec.Vec2) *Builder {
	b := NewBuilder()
	bx, bz := base.X, base.Y

	for i := 0; i < 5; i++ {
		b.AddInt(trunk, bx, i, bz)
	}
	b.AddInt(trunk, bx+2, 2, bz)
	b.AddInt(trunk, bx-2, 2, bz)
	b.AddInt(trunk, bx, 2, bz+2)
	b.AddInt(trunk, bx, 2, bz-2)
	b.AddInt(trunk, bx+1, 3, bz+1)
	b.AddInt(trunk, bx-1, 3, bz-1)

	// Крона заполняется сверху вниз, ствол внутри уже занят и пропускается
	for x := -3; x <= 3; x++ {
		for z := -3; z <= 3; z++ {
			for y := 5; y >= 1; y-- {
				b.AddInt(leaves, bx+x, y, bz+z)
			}
		}
	}
	return b
}

// CherryTree3: прямой ствол с крестом ветвей и двухслойной кроной
func CherryTree3(base vec.Vec2) *Builder {
	b := NewBuilder()
	bx, bz := base.X, base.Y

	for i := 0; i < 9; i++ {
		b.AddInt(trunk, bx, i, bz)
	}
	b.AddInt(trunk, bx+2, 8, bz)
	b.AddInt(trunk, bx-2, 8, bz)
	b.AddInt(trunk, bx, 8, bz+2)
	b.AddInt(trunk, bx, 8, bz-2)

	b.Box(leaves, bx-3, bx+3, 9, 10, bz-3, bz+3)
	return b
}

// CherryTree4: изогнутый ствол с тремя облаками листвы
func CherryTree4(base vec.Vec2) *Builder {
	b := NewBuilder()
	bx, bz := base.X, base.Y

	for _, c := range [][3]int{
		{bx, 0, bz}, {bx, 1, bz}, {bx, 2, bz},
		{bx + 1, 3, bz}, {bx + 1, 4, bz},
		{bx + 2, 5, bz}, {bx + 2, 6, bz}, {bx + 2, 7, bz},
		{bx + 2, 7, bz + 1}, {bx + 2, 7, bz + 2}, {bx + 2, 8, bz + 2},
		{bx + 1, 5, bz - 1}, {bx + 1, 5, bz - 2},
	} {
		b.AddInt(trunk, c[0], c[1], c[2])
	}

	b.Box(leaves, bx-1, bx+5, 8, 9, bz-1, bz+5)
	b.Box(leaves, bx, bx+2, 4, 6, bz-3, bz-1)
	b.Box(leaves, bx-1, bx+3, 3, 4, bz-2, bz+2)
	return b
}

// CherryTree5: сдвоенный ствол с двумя ярусами кроны
func CherryTree5(base vec.Vec2) *Builder {
	b := NewBuilder()
	bx, bz := base.X, base.Y

	for i := 0; i < 8; i++ {
		b.AddInt(trunk, bx, i, bz)
	}
	for i := 0; i < 7; i++ {
		b.AddInt(trunk, bx+1, i, bz)
	}
	b.AddInt(trunk, bx+2, 7, bz)

	b.Box(leaves, bx-2, bx+4, 6, 7, bz-3, bz+3)
	b.Box(leaves, bx-1, bx+3, 3, 4, bz-2, bz+2)
	return b
}

// CherryTree6: короткий наклонный ствол под широкой раскидистой кроной
func CherryTree6(base vec.Vec2) *Builder {
	b := NewBuilder()
	bx, bz := base.X, base.Y

	b.AddInt(trunk, bx, 0, bz)
	b.AddInt(trunk, bx, 1, bz)
	b.AddInt(trunk, bx+1, 2, bz)
	b.AddInt(trunk, bx+1, 3, bz)
	b.AddInt(trunk, bx+1, 4, bz)

	b.Box(leaves, bx-3, bx+5, 3, 5, bz-4, bz+4)
	b.Box(leaves, bx-2, bx+4, 2, 2, bz-3, bz+3)
	return b
}
