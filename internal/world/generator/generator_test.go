package generator

import (
	"testing"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world"
	"github.com/annel0/blockscene/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_DeduplicatesAcrossParts(t *testing.T) {
	b := NewBuilder()

	assert.True(t, b.Add(block.PartTrunk, 0, 5.5, 0))
	assert.False(t, b.Add(block.PartLeaves, 0.3, 5, 0.7), "та же ячейка после floor")
	assert.True(t, b.AddInt(block.PartLeaves, 0, 6, 0))

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.Dropped())
	assert.Len(t, b.Blocks(block.PartTrunk), 1)
	assert.Len(t, b.Blocks(block.PartLeaves), 1)
}

func TestBuilder_Box(t *testing.T) {
	b := NewBuilder()
	b.Box(block.PartLeaves, -1, 1, 0, 1, 2, 2)
	assert.Equal(t, 6, b.Len())
	assert.Equal(t, vec.Vec3Float{X: -1, Y: 0, Z: 2}, b.Blocks(block.PartLeaves)[0])
}

func TestCherryTrees_RegisterCleanly(t *testing.T) {
	for i, shape := range CherryTrees {
		w := world.NewWorld(world.Options{})
		b := shape(vec.Vec2{X: 3, Y: -4})

		h, err := w.AddTree(b.Blocks(block.PartTrunk), b.Blocks(block.PartLeaves))
		require.NoError(t, err, "дерево %d", i+1)

		view, ok := w.Tree(h)
		require.True(t, ok)
		assert.Equal(t, b.Len(), view.Len(), "дерево %d", i+1)
		assert.NotEmpty(t, view.Parts[block.PartTrunk])
		assert.NotEmpty(t, view.Parts[block.PartLeaves])
		assert.Equal(t, vec.Vec3{X: 3, Y: 0, Z: -4}, view.Cells(block.PartTrunk)[0], "ствол растёт от якоря")
	}
}

func TestTorii_Shape(t *testing.T) {
	b := Torii(vec.Vec2{X: 0, Y: 0})

	assert.Len(t, b.Blocks(block.PartFeet), 4)
	assert.Len(t, b.Blocks(block.PartPillars), 10)
	assert.Len(t, b.Blocks(block.PartCrossbeams), 10, "нижняя перекладина теряет 2 блока, совпавших со столбами")
	assert.Len(t, b.Blocks(block.PartRoof), 9, "второй слой крыши совпадает с первым, кроме концов")
	assert.Equal(t, 7, b.Dropped())

	// Позиции для рендера сохраняют половинные смещения
	assert.Equal(t, vec.Vec3Float{X: 0, Y: 0.5, Z: 0}, b.Blocks(block.PartFeet)[0])
	assert.Equal(t, vec.Vec3Float{X: -1, Y: 8, Z: 0.5}, b.Blocks(block.PartRoof)[0])
}

func TestPopulate_DefaultScene(t *testing.T) {
	w := world.NewWorld(world.Options{Mode: world.ModeIndexed})
	report, err := NewWorldGenerator(Config{Seed: 1}).Populate(w)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Trees)
	assert.Equal(t, 1, report.Structures)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, w.Count(), report.Blocks)
	assert.Equal(t, 3, w.TreeCount())
	assert.Equal(t, 1, w.StructureCount())

	// Ствол первого дерева стоит на якоре
	assert.True(t, w.IsOccupied(vec.Vec3{X: -10, Y: 0, Z: -5}))
	// Основание ворот
	ref, ok := w.Lookup(vec.Vec3{X: -2, Y: 0, Z: 6})
	require.True(t, ok)
	assert.Equal(t, block.KindStructure, ref.Kind)
	assert.Equal(t, block.PartFeet, ref.Part)
}

func TestPopulate_ExtraTreesDeterministic(t *testing.T) {
	build := func() (Report, int) {
		w := world.NewWorld(world.Options{})
		report, err := NewWorldGenerator(Config{Seed: 99, ExtraTrees: 6, Radius: 48}).Populate(w)
		require.NoError(t, err)
		return report, w.Count()
	}

	r1, c1 := build()
	r2, c2 := build()

	assert.Equal(t, r1, r2, "при одном сиде сцена одинакова")
	assert.Equal(t, c1, c2)
	assert.LessOrEqual(t, r1.Trees, 3+6)
	assert.Equal(t, 1, r1.Structures)
}

func TestPopulate_SkipDefaults(t *testing.T) {
	w := world.NewWorld(world.Options{})
	report, err := NewWorldGenerator(Config{SkipDefaults: true}).Populate(w)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Trees)
	assert.Equal(t, 0, w.Count())
}
