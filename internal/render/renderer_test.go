package render

import (
	"testing"

	"github.com/annel0/blockscene/internal/camera"
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world"
	"github.com/annel0/blockscene/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDrawsEveryBlock(t *testing.T) {
	w := world.NewWorld(world.Options{})
	require.NoError(t, w.Place(vec.Vec3{X: 1, Y: 0, Z: 2}))
	_, err := w.AddTree(
		[]vec.Vec3Float{{X: 5, Y: 0, Z: 5}, {X: 5, Y: 1, Z: 5}},
		[]vec.Vec3Float{{X: 5, Y: 2, Z: 5}},
	)
	require.NoError(t, err)
	_, err = w.AddStructure("torii", map[block.Part][]vec.Vec3Float{
		block.PartPillars: {{X: -2.5, Y: 0.5, Z: 6.5}},
	})
	require.NoError(t, err)

	rec := NewRecorder()
	cam := camera.New(camera.DefaultSettings())
	n := Frame(rec, w, cam, 16.0/9.0)

	assert.Equal(t, 5, n)
	assert.Equal(t, 1, rec.Frames())

	calls := rec.Calls()
	require.Len(t, calls, 5)
	assert.Equal(t, DrawCall{Position: vec.Vec3Float{X: 1, Y: 0.5, Z: 2}, Material: block.MaterialCobblestone}, calls[0],
		"свободный блок поднимается на полблока")
	assert.Equal(t, vec.Vec3Float{X: 5, Y: 0, Z: 5}, calls[1].Position)
	assert.Equal(t, block.MaterialLog, calls[1].Material)
	assert.Equal(t, block.MaterialLeaf, calls[3].Material)
	assert.Equal(t, vec.Vec3Float{X: -2.5, Y: 0.5, Z: 6.5}, calls[4].Position, "постройка рисуется по сохранённой позиции")
	assert.Equal(t, block.MaterialRed, calls[4].Material)

	counts := rec.CountByMaterial()
	assert.Equal(t, 2, counts[block.MaterialLog])
	assert.Contains(t, rec.Summary(), "cubes=5")
	assert.Contains(t, rec.Summary(), "sky=true ground=true")
}

func TestFrameReplacesPreviousCalls(t *testing.T) {
	w := world.NewWorld(world.Options{})
	require.NoError(t, w.Place(vec.Vec3{}))
	rec := NewRecorder()
	cam := camera.New(camera.DefaultSettings())

	Frame(rec, w, cam, 1)
	require.True(t, w.RemoveFreeStanding(vec.Vec3{}))
	Frame(rec, w, cam, 1)

	assert.Equal(t, 2, rec.Frames())
	assert.Empty(t, rec.Calls())
}

func TestModelMatrix(t *testing.T) {
	m := ModelMatrix(world.BlockInfo{Kind: block.KindFree, Pos: vec.Vec3Float{X: 3, Y: 0, Z: 3}})
	assert.Equal(t, mgl64.Vec4{3, 0.5, 3, 1}, m.Col(3))

	m = ModelMatrix(world.BlockInfo{Kind: block.KindLeaf, Pos: vec.Vec3Float{X: 3, Y: 4, Z: 3}})
	assert.Equal(t, mgl64.Vec4{3, 4, 3, 1}, m.Col(3))
}
