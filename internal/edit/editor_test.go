package edit

import (
	"context"
	"sync"
	"testing"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type fixedView struct {
	pos, dir vec.Vec3Float
}

func (v fixedView) Position() vec.Vec3Float  { return v.pos }
func (v fixedView) Direction() vec.Vec3Float { return v.dir }

var lookNegZ = vec.Vec3Float{Z: -1}

func forEachMode(t *testing.T, fn func(t *testing.T, w *world.World)) {
	for _, mode := range []world.OccupancyMode{world.ModeScan, world.ModeIndexed} {
		mode := mode
		t.Run(string(mode), func(t *testing.T) {
			fn(t, world.NewWorld(world.Options{Mode: mode}))
		})
	}
}

func TestPickRemovePickAgain(t *testing.T) {
	forEachMode(t, func(t *testing.T, w *world.World) {
		ctx := context.Background()
		require.NoError(t, w.Place(vec.Vec3{X: 3, Y: 0, Z: 3}))

		ed := NewEditor(w, fixedView{pos: vec.Vec3Float{X: 3, Y: 0, Z: 13}, dir: lookNegZ}, DefaultOptions())

		hit, ok := ed.Pick()
		require.True(t, ok, "луч должен попасть в блок")
		assert.Equal(t, vec.Vec3{X: 3, Y: 0, Z: 3}, hit.Cell)
		assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 1}, hit.Face)

		res := ed.Primary(ctx)
		assert.Equal(t, StatusRemoved, res.Status)
		assert.Equal(t, vec.Vec3{X: 3, Y: 0, Z: 3}, res.Cell)
		assert.Equal(t, 0, w.Count(), "мир должен опустеть")

		_, ok = ed.Pick()
		assert.False(t, ok, "после удаления попаданий быть не должно")
		assert.Equal(t, StatusNoHit, ed.Primary(ctx).Status)
	})
}

func TestPlaceWithoutHit(t *testing.T) {
	forEachMode(t, func(t *testing.T, w *world.World) {
		ed := NewEditor(w, fixedView{dir: lookNegZ}, DefaultOptions())

		res := ed.Secondary(context.Background())
		assert.Equal(t, StatusPlaced, res.Status)
		assert.False(t, res.Hit)
		assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: -5}, res.Cell)
		assert.True(t, w.IsOccupied(vec.Vec3{X: 0, Y: 0, Z: -5}))
		assert.Equal(t, 1, w.Count())
	})
}

func TestPlaceInFrontOfHitFace(t *testing.T) {
	forEachMode(t, func(t *testing.T, w *world.World) {
		require.NoError(t, w.Place(vec.Vec3{X: 0, Y: 0, Z: -3}))
		ed := NewEditor(w, fixedView{pos: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}, dir: lookNegZ}, DefaultOptions())

		target, hit := ed.Target()
		assert.True(t, hit)
		assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: -2}, target)

		res := ed.Secondary(context.Background())
		assert.Equal(t, StatusPlaced, res.Status)
		assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: -2}, res.Cell, "блок ставится в пустую ячейку перед гранью")

		// Следующая установка наращивает столбик к камере
		res = ed.Secondary(context.Background())
		assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: -1}, res.Cell)
	})
}

func TestPlaceTargetNeverOccupied(t *testing.T) {
	forEachMode(t, func(t *testing.T, w *world.World) {
		for x := -2; x <= 2; x++ {
			for y := 0; y <= 2; y++ {
				require.NoError(t, w.Place(vec.Vec3{X: x, Y: y, Z: -4}))
			}
		}
		dirs := []vec.Vec3Float{
			{X: 0.3, Y: 0.1, Z: -1},
			{X: -0.4, Y: 0.2, Z: -1},
			{X: 0, Y: 0.05, Z: -1},
			{X: 0.2, Y: 0.3, Z: -1},
		}
		for _, d := range dirs {
			ed := NewEditor(w, fixedView{pos: vec.Vec3Float{X: 0.5, Y: 1.5, Z: 0.5}, dir: d.Normalized()}, DefaultOptions())
			hit, ok := ed.Pick()
			require.True(t, ok)
			target, _ := ed.Target()
			assert.Equal(t, hit.Cell.Add(hit.Face), target)
			assert.False(t, w.IsOccupied(target), "целевая ячейка %s должна быть свободна", target)
		}
	})
}

func TestGroundClamp(t *testing.T) {
	dir := vec.Vec3Float{X: 0, Y: -0.5, Z: -0.8660254037844386}
	view := fixedView{pos: vec.Vec3Float{X: 0, Y: 1.5, Z: 5}, dir: dir}

	w := world.NewWorld(world.Options{})
	ed := NewEditor(w, view, DefaultOptions())
	res := ed.Secondary(context.Background())
	assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 0}, res.Cell, "y ограничивается нулём")

	opts := DefaultOptions()
	opts.GroundClamp = false
	w = world.NewWorld(world.Options{})
	ed = NewEditor(w, view, opts)
	res = ed.Secondary(context.Background())
	assert.Equal(t, vec.Vec3{X: 0, Y: -1, Z: 0}, res.Cell)
}

func TestSecondaryOccupiedIsNoop(t *testing.T) {
	w := world.NewWorld(world.Options{})
	// Камера внутри блока: целевая ячейка за гранью тоже занята
	require.NoError(t, w.Place(vec.Vec3{X: 0, Y: 0, Z: 0}))
	require.NoError(t, w.Place(vec.Vec3{X: 0, Y: 0, Z: 1}))
	ed := NewEditor(w, fixedView{pos: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.9}, dir: lookNegZ}, DefaultOptions())

	res := ed.Secondary(context.Background())
	assert.Equal(t, StatusOccupied, res.Status)
	assert.False(t, res.Changed())
	assert.Equal(t, 2, w.Count())
}

func TestRemoveTreeBlock(t *testing.T) {
	w := world.NewWorld(world.Options{Mode: world.ModeIndexed})
	trunk := []vec.Vec3Float{{X: 0, Y: 0, Z: -3}, {X: 0, Y: 1, Z: -3}}
	leaves := []vec.Vec3Float{{X: 0, Y: 2, Z: -3}}
	h, err := w.AddTree(trunk, leaves)
	require.NoError(t, err)

	ed := NewEditor(w, fixedView{pos: vec.Vec3Float{X: 0.5, Y: 1.5, Z: 0.5}, dir: lookNegZ}, DefaultOptions())
	res := ed.Primary(context.Background())
	require.Equal(t, StatusRemoved, res.Status)
	assert.Equal(t, vec.Vec3{X: 0, Y: 1, Z: -3}, res.Cell)

	view, ok := w.Tree(h)
	require.True(t, ok)
	assert.Equal(t, 2, view.Len(), "удаляется ровно один блок")
	assert.True(t, w.IsOccupied(vec.Vec3{X: 0, Y: 0, Z: -3}))
	assert.True(t, w.IsOccupied(vec.Vec3{X: 0, Y: 2, Z: -3}))
}

func TestHandleDispatch(t *testing.T) {
	w := world.NewWorld(world.Options{})
	ed := NewEditor(w, fixedView{dir: lookNegZ}, DefaultOptions())
	ctx := context.Background()

	assert.Equal(t, StatusPlaced, ed.Handle(ctx, ButtonSecondary).Status)
	assert.Equal(t, StatusRemoved, ed.Handle(ctx, ButtonPrimary).Status)
	assert.Equal(t, StatusIgnored, ed.Handle(ctx, Button(1)).Status)

	b, err := ParseButton("right")
	require.NoError(t, err)
	assert.Equal(t, ButtonSecondary, b)
	_, err = ParseButton("middle")
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := DefaultOptions()
	opts.Metrics = NewMetrics(reg)

	w := world.NewWorld(world.Options{})
	ed := NewEditor(w, fixedView{dir: lookNegZ}, opts)
	ctx := context.Background()
	ed.Primary(ctx)
	ed.Secondary(ctx)

	m := opts.Metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edits.WithLabelValues("remove", "no_hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edits.WithLabelValues("place", "placed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.picks.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.blocks))
}

func TestConcurrentEditsKeepCellsUnique(t *testing.T) {
	forEachMode(t, func(t *testing.T, w *world.World) {
		ed := NewEditor(w, fixedView{pos: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}, dir: lookNegZ}, DefaultOptions())
		ctx := context.Background()

		var wg sync.WaitGroup
		var mu sync.Mutex
		placed := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ed.Secondary(ctx).Status == StatusPlaced {
					mu.Lock()
					placed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, placed, w.Count())
		seen := make(map[vec.Vec3]bool)
		for _, c := range w.FreeCells() {
			assert.False(t, seen[c], "ячейка %s встречается дважды", c)
			seen[c] = true
		}
	})
}

func TestSpanPerAction(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	opts := DefaultOptions()
	opts.Tracer = tp.Tracer("edit")

	w := world.NewWorld(world.Options{})
	ed := NewEditor(w, fixedView{dir: lookNegZ}, opts)
	ctx := context.Background()
	ed.Secondary(ctx)
	ed.Primary(ctx)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "edit.Secondary", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("edit.status", "placed"))
	assert.Equal(t, "edit.Primary", spans[1].Name())
	assert.Contains(t, spans[1].Attributes(), attribute.String("edit.status", "removed"))
}
