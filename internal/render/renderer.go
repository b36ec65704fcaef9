package render

import (
	"github.com/annel0/blockscene/internal/world"
	"github.com/annel0/blockscene/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	SkyboxScale = 50.0  // Полуразмер куба неба
	GroundSize  = 200.0 // Сторона плоскости земли при y = 0
)

// Renderer: приёмник команд отрисовки. Ядро сцены не знает о графическом API:
// реализация сама решает, как нарисовать куб с данным материалом.
type Renderer interface {
	// BeginFrame получает матрицы кадра; skyViewProj не содержит переноса камеры
	BeginFrame(viewProj, skyViewProj mgl64.Mat4)
	DrawSkybox(scale float64, material block.Material)
	DrawGround(size float64, material block.Material)
	DrawCube(model mgl64.Mat4, material block.Material)
	EndFrame()
}

// View: источник матриц вида и проекции
type View interface {
	View() mgl64.Mat4
	Projection(aspect float64) mgl64.Mat4
}

// Frame отрисовывает один кадр: небо, земля, затем все блоки мира.
// Возвращает число нарисованных кубов.
func Frame(r Renderer, w *world.World, cam View, aspect float64) int {
	view := cam.View()
	proj := cam.Projection(aspect)

	skyView := view
	skyView.SetCol(3, mgl64.Vec4{0, 0, 0, 1})

	r.BeginFrame(proj.Mul4(view), proj.Mul4(skyView))
	r.DrawSkybox(SkyboxScale, block.MaterialSky)
	r.DrawGround(GroundSize, block.MaterialGrass)

	cubes := 0
	w.ForEachBlock(func(b world.BlockInfo) {
		r.DrawCube(ModelMatrix(b), b.Material)
		cubes++
	})

	r.EndFrame()
	return cubes
}

// ModelMatrix возвращает матрицу переноса куба. Свободные блоки стоят на
// полу своей ячейки, поэтому поднимаются на полблока.
func ModelMatrix(b world.BlockInfo) mgl64.Mat4 {
	p := b.Pos
	if b.Kind == block.KindFree {
		p.Y += 0.5
	}
	return mgl64.Translate3D(p.X, p.Y, p.Z)
}
