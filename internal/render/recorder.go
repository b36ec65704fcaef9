package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// DrawCall: записанный вызов DrawCube
type DrawCall struct {
	Position vec.Vec3Float
	Material block.Material
}

// Recorder: рендерер в память: запоминает команды последнего кадра
type Recorder struct {
	mu       sync.Mutex
	frames   int
	viewProj mgl64.Mat4
	skybox   bool
	ground   bool
	calls    []DrawCall
	current  []DrawCall
}

// NewRecorder создаёт пустой Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginFrame(viewProj, skyViewProj mgl64.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewProj = viewProj
	r.skybox, r.ground = false, false
	r.current = r.current[:0]
}

func (r *Recorder) DrawSkybox(scale float64, material block.Material) {
	r.mu.Lock()
	r.skybox = true
	r.mu.Unlock()
}

func (r *Recorder) DrawGround(size float64, material block.Material) {
	r.mu.Lock()
	r.ground = true
	r.mu.Unlock()
}

func (r *Recorder) DrawCube(model mgl64.Mat4, material block.Material) {
	r.mu.Lock()
	r.current = append(r.current, DrawCall{
		Position: vec.FromMgl(model.Col(3).Vec3()),
		Material: material,
	})
	r.mu.Unlock()
}

func (r *Recorder) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.calls = append(r.calls[:0], r.current...)
}

// Frames возвращает число завершённых кадров
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Calls возвращает копию вызовов DrawCube последнего кадра
func (r *Recorder) Calls() []DrawCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DrawCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// ViewProjection возвращает матрицу последнего кадра
func (r *Recorder) ViewProjection() mgl64.Mat4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewProj
}

// CountByMaterial считает кубы последнего кадра по материалам
func (r *Recorder) CountByMaterial() map[block.Material]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[block.Material]int)
	for _, c := range r.calls {
		counts[c.Material]++
	}
	return counts
}

// Summary возвращает однострочную сводку последнего кадра
func (r *Recorder) Summary() string {
	counts := r.CountByMaterial()
	mats := make([]block.Material, 0, len(counts))
	for m := range counts {
		mats = append(mats, m)
	}
	sort.Slice(mats, func(i, j int) bool { return mats[i] < mats[j] })

	parts := make([]string, 0, len(mats))
	total := 0
	for _, m := range mats {
		parts = append(parts, fmt.Sprintf("%s=%d", m, counts[m]))
		total += counts[m]
	}

	r.mu.Lock()
	frames, sky, ground := r.frames, r.skybox, r.ground
	r.mu.Unlock()
	return fmt.Sprintf("frame=%d sky=%t ground=%t cubes=%d [%s]", frames, sky, ground, total, strings.Join(parts, " "))
}
