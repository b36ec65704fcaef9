package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/annel0/blockscene/internal/camera"
	"github.com/annel0/blockscene/internal/config"
	"github.com/annel0/blockscene/internal/edit"
	"github.com/annel0/blockscene/internal/eventbus"
	"github.com/annel0/blockscene/internal/logging"
	"github.com/annel0/blockscene/internal/render"
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world"
	"github.com/annel0/blockscene/internal/world/generator"
	"github.com/prometheus/client_golang/prometheus"
)

// Options: зависимости сцены. Незаданные поля получают значения по умолчанию.
type Options struct {
	Config     *config.Config
	Bus        eventbus.EventBus     // Если nil, создаётся in-memory шина
	Renderer   render.Renderer       // Если nil, используется render.Recorder
	Registerer prometheus.Registerer // Если nil, метрики не регистрируются
}

// Scene: контроллер сцены: владеет миром, камерой, редактором, шиной и рендерером.
// Все обратные вызовы ввода сериализуются мьютексом сцены.
type Scene struct {
	mu       sync.Mutex
	world    *world.World
	camera   *camera.Camera
	editor   *edit.Editor
	bus      eventbus.EventBus
	ownBus   bool
	renderer render.Renderer
	aspect   float64
	frames   int
	report   generator.Report
	logger   *logging.Logger
}

// NewScene собирает сцену по конфигурации и наполняет мир генератором
func NewScene(opts Options) (*Scene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode, err := world.ParseOccupancyMode(cfg.World.OccupancyMode)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		bus:      opts.Bus,
		renderer: opts.Renderer,
		aspect:   cfg.Camera.Aspect,
		logger:   logging.GetSceneLogger(),
	}
	if s.bus == nil {
		s.bus = eventbus.NewMemoryBus(cfg.EventBus.Capacity)
		s.ownBus = true
	}
	if s.renderer == nil {
		s.renderer = render.NewRecorder()
	}

	s.world = world.NewWorld(world.Options{
		Mode: mode,
		Sink: NewBusSink(s.bus, logging.GetWorldLogger()),
	})

	s.camera = camera.New(cameraSettings(cfg.Camera))

	editOpts := edit.DefaultOptions()
	editOpts.PickDistance = cfg.World.PickDistance
	editOpts.PlaceDistance = cfg.World.PlaceDistance
	editOpts.GroundClamp = cfg.World.GroundClamp
	editOpts.Metrics = edit.NewMetrics(opts.Registerer)
	s.editor = edit.NewEditor(s.world, s.camera, editOpts)

	gen := generator.NewWorldGenerator(generator.Config{
		Seed:         cfg.World.Seed,
		ExtraTrees:   cfg.World.ExtraTrees,
		SkipDefaults: cfg.World.SkipDefaults,
	})
	s.report, err = gen.Populate(s.world)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("генерация сцены: %w", err)
	}

	s.logger.Info("Сцена готова: режим=%s деревья=%d постройки=%d блоки=%d",
		mode, s.report.Trees, s.report.Structures, s.report.Blocks)
	return s, nil
}

func cameraSettings(c config.CameraConfig) camera.Settings {
	s := camera.DefaultSettings()
	s.Sensitivity = c.Sensitivity
	s.MoveSpeed = c.MoveSpeed
	s.TurnSpeed = c.TurnSpeed
	s.RotationLerp = c.RotationLerp
	s.MovementLerp = c.MovementLerp
	s.Position = vec.Vec3Float{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]}
	s.Yaw = c.Yaw
	s.Pitch = c.Pitch
	return s
}

// OnPointerMove обрабатывает смещение указателя
func (s *Scene) OnPointerMove(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.Look(dx, dy)
}

// OnKey обрабатывает нажатие или отпускание клавиши
func (s *Scene) OnKey(k camera.Key, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.SetKey(k, down)
}

// OnButton выполняет действие редактирования для кнопки указателя
func (s *Scene) OnButton(ctx context.Context, b edit.Button) edit.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.editor.Handle(ctx, b)
	if res.Changed() {
		s.logger.Info("%s", res)
	}
	return res
}

// Tick продвигает камеру на dt кадров и отрисовывает кадр.
// Возвращает число нарисованных кубов.
func (s *Scene) Tick(dt float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.Update(dt)
	s.frames++
	return render.Frame(s.renderer, s.world, s.camera, s.aspect)
}

// Pick возвращает блок под прицелом камеры
func (s *Scene) Pick() (world.Hit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Pick()
}

// Target возвращает ячейку, куда встанет блок при установке
func (s *Scene) Target() (vec.Vec3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Target()
}

// World возвращает мир сцены
func (s *Scene) World() *world.World { return s.world }

// Camera возвращает камеру сцены
func (s *Scene) Camera() *camera.Camera { return s.camera }

// Bus возвращает шину событий сцены
func (s *Scene) Bus() eventbus.EventBus { return s.bus }

// Renderer возвращает рендерер сцены
func (s *Scene) Renderer() render.Renderer { return s.renderer }

// Report возвращает отчёт генератора
func (s *Scene) Report() generator.Report { return s.report }

// Frames возвращает число отрисованных кадров
func (s *Scene) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Stats возвращает краткую сводку сцены
func (s *Scene) Stats() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := s.camera.Position()
	yaw, pitch := s.camera.Angles()
	bus := s.bus.Metrics()
	return fmt.Sprintf("%s; camera=%s yaw=%.1f pitch=%.1f; frames=%d; events published=%d dropped=%d",
		s.world.GetStats(), pos, yaw, pitch, s.frames, bus.Published, bus.Dropped)
}

// Close освобождает ресурсы сцены. Шина, переданная снаружи, не закрывается.
func (s *Scene) Close() {
	if s.ownBus {
		s.bus.Close()
	}
}
