package edit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/annel0/blockscene/internal/logging"
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPlaceDistance: дальность точки установки, если луч ни во что не попал
const DefaultPlaceDistance = 5.0

// ViewSource отдаёт текущую точку обзора: позицию и единичное направление взгляда
type ViewSource interface {
	Position() vec.Vec3Float
	Direction() vec.Vec3Float
}

// Button: кнопка указателя
type Button int

const (
	ButtonPrimary   Button = 0 // Удаление
	ButtonSecondary Button = 2 // Установка
)

// ParseButton разбирает имя кнопки
func ParseButton(s string) (Button, error) {
	switch s {
	case "primary", "left", "0":
		return ButtonPrimary, nil
	case "secondary", "right", "2":
		return ButtonSecondary, nil
	}
	return 0, fmt.Errorf("неизвестная кнопка %q", s)
}

// Action: вид действия редактирования
type Action string

const (
	ActionRemove Action = "remove"
	ActionPlace  Action = "place"
)

// Status: итог действия
type Status string

const (
	StatusRemoved  Status = "removed"
	StatusPlaced   Status = "placed"
	StatusNoHit    Status = "no_hit"
	StatusOccupied Status = "occupied"
	StatusStale    Status = "stale"
	StatusIgnored  Status = "ignored"
)

// Result описывает, что произошло при нажатии
type Result struct {
	Action Action
	Status Status
	Cell   vec.Vec3       // Удалённая или целевая ячейка
	Ref    world.BlockRef // Удалённый блок (только для remove)
	Hit    bool           // Попал ли луч в блок
}

// Changed сообщает, изменился ли мир
func (r Result) Changed() bool {
	return r.Status == StatusRemoved || r.Status == StatusPlaced
}

func (r Result) String() string {
	return fmt.Sprintf("%s:%s %s", r.Action, r.Status, r.Cell)
}

// Options: параметры редактора
type Options struct {
	PickDistance  float64
	PlaceDistance float64
	GroundClamp   bool // Не ставить блоки ниже y = 0
	Metrics       *Metrics
	Tracer        trace.Tracer
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		PickDistance:  world.DefaultPickDistance,
		PlaceDistance: DefaultPlaceDistance,
		GroundClamp:   true,
	}
}

// Editor превращает нажатия кнопок в изменения мира.
// Пик и изменение выполняются под одним мьютексом, поэтому каждое действие
// атомарно относительно других действий этого редактора.
type Editor struct {
	mu      sync.Mutex
	world   *world.World
	view    ViewSource
	opts    Options
	metrics *Metrics
	tracer  trace.Tracer
	logger  *logging.Logger
}

// NewEditor создаёт редактор для мира и точки обзора
func NewEditor(w *world.World, view ViewSource, opts Options) *Editor {
	if opts.PickDistance <= 0 {
		opts.PickDistance = world.DefaultPickDistance
	}
	if opts.PlaceDistance <= 0 {
		opts.PlaceDistance = DefaultPlaceDistance
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("blockscene/edit")
	}
	return &Editor{
		world:   w,
		view:    view,
		opts:    opts,
		metrics: metrics,
		tracer:  tracer,
		logger:  logging.GetEditLogger(),
	}
}

// Handle выполняет действие, соответствующее кнопке
func (e *Editor) Handle(ctx context.Context, b Button) Result {
	switch b {
	case ButtonPrimary:
		return e.Primary(ctx)
	case ButtonSecondary:
		return e.Secondary(ctx)
	}
	e.logger.Debug("Нажатие кнопки %d проигнорировано", b)
	return Result{Status: StatusIgnored}
}

// Primary удаляет блок, в который смотрит камера. Без попадания ничего не меняет.
func (e *Editor) Primary(ctx context.Context) Result {
	_, span := e.tracer.Start(ctx, "edit.Primary")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	res := Result{Action: ActionRemove}
	hit, ok := e.pick()
	if !ok {
		res.Status = StatusNoHit
		return e.finish(span, res)
	}

	res.Hit = true
	res.Cell = hit.Cell
	res.Ref = hit.Ref
	if err := e.world.RemoveBlock(hit.Ref); err != nil {
		if !errors.Is(err, world.ErrStaleReference) {
			span.RecordError(err)
		}
		e.logger.Warn("Не удалось удалить блок %s: %v", hit.Ref, err)
		res.Status = StatusStale
		return e.finish(span, res)
	}

	res.Status = StatusRemoved
	e.logger.Debug("Удалён блок %s", hit.Ref)
	return e.finish(span, res)
}

// Secondary ставит свободный блок перед гранью, в которую смотрит камера,
// либо на расстоянии PlaceDistance по взгляду, если луч ни во что не попал.
// Занятая целевая ячейка означает тихий отказ.
func (e *Editor) Secondary(ctx context.Context) Result {
	_, span := e.tracer.Start(ctx, "edit.Secondary")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	res := Result{Action: ActionPlace}
	res.Cell, res.Hit = e.placementTarget()

	if err := e.world.Place(res.Cell); err != nil {
		if errors.Is(err, world.ErrAlreadyOccupied) {
			res.Status = StatusOccupied
		} else {
			span.RecordError(err)
			e.logger.Warn("Не удалось поставить блок в %s: %v", res.Cell, err)
			res.Status = StatusStale
		}
		return e.finish(span, res)
	}

	res.Status = StatusPlaced
	e.logger.Debug("Поставлен блок в %s", res.Cell)
	return e.finish(span, res)
}

// Target возвращает ячейку, куда встал бы блок при установке, не меняя мир
func (e *Editor) Target() (vec.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.placementTarget()
}

// Pick возвращает блок под прицелом
func (e *Editor) Pick() (world.Hit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.Pick(e.view.Position(), e.view.Direction(), e.opts.PickDistance)
}

func (e *Editor) pick() (world.Hit, bool) {
	hit, ok := e.world.Pick(e.view.Position(), e.view.Direction(), e.opts.PickDistance)
	e.metrics.observePick(ok)
	return hit, ok
}

// placementTarget: соседняя ячейка за гранью попадания (ячейка + нормаль),
// иначе floor(позиция + направление·PlaceDistance)
func (e *Editor) placementTarget() (vec.Vec3, bool) {
	var target vec.Vec3
	hit, ok := e.pick()
	if ok {
		target = hit.Cell.Add(hit.Face)
	} else {
		target = e.view.Position().Add(e.view.Direction().Scale(e.opts.PlaceDistance)).Floor()
	}
	if e.opts.GroundClamp && target.Y < 0 {
		target.Y = 0
	}
	return target, ok
}

func (e *Editor) finish(span trace.Span, res Result) Result {
	span.SetAttributes(
		attribute.String("edit.action", string(res.Action)),
		attribute.String("edit.status", string(res.Status)),
		attribute.Bool("edit.hit", res.Hit),
		attribute.String("edit.cell", res.Cell.String()),
	)
	if res.Status == StatusStale {
		span.SetStatus(codes.Error, "stale")
	}
	e.metrics.observeEdit(res, e.world.Count())
	return res
}
