package world

import (
	"math"

	"github.com/annel0/blockscene/internal/vec"
)

// DefaultPickDistance: максимальная дальность луча по умолчанию (в единицах мира)
const DefaultPickDistance = 10.0

// Hit: результат пика: первая занятая ячейка вдоль луча и грань входа
type Hit struct {
	Cell     vec.Vec3 // Занятая ячейка
	Face     vec.Vec3 // Внешняя нормаль грани, через которую вошёл луч
	Distance float64  // Параметр луча в точке входа в ячейку
	Ref      BlockRef // Владелец блока
}

// Traversal обходит ячейки сетки вдоль луча (3D DDA, Amanatides–Woo).
// Ячейки посещаются ровно один раз в порядке возрастания параметра луча.
type Traversal struct {
	cell     vec.Vec3
	step     [3]int
	tMax     [3]float64
	tDelta   [3]float64
	maxDist  float64
	lastAxis int     // Ось последнего шага; -1 до первого шага
	entryT   float64 // Параметр луча при входе в текущую ячейку
}

// NewTraversal подготавливает обход из точки origin в направлении dir.
// Компонента направления, равная нулю, означает, что по этой оси луч не движется.
func NewTraversal(origin, dir vec.Vec3Float, maxDist float64) *Traversal {
	tr := &Traversal{
		cell:     origin.Floor(),
		maxDist:  maxDist,
		lastAxis: -1,
	}

	for axis := 0; axis < 3; axis++ {
		d := dir.Component(axis)
		p := origin.Component(axis)
		c := float64(tr.cell.Component(axis))

		switch {
		case d > 0:
			tr.step[axis] = 1
			tr.tMax[axis] = (c + 1 - p) / d
		case d < 0:
			tr.step[axis] = -1
			tr.tMax[axis] = (p - c) / -d
		default:
			tr.step[axis] = 0
			tr.tMax[axis] = math.Inf(1)
		}

		if d != 0 {
			tr.tDelta[axis] = math.Abs(1 / d)
		} else {
			tr.tDelta[axis] = math.Inf(1)
		}
	}
	return tr
}

// Cell возвращает текущую ячейку обхода
func (tr *Traversal) Cell() vec.Vec3 {
	return tr.cell
}

// EntryT возвращает параметр луча при входе в текущую ячейку (0 для стартовой)
func (tr *Traversal) EntryT() float64 {
	return tr.entryT
}

// nextAxis выбирает ось с наименьшим tMax. Сравнения строгие, поэтому при
// равенстве x уступает y и z, а y уступает z.
func (tr *Traversal) nextAxis() int {
	if tr.tMax[0] < tr.tMax[1] && tr.tMax[0] < tr.tMax[2] {
		return vec.AxisX
	}
	if tr.tMax[1] < tr.tMax[2] {
		return vec.AxisY
	}
	return vec.AxisZ
}

// Advance переходит в следующую ячейку вдоль луча. Возвращает false, если
// следующая граница лежит дальше максимальной дальности или луч не движется.
func (tr *Traversal) Advance() bool {
	axis := tr.nextAxis()
	t := tr.tMax[axis]
	if math.IsInf(t, 1) || t > tr.maxDist {
		return false
	}

	tr.cell = tr.cell.WithComponent(axis, tr.cell.Component(axis)+tr.step[axis])
	tr.entryT = t
	tr.tMax[axis] += tr.tDelta[axis]
	tr.lastAxis = axis
	return true
}

// Face возвращает внешнюю нормаль грани входа в текущую ячейку: -step по оси
// последнего шага. Для стартовой ячейки используется ось с наименьшим tMax.
func (tr *Traversal) Face() vec.Vec3 {
	axis := tr.lastAxis
	if axis < 0 {
		axis = tr.nextAxis()
	}
	return vec.Vec3{}.WithComponent(axis, -tr.step[axis])
}

// Pick ищет первую занятую ячейку вдоль луча в пределах maxDist.
// dir должен быть единичным, чтобы maxDist измерялся в единицах мира.
// Бесконечная или NaN дальность заменяется на DefaultPickDistance.
func (w *World) Pick(origin, dir vec.Vec3Float, maxDist float64) (Hit, bool) {
	if math.IsInf(maxDist, 0) || math.IsNaN(maxDist) {
		maxDist = DefaultPickDistance
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	tr := NewTraversal(origin, dir, maxDist)
	for {
		if ref, ok := w.lookupLocked(tr.Cell()); ok {
			return Hit{
				Cell:     tr.Cell(),
				Face:     tr.Face(),
				Distance: tr.EntryT(),
				Ref:      ref,
			}, true
		}
		if !tr.Advance() {
			return Hit{}, false
		}
	}
}
