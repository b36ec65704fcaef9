package vec

import "math"

// Vec2 представляет 2D координаты на плоскости земли: X соответствует оси X
// мира, Y соответствует оси Z. Используется как якорь генераторов (деревья, ворота).
type Vec2 struct {
	X, Y int
}

// ToVec3 поднимает якорь на указанную высоту
func (v Vec2) ToVec3(y int) Vec3 {
	return Vec3{X: v.X, Y: y, Z: v.Y}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
