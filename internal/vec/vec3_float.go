package vec

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3Float представляет трехмерный вектор с плавающими координатами
// (точки мира и направления лучей)
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// FromMgl создаёт Vec3Float из вектора mathgl
func FromMgl(v mgl64.Vec3) Vec3Float {
	return Vec3Float{X: v[0], Y: v[1], Z: v[2]}
}

// ToMgl преобразует вектор в mgl64.Vec3 для матричной математики
func (v Vec3Float) ToMgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Floor возвращает ячейку, содержащую точку (покомпонентный floor).
// Точка на границе ячеек относится к ячейке с большей координатой.
func (v Vec3Float) Floor() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale умножает вектор на скаляр
func (v Vec3Float) Scale(s float64) Vec3Float {
	return Vec3Float{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized возвращает единичный вектор того же направления
func (v Vec3Float) Normalized() Vec3Float {
	length := v.Length()
	if length == 0 {
		return Vec3Float{}
	}
	return v.Scale(1 / length)
}

// Component возвращает координату по номеру оси
func (v Vec3Float) Component(axis int) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vec3Float) String() string {
	return fmt.Sprintf("(%.2f,%.2f,%.2f)", v.X, v.Y, v.Z)
}
