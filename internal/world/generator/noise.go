package generator

import (
	"github.com/aquilax/go-perlin"
)

// Noise: генератор шума Перлина с фиксированным сидом
type Noise struct {
	perlin *perlin.Perlin
}

// NewNoise инициализирует генератор шума Перлина с указанным сидом
func NewNoise(seed int64) *Noise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &Noise{perlin: perlin.NewPerlin(alpha, beta, n, seed)}
}

// At возвращает значение шума Перлина для указанных координат (от 0 до 1)
func (n *Noise) At(x, y float64) float64 {
	// Получаем значение шума (от -1 до 1) и преобразуем в диапазон от 0 до 1
	return (n.perlin.Noise2D(x, y) + 1.0) / 2.0
}
