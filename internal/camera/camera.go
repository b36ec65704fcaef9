package camera

import (
	"fmt"
	"math"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// Key: логическая клавиша движения
type Key string

const (
	KeyForward   Key = "w"
	KeyBack      Key = "s"
	KeyLeft      Key = "a"
	KeyRight     Key = "d"
	KeyUp        Key = "space"
	KeyDown      Key = "shift"
	KeyTurnLeft  Key = "q"
	KeyTurnRight Key = "e"
)

var keyAliases = map[string]Key{
	"w": KeyForward, "forward": KeyForward,
	"s": KeyBack, "back": KeyBack,
	"a": KeyLeft, "left": KeyLeft,
	"d": KeyRight, "right": KeyRight,
	"space": KeyUp, " ": KeyUp, "up": KeyUp,
	"shift": KeyDown, "down": KeyDown,
	"q": KeyTurnLeft,
	"e": KeyTurnRight,
}

// ParseKey разбирает имя клавиши (w, s, a, d, space, shift, q, e или их синонимы)
func ParseKey(name string) (Key, error) {
	if k, ok := keyAliases[name]; ok {
		return k, nil
	}
	return "", fmt.Errorf("неизвестная клавиша %q", name)
}

// Settings задаёт чувствительность и скорости камеры
type Settings struct {
	Sensitivity  float64       // Градусов на единицу смещения указателя
	MoveSpeed    float64       // Скорость перемещения за тик
	TurnSpeed    float64       // Градусов поворота за тик при Q/E
	RotationLerp float64       // Доля сглаживания поворота за тик
	MovementLerp float64       // Множитель перемещения за тик
	Position     vec.Vec3Float // Начальная позиция
	Yaw          float64       // Начальный поворот, градусы
	Pitch        float64       // Начальный наклон, градусы
	FOV          float64       // Угол обзора по вертикали, радианы
	Near, Far    float64       // Плоскости отсечения
}

// DefaultSettings возвращает параметры камеры сцены по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Sensitivity:  0.2,
		MoveSpeed:    1,
		TurnSpeed:    1.5,
		RotationLerp: 0.1,
		MovementLerp: 0.1,
		Position:     vec.Vec3Float{X: 0, Y: 1.5, Z: 5},
		Yaw:          0,
		Pitch:        -30,
		FOV:          math.Pi / 3,
		Near:         0.1,
		Far:          1000,
	}
}

// Camera: камера от первого лица. Поворот и наклон плавно догоняют целевые
// значения; движение задаётся флагами клавиш и применяется в Update.
type Camera struct {
	settings    Settings
	position    vec.Vec3Float
	yaw, pitch  float64
	targetYaw   float64
	targetPitch float64
	keys        map[Key]bool
}

// New создаёт камеру с указанными параметрами
func New(s Settings) *Camera {
	return &Camera{
		settings:    s,
		position:    s.Position,
		yaw:         s.Yaw,
		pitch:       s.Pitch,
		targetYaw:   s.Yaw,
		targetPitch: s.Pitch,
		keys:        make(map[Key]bool),
	}
}

// Look применяет смещение указателя к целевым углам; наклон ограничен [-90, 90]
func (c *Camera) Look(dx, dy float64) {
	c.targetYaw += dx * c.settings.Sensitivity
	c.targetPitch -= dy * c.settings.Sensitivity
	c.targetPitch = mgl64.Clamp(c.targetPitch, -90, 90)
}

// SetKey отмечает нажатие или отпускание клавиши движения
func (c *Camera) SetKey(k Key, down bool) {
	c.keys[k] = down
}

// Update продвигает камеру на dt кадров (dt = 1 соответствует одному кадру
// при эталонной частоте): сглаживание углов, поворот клавишами, перемещение.
func (c *Camera) Update(dt float64) {
	if dt <= 0 {
		return
	}
	rot := lerpFactor(c.settings.RotationLerp, dt)
	c.yaw += (c.targetYaw - c.yaw) * rot
	c.pitch += (c.targetPitch - c.pitch) * rot

	yaw := mgl64.DegToRad(c.yaw)
	speed := c.settings.MoveSpeed * dt

	if c.keys[KeyTurnLeft] {
		c.targetYaw -= c.settings.TurnSpeed * dt
	}
	if c.keys[KeyTurnRight] {
		c.targetYaw += c.settings.TurnSpeed * dt
	}

	var dx, dy, dz float64
	if c.keys[KeyForward] {
		dx += speed * math.Sin(yaw)
		dz -= speed * math.Cos(yaw)
	}
	if c.keys[KeyBack] {
		dx -= speed * math.Sin(yaw)
		dz += speed * math.Cos(yaw)
	}
	if c.keys[KeyLeft] {
		dx -= speed * math.Cos(yaw)
		dz -= speed * math.Sin(yaw)
	}
	if c.keys[KeyRight] {
		dx += speed * math.Cos(yaw)
		dz += speed * math.Sin(yaw)
	}
	if c.keys[KeyUp] {
		dy += speed
	}
	if c.keys[KeyDown] {
		dy -= speed
	}

	lerp := c.settings.MovementLerp
	c.position = c.position.Add(vec.Vec3Float{X: dx * lerp, Y: dy * lerp, Z: dz * lerp})
}

// lerpFactor пересчитывает покадровый коэффициент сглаживания на dt кадров
func lerpFactor(perFrame, dt float64) float64 {
	if dt == 1 {
		return perFrame
	}
	return 1 - math.Pow(1-perFrame, dt)
}

// Position возвращает текущую позицию
func (c *Camera) Position() vec.Vec3Float {
	return c.position
}

// SetPosition переносит камеру
func (c *Camera) SetPosition(p vec.Vec3Float) {
	c.position = p
}

// Angles возвращает текущие поворот и наклон в градусах
func (c *Camera) Angles() (yaw, pitch float64) {
	return c.yaw, c.pitch
}

// SetAngles задаёт углы сразу, без сглаживания
func (c *Camera) SetAngles(yaw, pitch float64) {
	pitch = mgl64.Clamp(pitch, -90, 90)
	c.yaw, c.targetYaw = yaw, yaw
	c.pitch, c.targetPitch = pitch, pitch
}

// Direction возвращает единичный вектор взгляда:
// (sin yaw·cos pitch, sin pitch, −cos yaw·cos pitch)
func (c *Camera) Direction() vec.Vec3Float {
	return DirectionFromAngles(c.yaw, c.pitch)
}

// DirectionFromAngles вычисляет направление взгляда по углам в градусах
func DirectionFromAngles(yawDeg, pitchDeg float64) vec.Vec3Float {
	yaw := mgl64.DegToRad(yawDeg)
	pitch := mgl64.DegToRad(pitchDeg)
	return vec.Vec3Float{
		X: math.Sin(yaw) * math.Cos(pitch),
		Y: math.Sin(pitch),
		Z: -math.Cos(yaw) * math.Cos(pitch),
	}
}

// View возвращает матрицу вида
func (c *Camera) View() mgl64.Mat4 {
	eye := c.position.ToMgl()
	center := eye.Add(c.Direction().ToMgl())
	return mgl64.LookAtV(eye, center, mgl64.Vec3{0, 1, 0})
}

// Projection возвращает матрицу перспективной проекции для соотношения сторон
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(c.settings.FOV, aspect, c.settings.Near, c.settings.Far)
}

// ViewProjection возвращает произведение проекции и вида
func (c *Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}
