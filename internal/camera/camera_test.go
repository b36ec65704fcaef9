package camera

import (
	"math"
	"testing"

	"github.com/annel0/blockscene/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestDirectionFromAngles(t *testing.T) {
	d := DirectionFromAngles(0, 0)
	assert.Equal(t, vec.Vec3Float{X: 0, Y: 0, Z: -1}, d, "нулевые углы смотрят строго вдоль -z")

	d = DirectionFromAngles(90, 0)
	assert.InDelta(t, 1.0, d.X, 1e-12)
	assert.InDelta(t, 0.0, d.Z, 1e-12)

	d = DirectionFromAngles(0, -90)
	assert.InDelta(t, -1.0, d.Y, 1e-12)

	d = DirectionFromAngles(37, -21)
	assert.InDelta(t, 1.0, d.Length(), 1e-12, "направление единичное")
}

func TestLookClampsPitch(t *testing.T) {
	c := New(DefaultSettings())
	c.Look(0, -10000)

	for i := 0; i < 500; i++ {
		c.Update(1)
	}
	_, pitch := c.Angles()
	assert.InDelta(t, 90, pitch, 1e-6)
}

func TestUpdateSmoothsRotation(t *testing.T) {
	s := DefaultSettings()
	s.Pitch = 0
	c := New(s)

	c.Look(100, 0) // цель: 20 градусов
	c.Update(1)
	yaw, _ := c.Angles()
	assert.InDelta(t, 2.0, yaw, 1e-9, "за тик проходится 10% пути")

	for i := 0; i < 300; i++ {
		c.Update(1)
	}
	yaw, _ = c.Angles()
	assert.InDelta(t, 20.0, yaw, 1e-6)
}

func TestUpdateMovesForward(t *testing.T) {
	s := DefaultSettings()
	s.Position = vec.Vec3Float{}
	s.Pitch = 0
	c := New(s)

	c.SetKey(KeyForward, true)
	c.Update(1)
	p := c.Position()
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, -0.1, p.Z, 1e-12)

	c.SetKey(KeyForward, false)
	c.SetKey(KeyUp, true)
	c.Update(1)
	assert.InDelta(t, 0.1, c.Position().Y, 1e-12)
}

func TestTurnKeys(t *testing.T) {
	s := DefaultSettings()
	c := New(s)
	c.SetKey(KeyTurnRight, true)
	for i := 0; i < 10; i++ {
		c.Update(1)
	}
	yaw, _ := c.Angles()
	assert.Greater(t, yaw, 0.0)
}

func TestViewMatrixLooksAlongDirection(t *testing.T) {
	c := New(DefaultSettings())
	c.SetAngles(0, 0)
	c.SetPosition(vec.Vec3Float{X: 1, Y: 2, Z: 3})

	// Точка перед камерой переходит в отрицательную z пространства вида
	ahead := c.Position().Add(c.Direction().Scale(5)).ToMgl()
	v := c.View().Mul4x1(ahead.Vec4(1))
	assert.InDelta(t, -5, v.Z(), 1e-9)
	assert.InDelta(t, 0, v.X(), 1e-9)

	assert.False(t, math.IsNaN(c.ViewProjection(16.0/9.0).At(0, 0)))
}

func TestUpdateIgnoresNonPositiveDelta(t *testing.T) {
	c := New(DefaultSettings())
	c.SetKey(KeyForward, true)
	before := c.Position()
	c.Update(0)
	c.Update(-1)
	assert.Equal(t, before, c.Position())
}

func TestLerpFactorComposes(t *testing.T) {
	// Два кадра по 1 эквивалентны одному шагу dt = 2
	one := lerpFactor(0.1, 1)
	two := lerpFactor(0.1, 2)
	assert.InDelta(t, 1-(1-one)*(1-one), two, 1e-12)
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("space")
	assert.NoError(t, err)
	assert.Equal(t, KeyUp, k)

	k, err = ParseKey("forward")
	assert.NoError(t, err)
	assert.Equal(t, KeyForward, k)

	_, err = ParseKey("z")
	assert.Error(t, err)
}
