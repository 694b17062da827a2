package render

import (
	"math"

	"github.com/ByteArena/impulse2d"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera maps world coordinates (y up) to screen pixels (y down).
type Camera struct {
	Width, Height int

	center mgl64.Vec2
	scale  float64
	view   mgl64.Mat3
	inv    mgl64.Mat3
}

// NewCamera frames the world rectangle [min, max] in a width by height
// screen with a uniform scale, centered.
func NewCamera(min, max impulse2d.Vec2, width, height int) *Camera {
	sx := float64(width) / (max.X - min.X)
	sy := float64(height) / (max.Y - min.Y)

	c := &Camera{
		Width:  width,
		Height: height,
		center: mgl64.Vec2{(min.X + max.X) / 2, (min.Y + max.Y) / 2},
		scale:  math.Min(sx, sy),
	}
	c.update()
	return c
}

func (c *Camera) update() {
	c.view = mgl64.Translate2D(float64(c.Width)/2, float64(c.Height)/2).
		Mul3(mgl64.Scale2D(c.scale, -c.scale)).
		Mul3(mgl64.Translate2D(-c.center.X(), -c.center.Y()))
	c.inv = c.view.Inv()
}

// Scale is the number of pixels per world unit.
func (c *Camera) Scale() float64 {
	return c.scale
}

func (c *Camera) WorldToScreen(p impulse2d.Vec2) (x, y float64) {
	v := c.view.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return v.X(), v.Y()
}

func (c *Camera) ScreenToWorld(x, y float64) impulse2d.Vec2 {
	v := c.inv.Mul3x1(mgl64.Vec3{x, y, 1})
	return impulse2d.MakeVec2(v.X(), v.Y())
}

// Resize keeps the framed center and scale for a new screen size.
func (c *Camera) Resize(width, height int) {
	if width == c.Width && height == c.Height {
		return
	}
	c.Width = width
	c.Height = height
	c.update()
}

// Zoom multiplies the scale by factor, keeping the world point under
// screen position (x, y) fixed.
func (c *Camera) Zoom(factor, x, y float64) {
	anchor := c.ScreenToWorld(x, y)
	c.scale *= factor

	// Move the center so that anchor maps back to (x, y).
	c.center = mgl64.Vec2{
		anchor.X - (x-float64(c.Width)/2)/c.scale,
		anchor.Y + (y-float64(c.Height)/2)/c.scale,
	}
	c.update()
}
