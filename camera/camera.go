// Package camera provides the orbit camera that frames the icosphere.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	minDistance  = 1.5
	maxDistance  = 30
	maxElevation = math.Pi/2 - 0.01
)

// Camera orbits a target point. Angles are in radians.
type Camera struct {
	target    mgl32.Vec3
	up        mgl32.Vec3
	distance  float32
	azimuth   float32
	elevation float32

	fovy   float32
	aspect float32
	near   float32
	far    float32

	projection mgl32.Mat4
}

// New places the camera at eye looking at target.
func New(eye, target mgl32.Vec3) *Camera {
	offset := eye.Sub(target)
	dist := offset.Len()
	c := &Camera{
		target:    target,
		up:        mgl32.Vec3{0, 1, 0},
		distance:  dist,
		azimuth:   float32(math.Atan2(float64(offset[0]), float64(offset[2]))),
		elevation: float32(math.Asin(float64(offset[1] / dist))),
		fovy:      mgl32.DegToRad(45),
		aspect:    1,
		near:      0.1,
		far:       1000,
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *Camera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(c.fovy, c.aspect, c.near, c.far)
}

// Orbit rotates the eye around the target.
func (c *Camera) Orbit(dAzimuth, dElevation float32) {
	c.azimuth += dAzimuth
	c.elevation = mgl32.Clamp(c.elevation+dElevation, -maxElevation, maxElevation)
}

// Zoom scales the eye distance; factors below 1 move closer.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.distance = mgl32.Clamp(c.distance*factor, minDistance, maxDistance)
}

// Position is the world-space eye position.
func (c *Camera) Position() mgl32.Vec3 {
	ce := float32(math.Cos(float64(c.elevation)))
	offset := mgl32.Vec3{
		c.distance * ce * float32(math.Sin(float64(c.azimuth))),
		c.distance * float32(math.Sin(float64(c.elevation))),
		c.distance * ce * float32(math.Cos(float64(c.azimuth))),
	}
	return c.target.Add(offset)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.target, c.up)
}

func (c *Camera) ViewProj() mgl32.Mat4 {
	return c.projection.Mul4(c.View())
}
