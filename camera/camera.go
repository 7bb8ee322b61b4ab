// Package camera provides an orbit camera for viewing the ocean patch.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pitch limits keep the eye above the surface and off the pole.
const (
	minPitch = 0.05
	maxPitch = math.Pi/2 - 0.05
)

// Camera orbits a target point on a sphere.
type Camera struct {
	Target mgl32.Vec3

	// Yaw is the heading around the Y axis, Pitch the elevation above the
	// XZ plane, both in radians.
	Yaw, Pitch float32

	// Distance from target to eye
	Distance float32

	// Distance constraints
	MinDistance, MaxDistance float32

	home struct{ yaw, pitch, distance float32 }
}

// New creates a camera looking at the origin from distance, a quarter turn
// off the X axis and 30 degrees above the water.
func New(distance float32) *Camera {
	c := &Camera{
		Yaw:         math.Pi / 4,
		Pitch:       math.Pi / 6,
		Distance:    distance,
		MinDistance: distance / 20,
		MaxDistance: distance * 5,
	}
	c.home.yaw, c.home.pitch, c.home.distance = c.Yaw, c.Pitch, c.Distance
	return c
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() mgl32.Vec3 {
	yaw, pitch := float64(c.Yaw), float64(c.Pitch)
	dir := mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}
	return c.Target.Add(dir.Mul(c.Distance))
}

// Orbit rotates the camera by the given yaw and pitch deltas in radians.
// Yaw wraps, pitch is clamped.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw = mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = clamp(c.Pitch+dpitch, minPitch, maxPitch)
}

// SetDistance sets the orbit radius, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy moves the eye closer by the given factor (2 halves the distance).
func (c *Camera) ZoomBy(factor float32) {
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to its initial orbit.
func (c *Camera) Reset() {
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
	c.Distance = c.home.distance
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
