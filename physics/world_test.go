package physics

import (
	"math"
	"testing"
)

func TestRayCastCircleHit(t *testing.T) {
	w := NewWorld()
	w.CreateBody(BodyDef{X: 2, Y: 0, Static: true, Shape: ShapeDef{Kind: ShapeCircle, Radius: 1, Density: 1}})

	var hitDist float64
	var hit bool
	w.RayCast(Vec2{0, 0}, Vec2{10, 0}, func(fixture Fixture, point, normal Vec2, fraction float64) float64 {
		hit = true
		hitDist = point.Length()
		return 1.0
	})

	if !hit {
		t.Fatal("expected a hit against the circle at (2,0)")
	}
	if math.Abs(hitDist-1.0) > 1e-9 {
		t.Errorf("hit distance = %v, want ~1.0", hitDist)
	}
}

func TestRayCastMisses(t *testing.T) {
	w := NewWorld()
	w.CreateBody(BodyDef{X: -11.001, Y: 0, Static: true, Shape: ShapeDef{Kind: ShapeCircle, Radius: 1, Density: 1}})

	var hit bool
	w.RayCast(Vec2{0, 0}, Vec2{-10, 0}, func(fixture Fixture, point, normal Vec2, fraction float64) float64 {
		hit = true
		return 1.0
	})
	if hit {
		t.Error("expected no hit: obstacle is beyond the segment's range")
	}
}

func TestBodyWorldLocalPointRoundTrip(t *testing.T) {
	w := NewWorld()
	body := w.CreateBody(BodyDef{X: 5, Y: 3, Angle: math.Pi / 4, Shape: ShapeDef{Kind: ShapeCircle, Radius: 0.5}})

	local := Vec2{2, 0}
	world := body.WorldPoint(local)
	back := body.LocalPoint(world)

	if math.Abs(back.X-local.X) > 1e-9 || math.Abs(back.Y-local.Y) > 1e-9 {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, local)
	}
}

func TestSetLinearVelocity(t *testing.T) {
	w := NewWorld()
	body := w.CreateBody(BodyDef{Shape: ShapeDef{Kind: ShapeCircle, Radius: 1}})

	body.SetLinearVelocity(1.5, -2.0)
	v := body.LinearVelocity()
	if v.X != 1.5 || v.Y != -2.0 {
		t.Errorf("LinearVelocity() = %+v, want (1.5,-2.0)", v)
	}
}
