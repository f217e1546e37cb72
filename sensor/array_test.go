package sensor

import (
	"math"
	"testing"

	"github.com/sarcasticnature/just/physics"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestSenseOneSingleSensorNoObstacles(t *testing.T) {
	world := physics.NewWorld()
	dummy := world.CreateBody(physics.BodyDef{Shape: physics.ShapeDef{Kind: physics.ShapeCircle, Radius: 0.1, Density: 1}})

	arr := NewArray(dummy, 1, 5.0)

	for i := 0; i < 2; i++ {
		r := arr.SenseOne(world)
		if r.Angle != 0.0 {
			t.Errorf("Angle = %v, want 0", r.Angle)
		}
		if r.Distance != 0.0 || r.Detected {
			t.Errorf("Reading = %+v, want a no-hit reading", r)
		}
	}

	readings := arr.SenseAll(world)
	if len(readings) != 1 {
		t.Fatalf("len(readings) = %d, want 1", len(readings))
	}
	if readings[0].Angle != 0.0 || readings[0].Distance != 0.0 {
		t.Errorf("SenseAll()[0] = %+v", readings[0])
	}
}

func TestSenseOneMultipleSensorsNoObstacles(t *testing.T) {
	world := physics.NewWorld()
	dummy := world.CreateBody(physics.BodyDef{Shape: physics.ShapeDef{Kind: physics.ShapeCircle, Radius: 0.1, Density: 1}})

	arr := NewArray(dummy, 10, 1.0)

	for i := 0; i < 10; i++ {
		r := arr.SenseOne(world)
		want := float64(i) * 2.0 * math.Pi / 10.0
		if !approxEqual(r.Angle, want, 1e-9) {
			t.Errorf("beam %d angle = %v, want %v", i, r.Angle, want)
		}
		if r.Distance != 0.0 {
			t.Errorf("beam %d distance = %v, want 0", i, r.Distance)
		}
	}

	readings := arr.SenseAll(world)
	if len(readings) != 10 {
		t.Fatalf("len(readings) = %d, want 10", len(readings))
	}
	for i, r := range readings {
		want := float64(i) * 2.0 * math.Pi / 10.0
		if !approxEqual(r.Angle, want, 1e-9) {
			t.Errorf("SenseAll()[%d].Angle = %v, want %v", i, r.Angle, want)
		}
	}
}

func TestSenseOneRaycastsHitObstacles(t *testing.T) {
	world := physics.NewWorld()
	dummy := world.CreateBody(physics.BodyDef{Shape: physics.ShapeDef{Kind: physics.ShapeCircle, Radius: 0.1, Density: 1}})

	// Obstacle #1: detected at distance ~1.0 on the 0-radian beam.
	world.CreateBody(physics.BodyDef{X: 2.0, Y: 0.0, Static: true, Shape: physics.ShapeDef{Kind: physics.ShapeCircle, Radius: 1.0, Density: 1}})
	// Obstacle #2: detected at distance ~5.0 on the pi/2 beam.
	world.CreateBody(physics.BodyDef{X: 0.0, Y: 6.0, Static: true, Shape: physics.ShapeDef{Kind: physics.ShapeCircle, Radius: 1.0, Density: 1}})
	// Obstacle #3: beyond the sensor's max range of 10, never detected.
	world.CreateBody(physics.BodyDef{X: -11.001, Y: 0.0, Static: true, Shape: physics.ShapeDef{Kind: physics.ShapeCircle, Radius: 1.0, Density: 1}})

	arr := NewArray(dummy, 4, 10.0)

	r := arr.SenseOne(world)
	if !approxEqual(r.Angle, 0.0, 1e-9) {
		t.Fatalf("beam 0 angle = %v, want 0", r.Angle)
	}
	if !approxEqual(r.Distance, 1.0, 1e-6) {
		t.Errorf("beam 0 distance = %v, want ~1.0", r.Distance)
	}

	r = arr.SenseOne(world)
	if !approxEqual(r.Angle, math.Pi/2, 1e-9) {
		t.Fatalf("beam 1 angle = %v, want pi/2", r.Angle)
	}
	if !approxEqual(r.Distance, 5.0, 1e-6) {
		t.Errorf("beam 1 distance = %v, want ~5.0", r.Distance)
	}

	r = arr.SenseOne(world)
	if !approxEqual(r.Angle, math.Pi, 1e-9) {
		t.Fatalf("beam 2 angle = %v, want pi", r.Angle)
	}
	if r.Distance != 0.0 || r.Detected {
		t.Errorf("beam 2 reading = %+v, want a no-hit reading", r)
	}

	r = arr.SenseOne(world)
	if !approxEqual(r.Angle, 3*math.Pi/2, 1e-9) {
		t.Fatalf("beam 3 angle = %v, want 3pi/2", r.Angle)
	}
	if r.Distance != 0.0 || r.Detected {
		t.Errorf("beam 3 reading = %+v, want a no-hit reading", r)
	}
}

func TestMaxRange(t *testing.T) {
	world := physics.NewWorld()
	dummy := world.CreateBody(physics.BodyDef{Shape: physics.ShapeDef{Kind: physics.ShapeCircle, Radius: 0.1}})
	arr := NewArray(dummy, 8, 12.5)
	if arr.MaxRange() != 12.5 {
		t.Errorf("MaxRange() = %v, want 12.5", arr.MaxRange())
	}
}
