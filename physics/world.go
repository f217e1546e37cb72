package physics

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// position, angle, velocity, angularVelocity and shape are ark components
// backing every body created through World. A body is nothing more than
// an ark entity carrying this component set; the ECS's dense storage
// gives raycasting a cache-friendly component scan for free.
type position struct{ X, Y float64 }
type angle struct{ Theta float64 }
type velocity struct{ X, Y float64 }
type angularVelocity struct{ W float64 }
type shape struct {
	def    ShapeDef
	static bool
}

// arkWorld is an ark-backed implementation of the physics.World contract:
// bodies are entities, fixtures are a single shape component per body.
type arkWorld struct {
	world *ecs.World

	posMap   *ecs.Map1[position]
	angMap   *ecs.Map1[angle]
	velMap   *ecs.Map1[velocity]
	angVMap  *ecs.Map1[angularVelocity]
	shapeMap *ecs.Map1[shape]

	mapper *ecs.Map5[position, angle, velocity, angularVelocity, shape]
	filter *ecs.Filter5[position, angle, velocity, angularVelocity, shape]

	bodies []Body
}

// NewWorld builds an empty physics world.
func NewWorld() *arkWorld {
	w := ecs.NewWorld()
	world := &arkWorld{
		world:    w,
		posMap:   ecs.NewMap1[position](w),
		angMap:   ecs.NewMap1[angle](w),
		velMap:   ecs.NewMap1[velocity](w),
		angVMap:  ecs.NewMap1[angularVelocity](w),
		shapeMap: ecs.NewMap1[shape](w),
	}
	world.mapper = ecs.NewMap5[position, angle, velocity, angularVelocity, shape](w)
	world.filter = ecs.NewFilter5[position, angle, velocity, angularVelocity, shape](w)
	return world
}

// CreateBody spawns a new body with the given initial pose and fixture.
func (w *arkWorld) CreateBody(def BodyDef) Body {
	e := w.mapper.NewEntity(
		&position{X: def.X, Y: def.Y},
		&angle{Theta: NormalizeAngle(def.Angle)},
		&velocity{},
		&angularVelocity{},
		&shape{def: def.Shape, static: def.Static},
	)
	b := &arkBody{world: w, entity: e}
	w.bodies = append(w.bodies, b)
	return b
}

// Bodies returns every body currently in the world, in creation order.
func (w *arkWorld) Bodies() []Body {
	return w.bodies
}

// Step advances every non-static body by dt using simple Euler
// integration with axis-aligned world bounds: velocity carries the body
// forward, position wraps horizontally and is clamped vertically.
// Non-agent bodies (ground, obstacles, a patrol agent) are driven this
// way; a VFH agent's velocity is instead recomputed fresh every tick by
// the navigation core, so integrating it here is harmless.
func (w *arkWorld) Step(dt float64, boundsW, boundsH float64) {
	query := w.filter.Query()
	for query.Next() {
		pos, _, vel, _, shp := query.Get()
		if shp.static {
			continue
		}
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		if boundsW > 0 {
			if pos.X < 0 {
				pos.X += boundsW
			}
			if pos.X > boundsW {
				pos.X -= boundsW
			}
		}
		if boundsH > 0 {
			if pos.Y < 0 {
				pos.Y = 0
				vel.Y *= -1
			}
			if pos.Y > boundsH {
				pos.Y = boundsH
				vel.Y *= -1
			}
		}
	}
}

// RayCast walks every fixture in the world and reports the ones whose
// shape intersects the p1->p2 segment, computing the world hit point,
// surface normal and fraction along the segment for each. Fixtures
// belonging to no body are impossible by construction, so the "exclude
// the emitting body" rule the sensor package needs is left to the
// caller: it simply skips fixtures whose Body() is the emitting body.
func (w *arkWorld) RayCast(p1, p2 Vec2, cb RaycastCallback) {
	query := w.filter.Query()
	for query.Next() {
		pos, ang, _, _, shp := query.Get()
		entity := query.Entity()

		body := &arkBody{world: w, entity: entity}
		fixture := &arkFixture{body: body, def: shp.def}

		var hit bool
		var point, normal Vec2
		var fraction float64

		switch shp.def.Kind {
		case ShapeCircle:
			hit, point, normal, fraction = rayCircle(p1, p2, Vec2{pos.X, pos.Y}, shp.def.Radius)
		case ShapeBox:
			hit, point, normal, fraction = rayBox(p1, p2, Vec2{pos.X, pos.Y}, ang.Theta, shp.def.HalfWidth, shp.def.HalfHeight)
		}
		if !hit {
			continue
		}
		cb(fixture, point, normal, fraction)
	}
}

// rayCircle intersects the segment p1->p2 with a circle centered at c
// with the given radius, returning the nearest hit at fraction >= 0.
func rayCircle(p1, p2, c Vec2, radius float64) (bool, Vec2, Vec2, float64) {
	d := p2.sub(p1)
	f := p1.sub(c)

	a := d.X*d.X + d.Y*d.Y
	if a == 0 {
		return false, Vec2{}, Vec2{}, 0
	}
	b := 2 * (f.X*d.X + f.Y*d.Y)
	cc := f.X*f.X + f.Y*f.Y - radius*radius

	disc := b*b - 4*a*cc
	if disc < 0 {
		return false, Vec2{}, Vec2{}, 0
	}
	sqrtDisc := math.Sqrt(disc)

	t := (-b - sqrtDisc) / (2 * a)
	if t < 0 || t > 1 {
		t = (-b + sqrtDisc) / (2 * a)
		if t < 0 || t > 1 {
			return false, Vec2{}, Vec2{}, 0
		}
	}

	point := Vec2{p1.X + t*d.X, p1.Y + t*d.Y}
	normal := Vec2{(point.X - c.X) / radius, (point.Y - c.Y) / radius}
	return true, point, normal, t
}

// rayBox intersects the segment p1->p2 with a box centered at c, rotated
// by theta, using the slab method in the box's local frame.
func rayBox(p1, p2, c Vec2, theta, halfW, halfH float64) (bool, Vec2, Vec2, float64) {
	cosT, sinT := math.Cos(-theta), math.Sin(-theta)
	toLocal := func(p Vec2) Vec2 {
		rel := p.sub(c)
		return Vec2{
			X: rel.X*cosT - rel.Y*sinT,
			Y: rel.X*sinT + rel.Y*cosT,
		}
	}

	l1 := toLocal(p1)
	l2 := toLocal(p2)
	d := l2.sub(l1)

	tMin, tMax := 0.0, 1.0
	var normal Vec2

	axes := []struct {
		origin, dir, half float64
		nx, ny            float64
	}{
		{l1.X, d.X, halfW, 1, 0},
		{l1.Y, d.Y, halfH, 0, 1},
	}

	for _, ax := range axes {
		if ax.dir == 0 {
			if ax.origin < -ax.half || ax.origin > ax.half {
				return false, Vec2{}, Vec2{}, 0
			}
			continue
		}
		t1 := (-ax.half - ax.origin) / ax.dir
		t2 := (ax.half - ax.origin) / ax.dir
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tMin {
			tMin = t1
			normal = Vec2{ax.nx * sign, ax.ny * sign}
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false, Vec2{}, Vec2{}, 0
		}
	}

	if tMin < 0 || tMin > 1 {
		return false, Vec2{}, Vec2{}, 0
	}

	wd := p2.sub(p1)
	point := Vec2{p1.X + tMin*wd.X, p1.Y + tMin*wd.Y}
	worldNormal := Vec2{
		X: normal.X*math.Cos(theta) - normal.Y*math.Sin(theta),
		Y: normal.X*math.Sin(theta) + normal.Y*math.Cos(theta),
	}
	return true, point, worldNormal, tMin
}

// arkBody adapts a single ark entity to the Body interface.
type arkBody struct {
	world  *arkWorld
	entity ecs.Entity
}

func (b *arkBody) Position() Vec2 {
	p := b.world.posMap.Get(b.entity)
	return Vec2{p.X, p.Y}
}

func (b *arkBody) Angle() float64 {
	return b.world.angMap.Get(b.entity).Theta
}

func (b *arkBody) SetLinearVelocity(vx, vy float64) {
	v := b.world.velMap.Get(b.entity)
	v.X, v.Y = vx, vy
}

func (b *arkBody) LinearVelocity() Vec2 {
	v := b.world.velMap.Get(b.entity)
	return Vec2{v.X, v.Y}
}

func (b *arkBody) SetAngularVelocity(w float64) {
	b.world.angVMap.Get(b.entity).W = w
}

func (b *arkBody) WorldPoint(local Vec2) Vec2 {
	pos := b.Position()
	th := b.Angle()
	cosT, sinT := math.Cos(th), math.Sin(th)
	return Vec2{
		X: pos.X + local.X*cosT - local.Y*sinT,
		Y: pos.Y + local.X*sinT + local.Y*cosT,
	}
}

func (b *arkBody) LocalPoint(world Vec2) Vec2 {
	pos := b.Position()
	th := b.Angle()
	rel := world.sub(pos)
	cosT, sinT := math.Cos(-th), math.Sin(-th)
	return Vec2{
		X: rel.X*cosT - rel.Y*sinT,
		Y: rel.X*sinT + rel.Y*cosT,
	}
}

func (b *arkBody) Fixtures() []Fixture {
	shp := b.world.shapeMap.Get(b.entity)
	return []Fixture{&arkFixture{body: b, def: shp.def}}
}

// Same returns true if b and o are the same underlying body, used by
// callers that need identity comparison beyond what the Body interface
// exposes (fixture filtering during raycasting).
func (b *arkBody) Same(o Body) bool {
	other, ok := o.(*arkBody)
	if !ok {
		return false
	}
	return other.entity == b.entity
}

type arkFixture struct {
	body *arkBody
	def  ShapeDef
}

func (f *arkFixture) Body() Body      { return f.body }
func (f *arkFixture) Shape() ShapeDef { return f.def }
