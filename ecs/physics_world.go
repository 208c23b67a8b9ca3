package ecs

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blobcaller/common"
)

// Layer is a collision category bit. Queries take a mask of layers.
type Layer uint

const (
	LayerGround Layer = 1 << iota
	LayerFollower
	LayerSite
	LayerTube
	LayerDestructable
	LayerEnemy

	LayerAll = ^Layer(0)
)

// RaycastHit describes the first target-layer hit along a ray.
type RaycastHit struct {
	Point    common.Vec3
	Distance float64
	Entity   Entity
}

// PhysicsWorld owns the Chipmunk space used for layer-filtered queries. The
// space lives on the ground (XZ) plane: world X maps to cp X, world Z to cp Y.
// It does not simulate; bodies are kinematic and moved by systems.
type PhysicsWorld struct {
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	entityShapes  map[Entity]*cp.Shape
	entityBodies  map[Entity]*cp.Body
}

// NewPhysicsWorld creates an empty query space.
func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		space:         cp.NewSpace(),
		shapeToEntity: make(map[*cp.Shape]Entity),
		entityShapes:  make(map[Entity]*cp.Shape),
		entityBodies:  make(map[Entity]*cp.Body),
	}
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func layerFilter(layer Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES)
}

func queryFilter(mask Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

// AddGroundRegion registers a static rectangle of ground on the given layer.
// min and max are opposite corners on the XZ plane.
func (pw *PhysicsWorld) AddGroundRegion(e Entity, layer Layer, min, max common.Vec3) {
	if pw == nil || !e.Valid() {
		return
	}
	pw.RemoveEntity(e)
	bb := cp.BB{
		L: math.Min(min.X, max.X),
		B: math.Min(min.Z, max.Z),
		R: math.Max(min.X, max.X),
		T: math.Max(min.Z, max.Z),
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFilter(layerFilter(layer))
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	pw.entityShapes[e] = shape
}

// AddCircle registers a kinematic circle of radius at pos on the given layer.
func (pw *PhysicsWorld) AddCircle(e Entity, layer Layer, pos common.Vec3, radius float64) {
	if pw == nil || !e.Valid() {
		return
	}
	pw.RemoveEntity(e)
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFilter(layerFilter(layer))
	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	pw.entityShapes[e] = shape
	pw.entityBodies[e] = body
}

// SetPosition moves the body of e. The space never steps, so the shape is
// reinserted to refresh its bounds in the index.
func (pw *PhysicsWorld) SetPosition(e Entity, pos common.Vec3) {
	if pw == nil {
		return
	}
	body, ok := pw.entityBodies[e]
	if !ok {
		return
	}
	body.SetPosition(toCP(pos))
	if shape, ok := pw.entityShapes[e]; ok {
		pw.space.RemoveShape(shape)
		pw.space.AddShape(shape)
	}
}

// RemoveEntity drops every shape and body registered for e.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil {
		return
	}
	if shape, ok := pw.entityShapes[e]; ok {
		pw.space.RemoveShape(shape)
		delete(pw.shapeToEntity, shape)
		delete(pw.entityShapes, e)
	}
	if body, ok := pw.entityBodies[e]; ok {
		pw.space.RemoveBody(body)
		delete(pw.entityBodies, e)
	}
}

// Raycast casts a ray against the ground plane and reports a hit when the
// intersection lies inside a shape matching mask within maxDistance.
func (pw *PhysicsWorld) Raycast(origin, dir common.Vec3, maxDistance float64, mask Layer) (RaycastHit, bool) {
	if pw == nil {
		return RaycastHit{}, false
	}
	dir = dir.Normalized()
	if dir.Y == 0 {
		return RaycastHit{}, false
	}
	t := (common.GroundY - origin.Y) / dir.Y
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}
	point := origin.Add(dir.Scale(t))
	info := pw.space.PointQueryNearest(toCP(point), 0, queryFilter(mask))
	if info == nil || info.Shape == nil {
		return RaycastHit{}, false
	}
	e, ok := pw.shapeToEntity[info.Shape]
	if !ok {
		return RaycastHit{}, false
	}
	point.Y = common.GroundY
	return RaycastHit{Point: point, Distance: t, Entity: e}, true
}

// SphereCastAll returns every entity on mask whose shape overlaps the sphere,
// nearest first.
func (pw *PhysicsWorld) SphereCastAll(center common.Vec3, radius float64, mask Layer) []Entity {
	if pw == nil || radius < 0 {
		return nil
	}
	type hit struct {
		e    Entity
		dist float64
	}
	var hits []hit
	p := toCP(center)
	pw.space.BBQuery(cp.NewBBForCircle(p, radius), queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		e, ok := pw.shapeToEntity[shape]
		if !ok {
			return
		}
		info := shape.PointQuery(p)
		if info.Distance <= radius {
			hits = append(hits, hit{e: e, dist: info.Distance})
		}
	}, nil)
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].e < hits[j].e
	})
	out := make([]Entity, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.e)
	}
	return out
}
