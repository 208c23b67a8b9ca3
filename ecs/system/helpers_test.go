package system

import (
	"testing"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

type fixture struct {
	t     *testing.T
	w     *ecs.World
	pw    *ecs.PhysicsWorld
	ctrl  *ActionControllerSystem
	actor ecs.Entity
}

func testTuning() component.ActorTuning {
	return component.ActorTuning{
		Speed:                3,
		Gravity:              -9.81,
		MinThrowDistance:     4,
		MaxThrowDistance:     15,
		RayLength:            1000,
		TimeBetweenThrows:    0.5,
		MaxCallRange:         5,
		RangeGrowthPerSecond: 5,
		MaxFollowers:         20,
		ThrowRange:           component.ThrowRangeClamp,
		CallEligibility:      component.CallCallable,
		IndicatorScale:       component.IndicatorDiameter,
	}
}

// newFixture builds a world with a ground field, a camera whose screen
// coordinates equal world XZ, and an actor at the origin. Only the action
// controller is scheduled.
func newFixture(t *testing.T, tuning component.ActorTuning) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	ground := w.CreateEntity()
	pw.AddGroundRegion(ground, ecs.LayerGround, common.Vec3{X: -50, Z: -50}, common.Vec3{X: 50, Z: 50})

	cam := w.CreateEntity()
	mustAdd(t, ecs.Add(w, cam, component.CameraComponent, &component.Camera{Position: common.Vec3{Y: 30}, Zoom: 1}))

	target := w.CreateEntity()
	mustAdd(t, ecs.Add(w, target, component.IndicatorComponent, &component.Indicator{}))
	call := w.CreateEntity()
	mustAdd(t, ecs.Add(w, call, component.IndicatorComponent, &component.Indicator{}))

	actor := w.CreateEntity()
	mustAdd(t, ecs.Add(w, actor, component.TransformComponent, &component.Transform{}))
	mustAdd(t, ecs.Add(w, actor, component.InputComponent, &component.Input{}))
	mustAdd(t, ecs.Add(w, actor, component.ActorComponent, &component.Actor{
		Tuning:          tuning,
		TargetIndicator: target,
		CallIndicator:   call,
	}))

	ctrl := NewActionControllerSystem(nil)
	w.AddSystem(ctrl)
	return &fixture{t: t, w: w, pw: pw, ctrl: ctrl, actor: actor}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func (f *fixture) actorComp() *component.Actor {
	a, ok := ecs.Get(f.w, f.actor, component.ActorComponent)
	if !ok {
		f.t.Fatalf("actor missing")
	}
	return a
}

func (f *fixture) indicator(e ecs.Entity) *component.Indicator {
	ind, ok := ecs.Get(f.w, e, component.IndicatorComponent)
	if !ok {
		f.t.Fatalf("indicator %v missing", e)
	}
	return ind
}

func (f *fixture) position(e ecs.Entity) common.Vec3 {
	tr, ok := ecs.Get(f.w, e, component.TransformComponent)
	if !ok {
		f.t.Fatalf("transform %v missing", e)
	}
	return tr.Position
}

func (f *fixture) follower(e ecs.Entity) *component.Follower {
	fl, ok := ecs.Get(f.w, e, component.FollowerComponent)
	if !ok {
		f.t.Fatalf("follower %v missing", e)
	}
	return fl
}

func (f *fixture) addFollower(pos common.Vec3) ecs.Entity {
	f.t.Helper()
	e := f.w.CreateEntity()
	mustAdd(f.t, ecs.Add(f.w, e, component.TransformComponent, &component.Transform{Position: pos}))
	mustAdd(f.t, ecs.Add(f.w, e, component.FollowerComponent, &component.Follower{
		State:          component.FollowerIdle,
		Speed:          6,
		FollowDistance: 1.5,
		FlightTime:     0.6,
		ArcHeight:      2,
		LandingReach:   1.5,
	}))
	f.pw.AddCircle(e, ecs.LayerFollower, pos, 0.3)
	return e
}

func (f *fixture) addSite(name string, kind component.SiteKind, required int, pos common.Vec3) ecs.Entity {
	f.t.Helper()
	interactor := component.FollowerWorking
	if kind == component.SiteCarry {
		interactor = component.FollowerCarrying
	}
	e := f.w.CreateEntity()
	mustAdd(f.t, ecs.Add(f.w, e, component.TransformComponent, &component.Transform{Position: pos}))
	mustAdd(f.t, ecs.Add(f.w, e, component.SiteComponent, &component.Site{
		Name:            name,
		Kind:            kind,
		Required:        required,
		Radius:          1,
		Reach:           2,
		InteractorState: interactor,
		PromptVisible:   true,
	}))
	f.pw.AddCircle(e, ecs.LayerSite, pos, 2)
	return e
}

func (f *fixture) addTube(pos common.Vec3, radius float64) ecs.Entity {
	f.t.Helper()
	e := f.w.CreateEntity()
	mustAdd(f.t, ecs.Add(f.w, e, component.TransformComponent, &component.Transform{Position: pos}))
	mustAdd(f.t, ecs.Add(f.w, e, component.TubeComponent, &component.Tube{Name: "tube", Radius: radius}))
	f.pw.AddCircle(e, ecs.LayerTube, pos, radius)
	return e
}

func (f *fixture) site(e ecs.Entity) *component.Site {
	s, ok := ecs.Get(f.w, e, component.SiteComponent)
	if !ok {
		f.t.Fatalf("site %v missing", e)
	}
	return s
}

func (f *fixture) press(x, y float64) {
	f.ctrl.OnTargetedAction(f.w, f.actor, component.PhaseStarted, common.Vec2{X: x, Y: y})
}

func (f *fixture) release(x, y float64) {
	f.ctrl.OnTargetedAction(f.w, f.actor, component.PhaseCanceled, common.Vec2{X: x, Y: y})
}

// drain returns the queued events of one kind and discards the rest.
func (f *fixture) drain(kind ecs.EventKind) []ecs.Event {
	var out []ecs.Event
	for _, evt := range f.w.Events().Drain() {
		if evt.Kind == kind {
			out = append(out, evt)
		}
	}
	return out
}

func countKind(events []ecs.Event, kind ecs.EventKind) int {
	n := 0
	for _, evt := range events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}
