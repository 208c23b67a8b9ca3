package system

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

// WorldQuery is the spatial query surface the controller needs.
type WorldQuery interface {
	Raycast(origin, dir common.Vec3, maxDistance float64, mask ecs.Layer) (ecs.RaycastHit, bool)
	SphereCastAll(center common.Vec3, radius float64, mask ecs.Layer) []ecs.Entity
}

const (
	movementDeadzone = 0.1
	defaultRayLength = 1000.0
)

// ActionControllerSystem drives actors: intents, movement, target
// resolution, and the single background action slot.
type ActionControllerSystem struct {
	Query        WorldQuery
	TargetMask   ecs.Layer
	FollowerMask ecs.Layer
}

// NewActionControllerSystem builds a controller. A nil query falls back to
// the world's physics world.
func NewActionControllerSystem(query WorldQuery) *ActionControllerSystem {
	return &ActionControllerSystem{
		Query:        query,
		TargetMask:   ecs.LayerGround,
		FollowerMask: ecs.LayerFollower,
	}
}

func (s *ActionControllerSystem) query(w *ecs.World) WorldQuery {
	if s.Query != nil {
		return s.Query
	}
	if pw := w.PhysicsWorld(); pw != nil {
		return pw
	}
	return nil
}

// OnMovement records the latest movement intent.
func (s *ActionControllerSystem) OnMovement(w *ecs.World, e ecs.Entity, x, y float64) {
	actor, ok := ecs.Get(w, e, component.ActorComponent)
	if !ok || actor.Paused {
		return
	}
	if input, ok := ecs.Get(w, e, component.InputComponent); ok {
		input.Move = common.Vec2{X: x, Y: y}
	}
}

// OnPointer records the pointer position used for target resolution.
func (s *ActionControllerSystem) OnPointer(w *ecs.World, e ecs.Entity, point common.Vec2) {
	if input, ok := ecs.Get(w, e, component.InputComponent); ok {
		input.Pointer = point
	}
}

// OnTargetedAction queues a start or cancel of the targeted action.
func (s *ActionControllerSystem) OnTargetedAction(w *ecs.World, e ecs.Entity, phase component.ActionPhase, point common.Vec2) {
	actor, ok := ecs.Get(w, e, component.ActorComponent)
	if !ok || actor.Paused {
		return
	}
	if input, ok := ecs.Get(w, e, component.InputComponent); ok {
		input.Pointer = point
		input.Pending = append(input.Pending, component.TargetedAction{Phase: phase, Point: point})
	}
}

// SetPaused gates intents while a menu is open. Pausing drops the movement
// intent and anything queued.
func (s *ActionControllerSystem) SetPaused(w *ecs.World, e ecs.Entity, paused bool) {
	actor, ok := ecs.Get(w, e, component.ActorComponent)
	if !ok {
		return
	}
	actor.Paused = paused
	if !paused {
		return
	}
	if input, ok := ecs.Get(w, e, component.InputComponent); ok {
		input.Move = common.Vec2{}
		input.Pending = nil
	}
}

func (s *ActionControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.Each(w, component.ActorComponent, func(e ecs.Entity, actor *component.Actor) {
		s.updateActor(w, e, actor, dt)
	})
}

func (s *ActionControllerSystem) updateActor(w *ecs.World, e ecs.Entity, actor *component.Actor, dt float64) {
	tr, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}

	if input, ok := ecs.Get(w, e, component.InputComponent); ok {
		pending := input.Pending
		input.Pending = nil
		for _, act := range pending {
			switch act.Phase {
			case component.PhaseStarted:
				s.handleTargetedActionStart(w, e, actor, tr, act.Point)
			case component.PhaseCanceled:
				s.StopCurrentAction(w, e, actor)
			}
		}
		move(actor, tr, input.Move, dt)
		s.updateTarget(w, actor, tr, input.Pointer)
	}

	if actor.Action == nil {
		return
	}
	if actor.Action.Resume(s.actionContext(w, e, actor), dt) == component.ActionComplete {
		s.StopCurrentAction(w, e, actor)
	}
}

func (s *ActionControllerSystem) handleTargetedActionStart(w *ecs.World, e ecs.Entity, actor *component.Actor, tr *component.Transform, point common.Vec2) {
	hit, ok := s.raycastPointer(w, actor, point)
	if !ok {
		return
	}
	d := common.Distance(tr.Position, hit.Point)
	if d < actor.Tuning.MinThrowDistance {
		s.StartCallingBack(w, e, actor)
		return
	}
	if d > actor.Tuning.MaxThrowDistance && actor.Tuning.ThrowRange == component.ThrowRangeRefuse {
		return
	}
	s.StartThrowing(w, e, actor)
}

func (s *ActionControllerSystem) raycastPointer(w *ecs.World, actor *component.Actor, point common.Vec2) (ecs.RaycastHit, bool) {
	q := s.query(w)
	cam := firstCamera(w)
	if q == nil || cam == nil {
		return ecs.RaycastHit{}, false
	}
	length := actor.Tuning.RayLength
	if length <= 0 {
		length = defaultRayLength
	}
	origin, dir := cam.ScreenPointToRay(point)
	return q.Raycast(origin, dir, length, s.TargetMask)
}

func (s *ActionControllerSystem) updateTarget(w *ecs.World, actor *component.Actor, tr *component.Transform, pointer common.Vec2) {
	indicator, _ := ecs.Get(w, actor.TargetIndicator, component.IndicatorComponent)

	hit, ok := s.raycastPointer(w, actor, pointer)
	if !ok {
		actor.HasTarget = false
		indicator.SetActive(false)
		return
	}
	target, ok := ResolveTarget(tr.Position, hit.Point, actor.Tuning)
	actor.Target, actor.HasTarget = target, ok
	indicator.SetActive(ok)
	if ok {
		indicator.SetPosition(target)
	}
}

// ResolveTarget turns a raw hit into a throw target. Hits closer than
// MinThrowDistance yield no target; hits beyond MaxThrowDistance are clamped
// along the actor-to-hit direction, or refused under ThrowRangeRefuse.
func ResolveTarget(from, hit common.Vec3, t component.ActorTuning) (common.Vec3, bool) {
	d := common.Distance(from, hit)
	if d < t.MinThrowDistance {
		return common.Vec3{}, false
	}
	if d > t.MaxThrowDistance {
		if t.ThrowRange == component.ThrowRangeRefuse {
			return common.Vec3{}, false
		}
		return from.Add(hit.Sub(from).Normalized().Scale(t.MaxThrowDistance)), true
	}
	return hit, true
}

func move(actor *component.Actor, tr *component.Transform, intent common.Vec2, dt float64) {
	if actor.State != component.ActionNone || intent.Len() < movementDeadzone {
		return
	}
	t := actor.Tuning
	tr.Position.X += intent.X * t.Speed * dt
	tr.Position.Z += intent.Y * t.Speed * dt
	tr.Position.Y += t.Gravity * dt
	if tr.Position.Y < common.GroundY {
		tr.Position.Y = common.GroundY
	}
	tr.Yaw = common.YawDegrees(intent.X, intent.Y)
}

// StartCallingBack cancels any running action and begins a call-back.
func (s *ActionControllerSystem) StartCallingBack(w *ecs.World, e ecs.Entity, actor *component.Actor) {
	s.StopCurrentAction(w, e, actor)
	actor.State = component.ActionCallingBack
	if indicator, ok := ecs.Get(w, actor.CallIndicator, component.IndicatorComponent); ok {
		indicator.SetActive(true)
		indicator.SetScale(common.Vec3{})
	}
	s.begin(w, e, actor, &callBackAction{})
}

// StartThrowing cancels any running action and begins throwing the roster.
func (s *ActionControllerSystem) StartThrowing(w *ecs.World, e ecs.Entity, actor *component.Actor) {
	s.StopCurrentAction(w, e, actor)
	actor.State = component.ActionThrowing
	s.begin(w, e, actor, &throwAction{})
}

func (s *ActionControllerSystem) begin(w *ecs.World, e ecs.Entity, actor *component.Actor, action component.Action) {
	actor.Action = action
	w.Events().Push(ecs.Event{Kind: ecs.EventActionStarted, Subject: e, Detail: action.Name()})
}

// StopCurrentAction clears the action slot, running its cleanup once, and
// returns the actor to NoAction.
func (s *ActionControllerSystem) StopCurrentAction(w *ecs.World, e ecs.Entity, actor *component.Actor) {
	if actor == nil {
		return
	}
	if action := actor.Action; action != nil {
		actor.Action = nil
		action.Cleanup(s.actionContext(w, e, actor))
		w.Events().Push(ecs.Event{Kind: ecs.EventActionEnded, Subject: e, Detail: action.Name()})
	}
	actor.State = component.ActionNone
}

func (s *ActionControllerSystem) actionContext(w *ecs.World, e ecs.Entity, actor *component.Actor) *component.ActionContext {
	q := s.query(w)
	ctx := &component.ActionContext{Entity: e, Actor: actor}
	ctx.Position = func() common.Vec3 {
		if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
			return tr.Position
		}
		return common.Vec3{}
	}
	ctx.Target = func() (common.Vec3, bool) {
		return actor.Target, actor.HasTarget
	}
	ctx.NearbyFollowers = func(radius float64) []ecs.Entity {
		if q == nil {
			return nil
		}
		return q.SphereCastAll(ctx.Position(), radius, s.FollowerMask)
	}
	ctx.Eligible = func(f ecs.Entity) bool {
		return isCallable(w, f, actor.Tuning.CallEligibility)
	}
	ctx.Claim = func(f ecs.Entity) bool {
		return ClaimFollower(w, e, f)
	}
	ctx.Throw = func(f ecs.Entity, from, to common.Vec3) {
		ThrowFollower(w, e, f, from, to)
	}
	ctx.CallIndicator, _ = ecs.Get(w, actor.CallIndicator, component.IndicatorComponent)
	return ctx
}

func isCallable(w *ecs.World, e ecs.Entity, policy component.CallEligibility) bool {
	f, ok := ecs.Get(w, e, component.FollowerComponent)
	if !ok {
		return false
	}
	if policy == component.CallIdleOnly {
		return f.State == component.FollowerIdle
	}
	return f.CanBeCalled()
}

func firstCamera(w *ecs.World) *component.Camera {
	var cam *component.Camera
	ecs.Each(w, component.CameraComponent, func(_ ecs.Entity, c *component.Camera) {
		if cam == nil {
			cam = c
		}
	})
	return cam
}
