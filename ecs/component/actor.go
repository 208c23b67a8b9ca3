package component

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
)

type ActionState int

const (
	ActionNone ActionState = iota
	ActionThrowing
	ActionCallingBack
)

func (s ActionState) String() string {
	switch s {
	case ActionThrowing:
		return "throwing"
	case ActionCallingBack:
		return "calling_back"
	default:
		return "no_action"
	}
}

// ThrowRangePolicy decides what happens to targets beyond MaxThrowDistance.
type ThrowRangePolicy string

const (
	ThrowRangeClamp  ThrowRangePolicy = "clamp"
	ThrowRangeRefuse ThrowRangePolicy = "refuse"
)

// CallEligibility decides which followers a call-back may claim.
type CallEligibility string

const (
	CallCallable CallEligibility = "callable"
	CallIdleOnly CallEligibility = "idle_only"
)

// IndicatorScale decides whether the call indicator is sized by diameter or radius.
type IndicatorScale string

const (
	IndicatorDiameter IndicatorScale = "diameter"
	IndicatorRadius   IndicatorScale = "radius"
)

type ActorTuning struct {
	Speed                float64
	Gravity              float64
	MinThrowDistance     float64
	MaxThrowDistance     float64
	RayLength            float64
	TimeBetweenThrows    float64
	MaxCallRange         float64
	RangeGrowthPerSecond float64
	MaxFollowers         int

	ThrowRange      ThrowRangePolicy
	CallEligibility CallEligibility
	IndicatorScale  IndicatorScale
}

// Actor is the player-controlled entity and its follower roster.
type Actor struct {
	Tuning ActorTuning

	State  ActionState
	Action Action

	// Followers is ordered by claim time; the front is thrown first.
	Followers []ecs.Entity

	Target    common.Vec3
	HasTarget bool

	TargetIndicator ecs.Entity
	CallIndicator   ecs.Entity

	Paused bool
}

func (a *Actor) CurrentFollowerAmount() int {
	if a == nil {
		return 0
	}
	return len(a.Followers)
}

func (a *Actor) MaxFollowers() int {
	if a == nil {
		return 0
	}
	return a.Tuning.MaxFollowers
}

func (a *Actor) HasRoom() bool {
	return a != nil && len(a.Followers) < a.Tuning.MaxFollowers
}

// AddFollower appends e to the roster unless it is full or already present.
func (a *Actor) AddFollower(e ecs.Entity) bool {
	if !a.HasRoom() || a.indexOf(e) >= 0 {
		return false
	}
	a.Followers = append(a.Followers, e)
	return true
}

// RemoveFollower drops e from the roster, keeping order.
func (a *Actor) RemoveFollower(e ecs.Entity) bool {
	idx := a.indexOf(e)
	if idx < 0 {
		return false
	}
	a.Followers = append(a.Followers[:idx], a.Followers[idx+1:]...)
	return true
}

// PopFollower removes and returns the oldest follower.
func (a *Actor) PopFollower() (ecs.Entity, bool) {
	if a == nil || len(a.Followers) == 0 {
		return 0, false
	}
	e := a.Followers[0]
	a.Followers = a.Followers[1:]
	return e, true
}

func (a *Actor) indexOf(e ecs.Entity) int {
	if a == nil {
		return -1
	}
	for i, f := range a.Followers {
		if f == e {
			return i
		}
	}
	return -1
}

var ActorComponent = NewComponent[Actor]()
