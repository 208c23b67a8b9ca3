package component

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
)

type ActionStatus int

const (
	ActionContinue ActionStatus = iota
	ActionComplete
)

// Action is a resumable background task held in an actor's single action
// slot. Resume runs once per tick. Cleanup runs exactly once when the slot is
// cleared, whether the action completed or was cancelled.
type Action interface {
	Name() string
	Resume(ctx *ActionContext, dt float64) ActionStatus
	Cleanup(ctx *ActionContext)
}

// ActionContext gives an action controlled access to its actor and the world.
// Callbacks keep actions decoupled from the ecs package.
type ActionContext struct {
	Entity ecs.Entity
	Actor  *Actor

	Position        func() common.Vec3
	Target          func() (common.Vec3, bool)
	NearbyFollowers func(radius float64) []ecs.Entity
	Eligible        func(follower ecs.Entity) bool
	Claim           func(follower ecs.Entity) bool
	Throw           func(follower ecs.Entity, from, to common.Vec3)

	CallIndicator *Indicator
}
