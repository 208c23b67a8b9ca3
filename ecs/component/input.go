package component

import "github.com/milk9111/blobcaller/common"

type ActionPhase int

const (
	PhaseStarted ActionPhase = iota
	PhaseCanceled
)

// TargetedAction is one press or release of the targeted-action binding.
type TargetedAction struct {
	Phase ActionPhase
	Point common.Vec2
}

// Input stores the intents delivered to an actor since the last tick.
type Input struct {
	Move    common.Vec2
	Pointer common.Vec2
	Pending []TargetedAction
}

var InputComponent = NewComponent[Input]()
