package component

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
)

// Carry makes a site a payload that rides a NavAgent to a tube once its
// quota is met.
type Carry struct {
	Tube       ecs.Entity
	BaseSpeed  float64
	LiftOffset common.Vec3
	Lifted     bool
}

var CarryComponent = NewComponent[Carry]()

// NavAgent moves its entity in a straight line toward Destination.
type NavAgent struct {
	Destination common.Vec3
	Speed       float64
	Moving      bool
}

func (n *NavAgent) SetDestination(dest common.Vec3) {
	if n == nil {
		return
	}
	n.Destination = dest
	n.Moving = true
}

var NavAgentComponent = NewComponent[NavAgent]()

// Tube consumes followers and carried payloads that reach it.
type Tube struct {
	Name   string
	Radius float64
}

var TubeComponent = NewComponent[Tube]()
