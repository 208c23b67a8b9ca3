package component

import (
	"math"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
)

type SiteKind string

const (
	SiteGeneric SiteKind = "generic"
	SiteCarry   SiteKind = "carry"
)

// AdmissionPolicy decides whether a site accepts a follower.
type AdmissionPolicy interface {
	Admit(site *Site, follower *Follower) bool
}

// Site is a quota-gated interaction point.
type Site struct {
	Name     string
	Kind     SiteKind
	Required int
	Radius   float64
	// Reach is how close a landing follower must be to join.
	Reach float64

	Assigned []ecs.Entity
	Started  bool

	InteractorState FollowerState
	Admission       AdmissionPolicy

	Disabled      bool
	PromptVisible bool
}

func (s *Site) AssignedCount() int {
	if s == nil {
		return 0
	}
	return len(s.Assigned)
}

// PlacementOffset returns the offset for the next slot, spreading assigned
// followers evenly around a circle of Radius.
func (s *Site) PlacementOffset() common.Vec3 {
	if s == nil || s.Required <= 0 {
		return common.Vec3{}
	}
	angle := float64(len(s.Assigned)) * math.Pi * 2 / float64(s.Required)
	return common.Vec3{X: math.Cos(angle) * s.Radius, Z: math.Sin(angle) * s.Radius}
}

func (s *Site) IndexOf(e ecs.Entity) int {
	if s == nil {
		return -1
	}
	for i, a := range s.Assigned {
		if a == e {
			return i
		}
	}
	return -1
}

var SiteComponent = NewComponent[Site]()
