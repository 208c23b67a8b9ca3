package component

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
)

type FollowerState int

const (
	FollowerIdle FollowerState = iota
	FollowerFollowing
	FollowerThrown
	FollowerInTransitToSite
	// Interactor states handed out by sites.
	FollowerWorking
	FollowerCarrying
)

var followerStateNames = map[FollowerState]string{
	FollowerIdle:            "idle",
	FollowerFollowing:       "following",
	FollowerThrown:          "thrown",
	FollowerInTransitToSite: "in_transit",
	FollowerWorking:         "working",
	FollowerCarrying:        "carrying",
}

func (s FollowerState) String() string {
	if name, ok := followerStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseFollowerState maps a prefab name back to a state.
func ParseFollowerState(name string) (FollowerState, bool) {
	for state, n := range followerStateNames {
		if n == name {
			return state, true
		}
	}
	return FollowerIdle, false
}

type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerActor
	OwnerSite
	OwnerTube
)

// Owner names the single component that controls a follower.
type Owner struct {
	Kind   OwnerKind
	Entity ecs.Entity
}

type Follower struct {
	State FollowerState
	Owner Owner

	// Anchor is followed while Following or InTransitToSite.
	Anchor ecs.Entity
	// SlotOffset places an assigned follower around its site.
	SlotOffset common.Vec3

	Speed          float64
	FollowDistance float64
	FlightTime     float64
	ArcHeight      float64
	LandingReach   float64

	From    common.Vec3
	To      common.Vec3
	Elapsed float64
}

func (f *Follower) StartFollowing(anchor ecs.Entity) {
	if f == nil {
		return
	}
	f.Anchor = anchor
	f.State = FollowerFollowing
}

// GetThrown launches the follower from one point to another. Ownership
// returns to the world until it lands.
func (f *Follower) GetThrown(from, to common.Vec3) {
	if f == nil {
		return
	}
	f.State = FollowerThrown
	f.Owner = Owner{}
	f.Anchor = 0
	f.From = from
	f.To = to
	f.Elapsed = 0
}

// CanBeCalled reports whether a call-back may claim the follower: idle ones
// and ones working at a site.
func (f *Follower) CanBeCalled() bool {
	if f == nil {
		return false
	}
	switch f.State {
	case FollowerIdle, FollowerWorking, FollowerCarrying:
		return true
	}
	return false
}

var FollowerComponent = NewComponent[Follower]()
