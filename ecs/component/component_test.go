package component

import (
	"math"
	"testing"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
)

func TestActorRoster(t *testing.T) {
	a := &Actor{Tuning: ActorTuning{MaxFollowers: 2}}

	if !a.AddFollower(1) || !a.AddFollower(2) {
		t.Fatalf("expected two adds to succeed")
	}
	if a.AddFollower(3) {
		t.Fatalf("add beyond MaxFollowers must fail")
	}
	if a.HasRoom() {
		t.Fatalf("full roster reports room")
	}
	if !a.RemoveFollower(1) || a.AddFollower(2) {
		t.Fatalf("remove then duplicate add misbehaved: %v", a.Followers)
	}
	a.AddFollower(3)

	var order []ecs.Entity
	for {
		e, ok := a.PopFollower()
		if !ok {
			break
		}
		order = append(order, e)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 3 {
		t.Fatalf("expected FIFO [2 3], got %v", order)
	}
	if a.CurrentFollowerAmount() != 0 {
		t.Fatalf("expected empty roster")
	}

	var nilActor *Actor
	if nilActor.HasRoom() || nilActor.CurrentFollowerAmount() != 0 || nilActor.MaxFollowers() != 0 {
		t.Fatalf("nil actor should be empty and full")
	}
}

func TestPlacementOffsetCircle(t *testing.T) {
	s := &Site{Required: 4, Radius: 2}
	want := []common.Vec3{
		{X: 2},
		{Z: 2},
		{X: -2},
		{Z: -2},
	}
	for i, w := range want {
		got := s.PlacementOffset()
		if common.Distance(got, w) > 1e-9 {
			t.Fatalf("slot %d: expected %+v, got %+v", i, w, got)
		}
		s.Assigned = append(s.Assigned, ecs.Entity(i+1))
	}

	// the fifth slot wraps back to angle zero
	if got := s.PlacementOffset(); math.Abs(got.X-2) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Fatalf("expected wrap to (2,0), got %+v", got)
	}

	if got := (&Site{Radius: 2}).PlacementOffset(); got != (common.Vec3{}) {
		t.Fatalf("zero quota should place at center, got %+v", got)
	}
}

func TestFollowerStates(t *testing.T) {
	cases := []struct {
		state    FollowerState
		name     string
		callable bool
	}{
		{FollowerIdle, "idle", true},
		{FollowerFollowing, "following", false},
		{FollowerThrown, "thrown", false},
		{FollowerInTransitToSite, "in_transit", false},
		{FollowerWorking, "working", true},
		{FollowerCarrying, "carrying", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.state.String() != c.name {
				t.Fatalf("expected %q, got %q", c.name, c.state.String())
			}
			parsed, ok := ParseFollowerState(c.name)
			if !ok || parsed != c.state {
				t.Fatalf("parse %q: got %v ok=%v", c.name, parsed, ok)
			}
			f := &Follower{State: c.state}
			if f.CanBeCalled() != c.callable {
				t.Fatalf("CanBeCalled: expected %v", c.callable)
			}
		})
	}
	if _, ok := ParseFollowerState("sleeping"); ok {
		t.Fatalf("unknown state should not parse")
	}
}

func TestGetThrownClearsOwnership(t *testing.T) {
	f := &Follower{State: FollowerFollowing, Owner: Owner{Kind: OwnerActor, Entity: 7}, Anchor: 7, Elapsed: 3}
	f.GetThrown(common.Vec3{X: 1}, common.Vec3{X: 9})
	if f.State != FollowerThrown || f.Owner != (Owner{}) || f.Anchor != 0 || f.Elapsed != 0 {
		t.Fatalf("unexpected follower after throw: %+v", f)
	}
	if f.From.X != 1 || f.To.X != 9 {
		t.Fatalf("throw endpoints not recorded: %+v", f)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := &Camera{Position: common.Vec3{X: 5, Y: 30, Z: -2}, Zoom: 20, ScreenWidth: 800, ScreenHeight: 600}
	origin, dir := cam.ScreenPointToRay(common.Vec2{X: 500, Y: 200})
	if dir != (common.Vec3{Y: -1}) {
		t.Fatalf("expected straight-down ray, got %+v", dir)
	}
	back := cam.WorldToScreen(common.Vec3{X: origin.X, Z: origin.Z})
	if math.Abs(back.X-500) > 1e-9 || math.Abs(back.Y-200) > 1e-9 {
		t.Fatalf("expected (500,200), got %+v", back)
	}
	center, _ := cam.ScreenPointToRay(common.Vec2{X: 400, Y: 300})
	if center.X != 5 || center.Z != -2 {
		t.Fatalf("screen center should sit under the camera, got %+v", center)
	}
}
