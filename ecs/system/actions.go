package system

import (
	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs/component"
)

// callBackAction grows a call radius each tick and claims eligible followers
// inside it. It never completes on its own.
type callBackAction struct {
	callRange float64
}

// throwAction throws the roster front-first, waiting between throws.
type throwAction struct {
	wait float64
}

func (*callBackAction) Name() string { return "call_back" }

func (a *callBackAction) Resume(ctx *component.ActionContext, dt float64) component.ActionStatus {
	if ctx == nil || ctx.Actor == nil {
		return component.ActionComplete
	}
	t := ctx.Actor.Tuning
	a.callRange = common.Clamp(a.callRange+t.RangeGrowthPerSecond*dt, 0, t.MaxCallRange)

	if ctx.NearbyFollowers != nil {
		for _, f := range ctx.NearbyFollowers(a.callRange) {
			if !ctx.Actor.HasRoom() {
				break
			}
			if ctx.Eligible != nil && !ctx.Eligible(f) {
				continue
			}
			if ctx.Claim != nil {
				ctx.Claim(f)
			}
		}
	}

	size := a.callRange
	if t.IndicatorScale != component.IndicatorRadius {
		size *= 2
	}
	ctx.CallIndicator.SetScale(common.Vec3{X: size, Y: size, Z: size})
	if ctx.Position != nil {
		ctx.CallIndicator.SetPosition(ctx.Position())
	}
	return component.ActionContinue
}

func (*callBackAction) Cleanup(ctx *component.ActionContext) {
	if ctx == nil {
		return
	}
	ctx.CallIndicator.SetActive(false)
}

func (*throwAction) Name() string { return "throw" }

func (a *throwAction) Resume(ctx *component.ActionContext, dt float64) component.ActionStatus {
	if ctx == nil || ctx.Actor == nil {
		return component.ActionComplete
	}
	if a.wait > 0 {
		a.wait -= dt
		if a.wait > 0 {
			return component.ActionContinue
		}
	}
	if len(ctx.Actor.Followers) == 0 {
		return component.ActionComplete
	}
	// never throw blind; retry next tick
	if ctx.Target == nil {
		return component.ActionContinue
	}
	target, ok := ctx.Target()
	if !ok {
		return component.ActionContinue
	}

	f, _ := ctx.Actor.PopFollower()
	if ctx.Throw != nil && ctx.Position != nil {
		ctx.Throw(f, ctx.Position(), target)
	}
	a.wait = ctx.Actor.Tuning.TimeBetweenThrows
	return component.ActionContinue
}

func (*throwAction) Cleanup(*component.ActionContext) {}
