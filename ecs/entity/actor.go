package entity

import (
	"fmt"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/prefabs"
	"golang.org/x/image/colornames"
)

// ActorTuning converts an actor prefab into controller tuning, filling the
// policy defaults.
func ActorTuning(spec *prefabs.ActorSpec) component.ActorTuning {
	if spec == nil {
		return component.ActorTuning{}
	}
	t := component.ActorTuning{
		Speed:                spec.Speed,
		Gravity:              spec.Gravity,
		MinThrowDistance:     spec.MinThrowDistance,
		MaxThrowDistance:     spec.MaxThrowDistance,
		RayLength:            spec.RayLength,
		TimeBetweenThrows:    spec.TimeBetweenThrows,
		MaxCallRange:         spec.MaxCallRange,
		RangeGrowthPerSecond: spec.RangeGrowthPerSecond,
		MaxFollowers:         spec.MaxFollowers,
		ThrowRange:           component.ThrowRangePolicy(spec.ThrowRangePolicy),
		CallEligibility:      component.CallEligibility(spec.CallEligibility),
		IndicatorScale:       component.IndicatorScale(spec.IndicatorScale),
	}
	if t.ThrowRange == "" {
		t.ThrowRange = component.ThrowRangeClamp
	}
	if t.CallEligibility == "" {
		t.CallEligibility = component.CallCallable
	}
	if t.IndicatorScale == "" {
		t.IndicatorScale = component.IndicatorDiameter
	}
	return t
}

// NewActor creates the player actor with its input and both indicators.
func NewActor(w *ecs.World, spec *prefabs.ActorSpec, pos common.Vec3) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("actor: nil spec")
	}

	targetIndicator := w.CreateEntity()
	if err := ecs.Add(w, targetIndicator, component.IndicatorComponent, &component.Indicator{Scale: common.Vec3{X: 1, Y: 1, Z: 1}}); err != nil {
		return 0, fmt.Errorf("actor: add target indicator: %w", err)
	}
	callIndicator := w.CreateEntity()
	if err := ecs.Add(w, callIndicator, component.IndicatorComponent, &component.Indicator{}); err != nil {
		return 0, fmt.Errorf("actor: add call indicator: %w", err)
	}

	actor := w.CreateEntity()
	if err := ecs.Add(w, actor, component.TransformComponent, &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("actor: add transform: %w", err)
	}
	if err := ecs.Add(w, actor, component.InputComponent, &component.Input{}); err != nil {
		return 0, fmt.Errorf("actor: add input: %w", err)
	}
	if err := ecs.Add(w, actor, component.ActorComponent, &component.Actor{
		Tuning:          ActorTuning(spec),
		TargetIndicator: targetIndicator,
		CallIndicator:   callIndicator,
	}); err != nil {
		return 0, fmt.Errorf("actor: add actor: %w", err)
	}
	if err := ecs.Add(w, actor, component.AppearanceComponent, &component.Appearance{
		Radius: spec.Radius,
		Color:  spec.Color.Or(colornames.Royalblue),
		Label:  spec.Name,
	}); err != nil {
		return 0, fmt.Errorf("actor: add appearance: %w", err)
	}

	return actor, nil
}
