package entity

import (
	"fmt"

	"github.com/milk9111/blobcaller/common"
	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/ecs/system"
	"github.com/milk9111/blobcaller/levels"
	"golang.org/x/image/colornames"
)

const defaultTubeRadius = 1.0

// NewTube creates a tube that consumes followers and payloads.
func NewTube(w *ecs.World, spec levels.TubeSpec) (ecs.Entity, error) {
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultTubeRadius
	}
	pos := common.Vec3{X: spec.X, Z: spec.Z}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("tube %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.TubeComponent, &component.Tube{Name: spec.Name, Radius: radius}); err != nil {
		return 0, fmt.Errorf("tube %s: add tube: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, &component.Appearance{
		Radius: radius,
		Color:  colornames.Slategray,
		Label:  spec.Name,
	}); err != nil {
		return 0, fmt.Errorf("tube %s: add appearance: %w", spec.Name, err)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddCircle(e, ecs.LayerTube, pos, radius)
	}
	return e, nil
}

// NewSite creates an assignment site. Carry sites need their tube in tubes.
func NewSite(w *ecs.World, spec levels.SiteSpec, tubes map[string]ecs.Entity) (ecs.Entity, error) {
	kind := component.SiteKind(spec.Kind)
	if kind == "" {
		kind = component.SiteGeneric
	}
	if kind != component.SiteGeneric && kind != component.SiteCarry {
		return 0, fmt.Errorf("site %s: unknown kind %q", spec.Name, spec.Kind)
	}

	interactor := component.FollowerWorking
	if kind == component.SiteCarry {
		interactor = component.FollowerCarrying
	}
	if spec.InteractorState != "" {
		st, ok := component.ParseFollowerState(spec.InteractorState)
		if !ok {
			return 0, fmt.Errorf("site %s: unknown interactor state %q", spec.Name, spec.InteractorState)
		}
		interactor = st
	}

	site := &component.Site{
		Name:            spec.Name,
		Kind:            kind,
		Required:        spec.Required,
		Radius:          spec.Radius,
		Reach:           spec.Reach,
		InteractorState: interactor,
		PromptVisible:   true,
	}
	if spec.Admission != "" {
		policy, err := system.LoadScriptAdmission(spec.Admission)
		if err != nil {
			return 0, fmt.Errorf("site %s: %w", spec.Name, err)
		}
		site.Admission = policy
	}

	pos := common.Vec3{X: spec.X, Z: spec.Z}
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("site %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.SiteComponent, site); err != nil {
		return 0, fmt.Errorf("site %s: add site: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent, &component.Appearance{
		Radius: spec.Radius,
		Color:  spec.Color.Or(colornames.Sienna),
		Label:  spec.Name,
	}); err != nil {
		return 0, fmt.Errorf("site %s: add appearance: %w", spec.Name, err)
	}

	if kind == component.SiteCarry {
		if spec.Carry == nil {
			return 0, fmt.Errorf("site %s: carry site without carry block", spec.Name)
		}
		tube, ok := tubes[spec.Carry.Tube]
		if !ok {
			return 0, fmt.Errorf("site %s: unknown tube %q", spec.Name, spec.Carry.Tube)
		}
		if err := ecs.Add(w, e, component.CarryComponent, &component.Carry{
			Tube:       tube,
			BaseSpeed:  spec.Carry.Speed,
			LiftOffset: common.Vec3{Y: spec.Carry.Lift},
		}); err != nil {
			return 0, fmt.Errorf("site %s: add carry: %w", spec.Name, err)
		}
		if err := ecs.Add(w, e, component.NavAgentComponent, &component.NavAgent{Destination: pos}); err != nil {
			return 0, fmt.Errorf("site %s: add nav agent: %w", spec.Name, err)
		}
	}

	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddCircle(e, ecs.LayerSite, pos, spec.Reach)
	}
	return e, nil
}
