package system

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/blobcaller/ecs/component"
	"github.com/milk9111/blobcaller/prefabs"
)

// admissionTimeout bounds one script run; admission runs on the tick.
const admissionTimeout = 20 * time.Millisecond

// ScriptAdmission evaluates a tengo script to decide whether a site admits a
// follower. The script sees `assigned`, `required`, `kind`, `site` and
// `state`, and sets `allow`.
type ScriptAdmission struct {
	path     string
	compiled *tengo.Compiled
}

// LoadScriptAdmission compiles an admission script from prefabs/scripts.
func LoadScriptAdmission(path string) (*ScriptAdmission, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("system: load admission script %s: %w", path, err)
	}
	return NewScriptAdmission(path, src)
}

// NewScriptAdmission compiles admission source.
func NewScriptAdmission(name string, src []byte) (*ScriptAdmission, error) {
	script := tengo.NewScript(src)
	_ = script.Add("assigned", 0)
	_ = script.Add("required", 0)
	_ = script.Add("kind", "")
	_ = script.Add("site", "")
	_ = script.Add("state", "")
	_ = script.Add("allow", true)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile admission script %s: %w", name, err)
	}
	return &ScriptAdmission{path: name, compiled: compiled}, nil
}

// Admit runs the script. Script errors, panics and timeouts deny admission.
func (a *ScriptAdmission) Admit(site *component.Site, follower *component.Follower) bool {
	if a == nil || a.compiled == nil || site == nil || follower == nil {
		return false
	}
	vars := map[string]any{
		"assigned": len(site.Assigned),
		"required": site.Required,
		"kind":     string(site.Kind),
		"site":     site.Name,
		"state":    follower.State.String(),
		"allow":    true,
	}
	for name, v := range vars {
		if err := a.compiled.Set(name, v); err != nil {
			fmt.Printf("system: admission %s set %s: %v\n", a.path, name, err)
			return false
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), admissionTimeout)
	defer cancel()
	if err := a.compiled.RunContext(ctx); err != nil {
		fmt.Printf("system: admission %s run: %v\n", a.path, err)
		return false
	}
	return a.compiled.Get("allow").Bool()
}

// Path returns the script name the policy was compiled from.
func (a *ScriptAdmission) Path() string {
	if a == nil {
		return ""
	}
	return a.path
}
