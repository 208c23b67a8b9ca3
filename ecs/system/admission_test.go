package system

import (
	"testing"

	"github.com/milk9111/blobcaller/ecs"
	"github.com/milk9111/blobcaller/ecs/component"
)

func TestScriptAdmission(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		site     *component.Site
		follower *component.Follower
		want     bool
	}{
		{
			name:     "crowd_cap_room",
			src:      `allow = assigned < required * 2`,
			site:     &component.Site{Required: 2, Assigned: []ecs.Entity{1, 2, 3}},
			follower: &component.Follower{},
			want:     true,
		},
		{
			name:     "crowd_cap_full",
			src:      `allow = assigned < required * 2`,
			site:     &component.Site{Required: 2, Assigned: []ecs.Entity{1, 2, 3, 4}},
			follower: &component.Follower{},
			want:     false,
		},
		{
			name:     "kind_and_name",
			src:      `allow = kind == "carry" && site == "crate"`,
			site:     &component.Site{Name: "crate", Kind: component.SiteCarry},
			follower: &component.Follower{},
			want:     true,
		},
		{
			name:     "state_filter",
			src:      `allow = state == "thrown"`,
			site:     &component.Site{},
			follower: &component.Follower{State: component.FollowerIdle},
			want:     false,
		},
		{
			name:     "untouched_allow",
			src:      `x := 1`,
			site:     &component.Site{},
			follower: &component.Follower{},
			want:     true,
		},
		{
			name:     "runtime_error_denies",
			src:      `allow = (1 / (required - required)) > 0`,
			site:     &component.Site{Required: 2},
			follower: &component.Follower{},
			want:     false,
		},
		{
			name:     "not_callable_denies",
			src:      "f := required\nallow = f()",
			site:     &component.Site{Required: 2},
			follower: &component.Follower{},
			want:     false,
		},
		{
			name:     "stdlib_import",
			src:      "text := import(\"text\")\nallow = text.has_prefix(site, \"cr\")",
			site:     &component.Site{Name: "crate"},
			follower: &component.Follower{},
			want:     true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			policy, err := NewScriptAdmission(c.name, []byte(c.src))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := policy.Admit(c.site, c.follower); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestScriptAdmissionCompileError(t *testing.T) {
	if _, err := NewScriptAdmission("broken", []byte(`allow = (`)); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestScriptAdmissionReusable(t *testing.T) {
	policy, err := NewScriptAdmission("cap", []byte(`allow = assigned < required`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	site := &component.Site{Required: 2}
	f := &component.Follower{}
	for i := 0; i < 4; i++ {
		want := i < 2
		if got := policy.Admit(site, f); got != want {
			t.Fatalf("round %d: expected %v, got %v", i, want, got)
		}
		site.Assigned = append(site.Assigned, ecs.Entity(i+1))
	}
	if policy.Admit(nil, f) {
		t.Fatalf("nil site must be denied")
	}
}

func TestLoadScriptAdmission(t *testing.T) {
	policy, err := LoadScriptAdmission("crowd_cap.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if policy.Path() != "crowd_cap.tengo" {
		t.Fatalf("unexpected path %q", policy.Path())
	}
	if !policy.Admit(&component.Site{Required: 1}, &component.Follower{}) {
		t.Fatalf("empty site should admit")
	}
	if _, err := LoadScriptAdmission("missing.tengo"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
