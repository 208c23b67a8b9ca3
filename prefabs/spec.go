package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a prefab without schema validation.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadValidatedSpec checks a prefab against an embedded JSON schema before
// decoding it.
func LoadValidatedSpec[T any](filename, schema string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeValidated[T](filename, schema, data)
}

// DecodeValidated validates raw YAML against schema and decodes it into T.
func DecodeValidated[T any](name, schema string, data []byte) (T, error) {
	var zero T
	if err := Validate(schema, data); err != nil {
		return zero, fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

type ActorSpec struct {
	Name                 string     `yaml:"name"`
	Speed                float64    `yaml:"speed"`
	Gravity              float64    `yaml:"gravity"`
	MinThrowDistance     float64    `yaml:"min_throw_distance"`
	MaxThrowDistance     float64    `yaml:"max_throw_distance"`
	RayLength            float64    `yaml:"ray_length"`
	TimeBetweenThrows    float64    `yaml:"time_between_throws"`
	MaxCallRange         float64    `yaml:"max_call_range"`
	RangeGrowthPerSecond float64    `yaml:"range_growth_per_second"`
	MaxFollowers         int        `yaml:"max_followers"`
	ThrowRangePolicy     string     `yaml:"throw_range_policy"`
	CallEligibility      string     `yaml:"call_eligibility"`
	IndicatorScale       string     `yaml:"indicator_scale"`
	Radius               float64    `yaml:"radius"`
	Color                *YAMLColor `yaml:"color"`
}

func LoadActorSpec() (*ActorSpec, error) {
	spec, err := LoadValidatedSpec[ActorSpec]("actor.yaml", "actor.schema.json")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type FollowerSpec struct {
	Name           string     `yaml:"name"`
	Speed          float64    `yaml:"speed"`
	FollowDistance float64    `yaml:"follow_distance"`
	FlightTime     float64    `yaml:"flight_time"`
	ArcHeight      float64    `yaml:"arc_height"`
	LandingReach   float64    `yaml:"landing_reach"`
	Radius         float64    `yaml:"radius"`
	Color          *YAMLColor `yaml:"color"`
}

func LoadFollowerSpec() (*FollowerSpec, error) {
	spec, err := LoadValidatedSpec[FollowerSpec]("follower.yaml", "follower.schema.json")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}
	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return err
		}
	}

	c.Color = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when none was set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
