package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/blobcaller/prefabs"
)

//go:embed *.yaml
var LevelsFS embed.FS

const levelSchema = "level.schema.json"

type Level struct {
	Name      string       `yaml:"name"`
	Camera    CameraSpec   `yaml:"camera"`
	Actor     Point        `yaml:"actor"`
	Ground    []Region     `yaml:"ground"`
	Followers []SpawnGroup `yaml:"followers"`
	Tubes     []TubeSpec   `yaml:"tubes"`
	Sites     []SiteSpec   `yaml:"sites"`

	Destructables []DestructableSpec `yaml:"destructables"`
	Turrets       []TurretSpec       `yaml:"turrets"`
}

type CameraSpec struct {
	Height float64 `yaml:"height"`
	Zoom   float64 `yaml:"zoom"`
}

type Point struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

type Region struct {
	Name string  `yaml:"name"`
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// SpawnGroup places Count followers on a ring of Spread around a point.
type SpawnGroup struct {
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

type TubeSpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

type SiteSpec struct {
	Name            string             `yaml:"name"`
	Kind            string             `yaml:"kind"`
	X               float64            `yaml:"x"`
	Z               float64            `yaml:"z"`
	Required        int                `yaml:"required"`
	Radius          float64            `yaml:"radius"`
	Reach           float64            `yaml:"reach"`
	InteractorState string             `yaml:"interactor_state"`
	Admission       string             `yaml:"admission"`
	Color           *prefabs.YAMLColor `yaml:"color"`
	Carry           *CarrySpec         `yaml:"carry"`
}

type CarrySpec struct {
	Tube  string  `yaml:"tube"`
	Speed float64 `yaml:"speed"`
	Lift  float64 `yaml:"lift"`
}

type DestructableSpec struct {
	Name   string             `yaml:"name"`
	X      float64            `yaml:"x"`
	Z      float64            `yaml:"z"`
	Radius float64            `yaml:"radius"`
	Health float64            `yaml:"health"`
	Color  *prefabs.YAMLColor `yaml:"color"`
}

// TurretSpec is an enemy emplacement that fires along (AimX, AimZ).
type TurretSpec struct {
	Name     string     `yaml:"name"`
	X        float64    `yaml:"x"`
	Z        float64    `yaml:"z"`
	Radius   float64    `yaml:"radius"`
	AimX     float64    `yaml:"aim_x"`
	AimZ     float64    `yaml:"aim_z"`
	Interval float64    `yaml:"interval"`
	Bullet   BulletSpec `yaml:"bullet"`
}

type BulletSpec struct {
	Speed    float64 `yaml:"speed"`
	Damage   float64 `yaml:"damage"`
	Radius   float64 `yaml:"radius"`
	Lifetime float64 `yaml:"lifetime"`
}

// Load reads a level by base name (".yaml" optional), preferring levels/ on
// disk over the embedded copy.
func Load(name string) (*Level, error) {
	clean := filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(clean, ".yaml") {
		clean += ".yaml"
	}
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}
	lvl, err := prefabs.DecodeValidated[Level](clean, levelSchema, data)
	if err != nil {
		return nil, err
	}
	return &lvl, nil
}
