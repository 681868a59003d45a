// Package script runs scripted editing sessions: factory steps and picks
// driven through synthetic pointer input.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// Vec is a point written as [x, y, z]
type Vec [3]float64

// Vector3 converts v
func (v Vec) Vector3() geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

// Pixel is a viewport position written as [x, y]
type Pixel [2]float64

// Point2 converts p
func (p Pixel) Point2() geometry.Point2 {
	return geometry.Point2{X: p[0], Y: p[1]}
}

// Script is a named list of steps
type Script struct {
	Name     string  `yaml:"name"`
	Viewport *Screen `yaml:"viewport"`
	Steps    []Step  `yaml:"steps"`

	// Dir resolves relative import paths; Load sets it to the script's directory
	Dir string `yaml:"-"`
}

// Screen is the pixel size of the scripted viewports
type Screen struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is one action. Exactly one action field must be set. As names the
// resulting object for later steps.
type Step struct {
	As string `yaml:"as"`
	// Preview shows the result with Update before committing it
	Preview bool `yaml:"preview"`

	Line     *LineStep     `yaml:"line"`
	Box      *BoxStep      `yaml:"box"`
	Sphere   *SphereStep   `yaml:"sphere"`
	Mirror   *MirrorStep   `yaml:"mirror"`
	Symmetry *SymmetryStep `yaml:"symmetry"`
	Pick     *PickStep     `yaml:"pick"`
	Remove   string        `yaml:"remove"`
	// Import adds the solid stored in an STL file
	Import string `yaml:"import"`
}

type LineStep struct {
	P1 Vec `yaml:"p1"`
	P2 Vec `yaml:"p2"`
}

type BoxStep struct {
	P1 Vec `yaml:"p1"`
	P2 Vec `yaml:"p2"`
	P3 Vec `yaml:"p3"`
	P4 Vec `yaml:"p4"`
}

type SphereStep struct {
	Center Vec     `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

type MirrorStep struct {
	Item     string `yaml:"item"`
	Origin   Vec    `yaml:"origin"`
	Normal   Vec    `yaml:"normal"`
	Clipping bool   `yaml:"clipping"`
}

// SymmetryStep cuts along the plane whose normal is Z rotated onto Normal
type SymmetryStep struct {
	Item   string `yaml:"item"`
	Origin Vec    `yaml:"origin"`
	Normal Vec    `yaml:"normal"`
}

// PickStep runs an object picker and clicks At, or drags from At to To
type PickStep struct {
	Viewport int      `yaml:"viewport"`
	At       Pixel    `yaml:"at"`
	To       *Pixel   `yaml:"to"`
	Modes    []string `yaml:"modes"`
}

// Action names the step kind
func (s Step) Action() string {
	var actions []string
	if s.Line != nil {
		actions = append(actions, "line")
	}
	if s.Box != nil {
		actions = append(actions, "box")
	}
	if s.Sphere != nil {
		actions = append(actions, "sphere")
	}
	if s.Mirror != nil {
		actions = append(actions, "mirror")
	}
	if s.Symmetry != nil {
		actions = append(actions, "symmetry")
	}
	if s.Pick != nil {
		actions = append(actions, "pick")
	}
	if s.Remove != "" {
		actions = append(actions, "remove")
	}
	if s.Import != "" {
		actions = append(actions, "import")
	}
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

// Parse decodes and checks a script
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range s.Steps {
		if step.Action() == "" {
			return nil, fmt.Errorf("step %d: exactly one action is required", i+1)
		}
	}
	return &s, nil
}

// Load reads a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}
