package similarity

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// RelevanceFloor is the minimum score at which a pair is worth keeping.
// Edges at or below it are never persisted nor surfaced.
const RelevanceFloor = 0.1

const weightSumTolerance = 1e-9

// UserWeights holds the per-factor weights for user pair scoring. A valid
// set sums to exactly 1.0 so the combined score stays in [0,1].
type UserWeights struct {
	Skill      float64 `yaml:"skill"`
	Project    float64 `yaml:"project"`
	Location   float64 `yaml:"location"`
	Experience float64 `yaml:"experience"`
	TechStack  float64 `yaml:"tech_stack"`
}

func DefaultUserWeights() UserWeights {
	return UserWeights{
		Skill:      0.4,
		Project:    0.2,
		Location:   0.1,
		Experience: 0.1,
		TechStack:  0.2,
	}
}

func (w UserWeights) Validate() error {
	return validateWeights("user", []float64{w.Skill, w.Project, w.Location, w.Experience, w.TechStack})
}

type ProjectWeights struct {
	Tag         float64 `yaml:"tag"`
	OwnerSkill  float64 `yaml:"owner_skill"`
	Description float64 `yaml:"description"`
}

func DefaultProjectWeights() ProjectWeights {
	return ProjectWeights{
		Tag:         0.5,
		OwnerSkill:  0.3,
		Description: 0.2,
	}
}

func (w ProjectWeights) Validate() error {
	return validateWeights("project", []float64{w.Tag, w.OwnerSkill, w.Description})
}

func validateWeights(kind string, weights []float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s similarity weight %v out of range [0,1]", kind, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%s similarity weights sum to %v, want 1.0", kind, sum)
	}
	return nil
}

// WeightsFile is the optional YAML override for the built-in weights.
type WeightsFile struct {
	Users    UserWeights    `yaml:"users"`
	Projects ProjectWeights `yaml:"projects"`
}

// LoadWeightsFile reads a weights override from path. Both sections are
// required and validated; a broken file fails startup rather than silently
// skewing every score.
func LoadWeightsFile(path string) (*WeightsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights file: %w", err)
	}
	var wf WeightsFile
	if err := yaml.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("parse weights file: %w", err)
	}
	if err := wf.Users.Validate(); err != nil {
		return nil, err
	}
	if err := wf.Projects.Validate(); err != nil {
		return nil, err
	}
	return &wf, nil
}
