package model

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Profile is a named preset of focus modules and weights for a given
// observed colleague. Profiles only pre-fill a record; the scoring and
// render layers never read them directly.
type Profile struct {
	Focus   []string           `koanf:"focus" yaml:"focus"`
	Weights map[string]float64 `koanf:"weights" yaml:"weights"`
}

// Apply copies the profile's focus and weights onto the record. Module
// results are not rebuilt; callers construct the record with the profile's
// focus to begin with.
func (p Profile) Apply(rec *ObservationRecord) {
	rec.ProfileFocus = append([]string(nil), p.Focus...)
	rec.Weights = make(map[string]float64, len(p.Weights))
	for mk, w := range p.Weights {
		rec.Weights[mk] = w
	}
}

// DefaultProfiles returns the built-in presets.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"standard": {
			Focus:   []string{"M1", "M3"},
			Weights: map[string]float64{"M1": 1.0, "M2": 1.0, "M3": 1.2, "M4": 1.0},
		},
		"language-focus": {
			Focus:   []string{"M2"},
			Weights: map[string]float64{"M1": 1.0, "M2": 1.3, "M3": 1.0, "M4": 1.0},
		},
		"climate-focus": {
			Focus:   []string{"M1", "M4"},
			Weights: map[string]float64{"M1": 1.2, "M2": 1.0, "M3": 1.0, "M4": 1.2},
		},
	}
}

// LoadProfiles reads named presets from a YAML file keyed by profile name.
func LoadProfiles(path string) (map[string]Profile, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	profiles := make(map[string]Profile)
	if err := k.UnmarshalWithConf("", &profiles, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return profiles, nil
}
