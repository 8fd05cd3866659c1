package scorer

import (
	"fmt"
	"strings"
)

// Preset is a named pair of tier thresholds.
type Preset string

const (
	// PresetStrict requires at least half of the keywords for "good".
	PresetStrict Preset = "strict"
	// PresetStandard gives "good" for any match and "excellent" for all.
	PresetStandard Preset = "standard"
	// PresetLenient gives "excellent" once half of the keywords are present.
	PresetLenient Preset = "lenient"
	// PresetCustom marks a scorer built from explicit thresholds.
	PresetCustom Preset = "custom"
)

var presets = map[Preset]Thresholds{
	PresetStrict:   {Good: 0.5, Excellent: 1.0},
	PresetStandard: {Good: 0, Excellent: 1.0},
	PresetLenient:  {Good: 0, Excellent: 0.5},
}

// Thresholds are minimum match ratios for the upper tiers.
// A ratio of zero is always the lowest tier.
type Thresholds struct {
	Good      float64 `json:"good" mapstructure:"good"`
	Excellent float64 `json:"excellent" mapstructure:"excellent"`
}

// Validate checks that 0 <= Good <= Excellent and 0 < Excellent <= 1.
func (t Thresholds) Validate() error {
	if t.Excellent <= 0 || t.Excellent > 1 {
		return fmt.Errorf("excellent threshold must be in (0, 1], got %v", t.Excellent)
	}
	if t.Good < 0 || t.Good > t.Excellent {
		return fmt.Errorf("good threshold must be in [0, %v], got %v", t.Excellent, t.Good)
	}
	return nil
}

// IsValidPreset checks if a preset name is known.
func IsValidPreset(name string) bool {
	_, ok := presets[Preset(strings.ToLower(strings.TrimSpace(name)))]
	return ok
}

// ThresholdsFor returns the thresholds of a named preset.
func ThresholdsFor(p Preset) (Thresholds, error) {
	th, ok := presets[Preset(strings.ToLower(strings.TrimSpace(string(p))))]
	if !ok {
		return Thresholds{}, fmt.Errorf("unknown grading preset %q", p)
	}
	return th, nil
}
