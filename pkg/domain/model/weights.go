package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
)

// defaultLabelWeight applies to any label without an explicit weight
const defaultLabelWeight = 1

// LabelWeight assigns a significance weight to one label
type LabelWeight struct {
	Label  string `yaml:"label"`
	Weight int    `yaml:"weight"`
}

// Validate validates a single label weight entry
func (w LabelWeight) Validate() error {
	if w.Label == "" {
		return goerr.New("label name is required")
	}
	if w.Weight < 0 {
		return goerr.New("label weight must not be negative",
			goerr.V("label", w.Label),
			goerr.V("weight", w.Weight))
	}
	return nil
}

// WeightsConfig is the impact-ranking weight table loaded from YAML
type WeightsConfig struct {
	Labels []LabelWeight `yaml:"labels"`
}

// Validate validates the weights configuration
func (c *WeightsConfig) Validate() error {
	seen := make(map[string]bool)
	for i, w := range c.Labels {
		if err := w.Validate(); err != nil {
			return goerr.Wrap(err, "invalid label weight at index",
				goerr.V("index", i))
		}
		if seen[w.Label] {
			return goerr.New("duplicate label weight", goerr.V("label", w.Label))
		}
		seen[w.Label] = true
	}
	return nil
}

// WeightOf returns the weight for a label, falling back to the default
func (c *WeightsConfig) WeightOf(name types.LabelName) int {
	if c == nil {
		return defaultLabelWeight
	}
	for _, w := range c.Labels {
		if w.Label == name.String() {
			return w.Weight
		}
	}
	return defaultLabelWeight
}
