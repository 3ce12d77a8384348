package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// LoadWeightsFromFile loads the impact label weights from a YAML file.
// An empty path returns nil, which means every label weighs the default.
func LoadWeightsFromFile(path string) (*model.WeightsConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "weights file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read weights file",
			goerr.V("path", path))
	}

	var config model.WeightsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse weights YAML",
			goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid weights configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
