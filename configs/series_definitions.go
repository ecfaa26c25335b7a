package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"demandrecon/pkg/domain/entities"
)

// seriesDefinitionsFile is the YAML shape binding display series to
// source metrics:
//
//	series:
//	  - name: "Forecast"
//	    metric: "forecast"
type seriesDefinitionsFile struct {
	Series []struct {
		Name   string `yaml:"name"`
		Metric string `yaml:"metric"`
	} `yaml:"series"`
}

// LoadSeriesDefinitions reads an ordered series-definition mapping from a
// YAML file. An empty path returns the canonical seven review series.
func LoadSeriesDefinitions(path string) (entities.SeriesDefinitions, error) {
	if path == "" {
		return entities.DefaultSeriesDefinitions(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series definitions %s: %w", path, err)
	}

	var file seriesDefinitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse series definitions %s: %w", path, err)
	}
	if len(file.Series) == 0 {
		return nil, fmt.Errorf("series definitions %s define no series", path)
	}

	defs := make(entities.SeriesDefinitions, 0, len(file.Series))
	for i, def := range file.Series {
		if def.Name == "" || def.Metric == "" {
			return nil, fmt.Errorf("series definitions %s entry %d: name and metric are required", path, i+1)
		}
		defs = append(defs, entities.SeriesDefinition{
			Name:   entities.SeriesName(def.Name),
			Metric: entities.MetricName(def.Metric),
		})
	}
	return defs, nil
}
