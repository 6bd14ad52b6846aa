package catalog

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/groentetuin/internal/harvest"
)

type yamlCatalog struct {
	Crops []yamlCrop `yaml:"crops"`
}

type yamlCrop struct {
	Name       string                    `yaml:"name"`
	Yield      float64                   `yaml:"yield"`
	Costs      *float64                  `yaml:"costs"`
	SalesPrice *float64                  `yaml:"salesPrice"`
	Factors    map[string]map[string]int `yaml:"factors"`
}

func loadYAML(path string) ([]harvest.Crop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	// Either a top-level list of crops or a mapping with a crops key.
	var doc yamlCatalog
	switch {
	case len(root.Content) == 0:
	case root.Content[0].Kind == yaml.SequenceNode:
		err = root.Content[0].Decode(&doc.Crops)
	default:
		err = root.Content[0].Decode(&doc)
	}
	if err != nil {
		return nil, err
	}

	crops := make([]harvest.Crop, 0, len(doc.Crops))
	for _, c := range doc.Crops {
		crop := harvest.Crop{
			Name:       c.Name,
			Yield:      c.Yield,
			Costs:      c.Costs,
			SalesPrice: c.SalesPrice,
		}
		for category, levels := range c.Factors {
			if crop.Factors == nil {
				crop.Factors = harvest.Factors{}
			}
			crop.Factors[harvest.Category(category)] = harvest.Levels(levels)
		}
		crops = append(crops, crop)
	}
	return crops, nil
}
