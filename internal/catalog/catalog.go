// Package catalog imports crop definitions from YAML, CSV or XLSX files.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Simplici0/groentetuin/internal/harvest"
)

// LoadFile reads crops from path, choosing the format from its extension.
func LoadFile(path string) ([]harvest.Crop, error) {
	var (
		crops []harvest.Crop
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		crops, err = loadYAML(path)
	case ".csv":
		crops, err = loadCSV(path)
	case ".xlsx":
		crops, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}

	for _, crop := range crops {
		if err := crop.Validate(); err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
	}
	return crops, nil
}

// Upserter stores a crop definition, reporting whether it was newly created.
type Upserter interface {
	UpsertCrop(crop harvest.Crop) (bool, error)
}

// Stats contains import counters.
type Stats struct {
	Inserts int
	Updates int
}

// Import stores every crop through dst.
func Import(dst Upserter, crops []harvest.Crop) (Stats, error) {
	stats := Stats{}
	for _, crop := range crops {
		created, err := dst.UpsertCrop(crop)
		if err != nil {
			return stats, fmt.Errorf("import crop %q: %w", crop.Name, err)
		}
		if created {
			stats.Inserts++
		} else {
			stats.Updates++
		}
	}
	return stats, nil
}
