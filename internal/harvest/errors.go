package harvest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrMissingFactorDefinition is returned in strict mode when a selected
	// level has no percentage in the crop's factor table.
	ErrMissingFactorDefinition = errors.New("missing factor definition")

	// ErrMissingPriceOrCost is returned in strict mode when costs or sales
	// price are needed but not set on the crop.
	ErrMissingPriceOrCost = errors.New("missing price or cost")
)

// maxSuggestDistance bounds how far a typo may be from a known level name.
const maxSuggestDistance = 2

func missingFactorError(crop Crop, category Category, level string) error {
	levels, ok := crop.Factors[category]
	if !ok {
		return fmt.Errorf("%w: crop %q has no %s table", ErrMissingFactorDefinition, crop.Name, category)
	}
	if suggestion := closestLevel(levels, level); suggestion != "" {
		return fmt.Errorf("%w: crop %q has no %s level %q (did you mean %q?)", ErrMissingFactorDefinition, crop.Name, category, level, suggestion)
	}
	return fmt.Errorf("%w: crop %q has no %s level %q", ErrMissingFactorDefinition, crop.Name, category, level)
}

func missingAmountError(crop Crop, field string) error {
	return fmt.Errorf("%w: crop %q has no %s", ErrMissingPriceOrCost, crop.Name, field)
}

func closestLevel(levels Levels, level string) string {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	// Stable ties.
	sort.Strings(names)

	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, name := range names {
		if d := levenshtein.ComputeDistance(level, name); d < bestDistance {
			best = name
			bestDistance = d
		}
	}
	return best
}
