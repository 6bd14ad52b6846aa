// Package harvest computes yield, costs, revenue and profit for crops,
// optionally scaled by sun, wind and soil conditions.
//
// All functions are pure: they read only their arguments and may be called
// concurrently.
package harvest

import (
	"errors"
	"fmt"
	"math"
)

// Category is an environmental factor that can scale a crop's yield.
type Category string

const (
	Sun  Category = "sun"
	Wind Category = "wind"
	Soil Category = "soil"
)

// Categories lists every factor category in the order multipliers are applied.
var Categories = []Category{Sun, Wind, Soil}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Levels maps a level name (e.g. "low", "clay") to a signed percentage adjustment.
type Levels map[string]int

// Factors holds a crop's sensitivity table per category.
type Factors map[Category]Levels

// Crop is the static definition of one plant type.
type Crop struct {
	Name       string
	Yield      float64
	Costs      *float64
	SalesPrice *float64
	Factors    Factors
}

// Batch is a quantity of plants of a single crop grown together.
type Batch struct {
	Crop     Crop
	NumCrops int
}

// Farm is an ordered collection of batches.
type Farm struct {
	Crops []Batch
}

// Environment selects a level per category for a calculation. A nil
// Environment means no conditions apply.
type Environment map[Category]string

// Amount returns a pointer to v, for the optional Costs and SalesPrice fields.
func Amount(v float64) *float64 {
	return &v
}

// Validate checks a crop definition before it is stored or imported.
func (c Crop) Validate() error {
	if c.Name == "" {
		return errors.New("crop name is required")
	}
	if !(c.Yield > 0) || math.IsInf(c.Yield, 0) {
		return fmt.Errorf("crop %q: yield must be a finite number greater than 0", c.Name)
	}
	if !finiteAmount(c.Costs) {
		return fmt.Errorf("crop %q: costs must be a finite number", c.Name)
	}
	if !finiteAmount(c.SalesPrice) {
		return fmt.Errorf("crop %q: sales price must be a finite number", c.Name)
	}
	for category := range c.Factors {
		if !category.Valid() {
			return fmt.Errorf("crop %q: unknown factor category %q", c.Name, category)
		}
	}
	return nil
}

func finiteAmount(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}
