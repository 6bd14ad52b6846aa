package seed

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/groentetuin/internal/harvest"
	"github.com/Simplici0/groentetuin/internal/store"
)

const defaultFarmName = "moestuin"

// Stats contains seed operation counters. Existing rows are never
// overwritten, so Updates stays zero.
type Stats struct {
	Inserts int
	Updates int
}

// DefaultCrops returns the crops seeded into an empty database.
func DefaultCrops() []harvest.Crop {
	return []harvest.Crop{
		{
			Name:       "corn",
			Yield:      3,
			Costs:      harvest.Amount(1),
			SalesPrice: harvest.Amount(2),
			Factors: harvest.Factors{
				harvest.Sun:  harvest.Levels{"low": -50, "medium": 0, "high": 50},
				harvest.Wind: harvest.Levels{"low": 0, "medium": 0, "high": 0},
				harvest.Soil: harvest.Levels{"sandy": -20, "clay": 0, "silt": 40},
			},
		},
		{
			Name:       "potato",
			Yield:      4,
			Costs:      harvest.Amount(3),
			SalesPrice: harvest.Amount(5),
			Factors: harvest.Factors{
				harvest.Sun:  harvest.Levels{"low": -50, "medium": 0, "high": 50},
				harvest.Wind: harvest.Levels{"low": 10, "medium": -20, "high": -30},
				harvest.Soil: harvest.Levels{"sandy": 0, "clay": 0, "silt": 40},
			},
		},
		{
			Name:       "apple",
			Yield:      5,
			Costs:      harvest.Amount(2),
			SalesPrice: harvest.Amount(3),
			Factors: harvest.Factors{
				harvest.Sun:  harvest.Levels{"low": -10, "medium": 0, "high": 40},
				harvest.Wind: harvest.Levels{"low": 10, "medium": -20, "high": -30},
				harvest.Soil: harvest.Levels{"sandy": 0, "clay": 0, "silt": 40},
			},
		},
		{
			Name:  "pumpkin",
			Yield: 4,
		},
	}
}

var defaultFarm = []store.BatchRef{
	{Crop: "corn", NumCrops: 5},
	{Crop: "potato", NumCrops: 2},
	{Crop: "apple", NumCrops: 10},
}

// Run executes the startup seed in an idempotent way.
func Run(db *sqlx.DB) (Stats, error) {
	tx, err := db.Beginx()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, crop := range DefaultCrops() {
		if err := ensureCrop(tx, crop, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	if err := ensureFarm(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureCrop(tx *sqlx.Tx, crop harvest.Crop, stats *Stats) error {
	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM crops WHERE name = ? LIMIT 1)`, crop.Name); err != nil {
		return fmt.Errorf("check crop %q existence: %w", crop.Name, err)
	}
	if exists {
		return nil
	}

	if _, err := store.UpsertCropTx(tx, crop); err != nil {
		return fmt.Errorf("insert crop %q: %w", crop.Name, err)
	}
	stats.Inserts++
	return nil
}

func ensureFarm(tx *sqlx.Tx, stats *Stats) error {
	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM farms WHERE name = ? LIMIT 1)`, defaultFarmName); err != nil {
		return fmt.Errorf("check default farm existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := store.CreateFarmTx(tx, defaultFarmName, defaultFarm); err != nil {
		return fmt.Errorf("insert default farm: %w", err)
	}
	stats.Inserts++
	return nil
}
