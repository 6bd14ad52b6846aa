package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/groentetuin/internal/harvest"
)

// FarmSummary identifies a stored farm.
type FarmSummary struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// BatchRef references a stored crop by name for CreateFarm.
type BatchRef struct {
	Crop     string
	NumCrops int
}

type batchRow struct {
	NumCrops int `db:"num_crops"`
	cropRow
}

// CreateFarm stores a farm with its batches in the given order and returns its id.
// A batch referencing an unknown crop fails with ErrNotFound.
func (s *Store) CreateFarm(name string, batches []BatchRef) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("farm name is required")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin create farm transaction: %w", err)
	}

	id, err := CreateFarmTx(tx, name, batches)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create farm transaction: %w", err)
	}
	return id, nil
}

// CreateFarmTx is CreateFarm inside a caller-owned transaction.
func CreateFarmTx(tx *sqlx.Tx, name string, batches []BatchRef) (int64, error) {
	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM farms WHERE name = ? LIMIT 1)`, name); err != nil {
		return 0, fmt.Errorf("check farm existence: %w", err)
	}
	if exists {
		return 0, fmt.Errorf("farm %q: %w", name, ErrDuplicate)
	}

	result, err := tx.Exec(`INSERT INTO farms (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert farm: %w", err)
	}
	farmID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read farm id: %w", err)
	}

	for i, batch := range batches {
		if batch.NumCrops < 0 {
			return 0, fmt.Errorf("batch %d: numCrops must be 0 or greater", i)
		}

		var cropID int64
		err := tx.Get(&cropID, `SELECT id FROM crops WHERE name = ?`, batch.Crop)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("crop %q: %w", batch.Crop, ErrNotFound)
		}
		if err != nil {
			return 0, fmt.Errorf("query batch crop: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO farm_batches (farm_id, crop_id, num_crops, position)
			VALUES (?, ?, ?, ?)
		`, farmID, cropID, batch.NumCrops, i); err != nil {
			return 0, fmt.Errorf("insert farm batch: %w", err)
		}
	}

	return farmID, nil
}

// ListFarms returns every stored farm, newest first.
func (s *Store) ListFarms() ([]FarmSummary, error) {
	farms := make([]FarmSummary, 0)
	if err := s.db.Select(&farms, `
		SELECT id, name, created_at
		FROM farms
		ORDER BY id DESC
	`); err != nil {
		return nil, fmt.Errorf("query farms: %w", err)
	}
	return farms, nil
}

// GetFarm returns the farm with id and its batches in insertion order.
func (s *Store) GetFarm(id int64) (FarmSummary, harvest.Farm, error) {
	var summary FarmSummary
	err := s.db.Get(&summary, `SELECT id, name, created_at FROM farms WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return FarmSummary{}, harvest.Farm{}, fmt.Errorf("farm %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return FarmSummary{}, harvest.Farm{}, fmt.Errorf("query farm: %w", err)
	}

	var rows []batchRow
	if err := s.db.Select(&rows, `
		SELECT
			b.num_crops,
			c.id,
			c.name,
			c.yield_kg,
			c.costs,
			c.sales_price
		FROM farm_batches b
		JOIN crops c ON c.id = b.crop_id
		WHERE b.farm_id = ?
		ORDER BY b.position, b.id
	`, id); err != nil {
		return FarmSummary{}, harvest.Farm{}, fmt.Errorf("query farm batches: %w", err)
	}

	farm := harvest.Farm{Crops: make([]harvest.Batch, 0, len(rows))}
	if len(rows) == 0 {
		return summary, farm, nil
	}

	factors, err := s.factorsFor(rows)
	if err != nil {
		return FarmSummary{}, harvest.Farm{}, err
	}
	for _, row := range rows {
		farm.Crops = append(farm.Crops, harvest.Batch{
			Crop:     row.toCrop(factors[row.ID]),
			NumCrops: row.NumCrops,
		})
	}
	return summary, farm, nil
}

func (s *Store) factorsFor(rows []batchRow) (map[int64][]factorRow, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	query, args, err := sqlx.In(`
		SELECT crop_id, category, level, percent
		FROM crop_factors
		WHERE crop_id IN (?)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("build crop factors query: %w", err)
	}

	var factors []factorRow
	if err := s.db.Select(&factors, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query crop factors: %w", err)
	}
	return groupFactors(factors), nil
}
