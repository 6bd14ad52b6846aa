// Package store persists crop definitions and farms in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/groentetuin/internal/harvest"
)

var (
	// ErrNotFound is returned when a crop or farm does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a farm name is already taken.
	ErrDuplicate = errors.New("already exists")
)

// Store reads and writes crops and farms.
type Store struct {
	db *sqlx.DB
}

// New returns a Store backed by db. The schema must already be migrated.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type cropRow struct {
	ID         int64           `db:"id"`
	Name       string          `db:"name"`
	YieldKg    float64         `db:"yield_kg"`
	Costs      sql.NullFloat64 `db:"costs"`
	SalesPrice sql.NullFloat64 `db:"sales_price"`
}

type factorRow struct {
	CropID   int64  `db:"crop_id"`
	Category string `db:"category"`
	Level    string `db:"level"`
	Percent  int    `db:"percent"`
}

func (r cropRow) toCrop(factors []factorRow) harvest.Crop {
	crop := harvest.Crop{Name: r.Name, Yield: r.YieldKg}
	if r.Costs.Valid {
		crop.Costs = harvest.Amount(r.Costs.Float64)
	}
	if r.SalesPrice.Valid {
		crop.SalesPrice = harvest.Amount(r.SalesPrice.Float64)
	}
	for _, f := range factors {
		if crop.Factors == nil {
			crop.Factors = harvest.Factors{}
		}
		category := harvest.Category(f.Category)
		if crop.Factors[category] == nil {
			crop.Factors[category] = harvest.Levels{}
		}
		crop.Factors[category][f.Level] = f.Percent
	}
	return crop
}

func nullAmount(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// ListCrops returns every crop ordered by name.
func (s *Store) ListCrops() ([]harvest.Crop, error) {
	var rows []cropRow
	if err := s.db.Select(&rows, `
		SELECT id, name, yield_kg, costs, sales_price
		FROM crops
		ORDER BY name
	`); err != nil {
		return nil, fmt.Errorf("query crops: %w", err)
	}

	var factors []factorRow
	if err := s.db.Select(&factors, `
		SELECT crop_id, category, level, percent
		FROM crop_factors
		ORDER BY crop_id, category, level
	`); err != nil {
		return nil, fmt.Errorf("query crop factors: %w", err)
	}

	byCrop := groupFactors(factors)
	crops := make([]harvest.Crop, 0, len(rows))
	for _, row := range rows {
		crops = append(crops, row.toCrop(byCrop[row.ID]))
	}
	return crops, nil
}

// GetCrop returns the crop called name, or ErrNotFound.
func (s *Store) GetCrop(name string) (harvest.Crop, error) {
	var row cropRow
	err := s.db.Get(&row, `
		SELECT id, name, yield_kg, costs, sales_price
		FROM crops
		WHERE name = ?
	`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return harvest.Crop{}, fmt.Errorf("crop %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return harvest.Crop{}, fmt.Errorf("query crop: %w", err)
	}

	var factors []factorRow
	if err := s.db.Select(&factors, `
		SELECT crop_id, category, level, percent
		FROM crop_factors
		WHERE crop_id = ?
		ORDER BY category, level
	`, row.ID); err != nil {
		return harvest.Crop{}, fmt.Errorf("query crop factors: %w", err)
	}

	return row.toCrop(factors), nil
}

// UpsertCrop inserts crop or replaces the stored definition with the same
// name, including its factor table. It reports whether a new row was created.
func (s *Store) UpsertCrop(crop harvest.Crop) (bool, error) {
	if err := crop.Validate(); err != nil {
		return false, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("begin upsert crop transaction: %w", err)
	}

	created, err := UpsertCropTx(tx, crop)
	if err != nil {
		_ = tx.Rollback()
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert crop transaction: %w", err)
	}
	return created, nil
}

// UpsertCropTx is UpsertCrop inside a caller-owned transaction. crop must
// already be valid.
func UpsertCropTx(tx *sqlx.Tx, crop harvest.Crop) (bool, error) {
	var id int64
	err := tx.Get(&id, `SELECT id FROM crops WHERE name = ?`, crop.Name)
	created := errors.Is(err, sql.ErrNoRows)
	switch {
	case created:
		result, err := tx.Exec(`
			INSERT INTO crops (name, yield_kg, costs, sales_price)
			VALUES (?, ?, ?, ?)
		`, crop.Name, crop.Yield, nullAmount(crop.Costs), nullAmount(crop.SalesPrice))
		if err != nil {
			return false, fmt.Errorf("insert crop: %w", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return false, fmt.Errorf("read crop id: %w", err)
		}
	case err != nil:
		return false, fmt.Errorf("check crop existence: %w", err)
	default:
		if _, err := tx.Exec(`
			UPDATE crops
			SET
				yield_kg = ?,
				costs = ?,
				sales_price = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, crop.Yield, nullAmount(crop.Costs), nullAmount(crop.SalesPrice), id); err != nil {
			return false, fmt.Errorf("update crop: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM crop_factors WHERE crop_id = ?`, id); err != nil {
			return false, fmt.Errorf("delete crop factors: %w", err)
		}
	}

	for category, levels := range crop.Factors {
		for level, percent := range levels {
			if _, err := tx.Exec(`
				INSERT INTO crop_factors (crop_id, category, level, percent)
				VALUES (?, ?, ?, ?)
			`, id, string(category), level, percent); err != nil {
				return false, fmt.Errorf("insert crop factor: %w", err)
			}
		}
	}

	return created, nil
}

func groupFactors(factors []factorRow) map[int64][]factorRow {
	byCrop := make(map[int64][]factorRow)
	for _, f := range factors {
		byCrop[f.CropID] = append(byCrop[f.CropID], f)
	}
	return byCrop
}
