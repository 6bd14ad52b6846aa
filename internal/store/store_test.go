package store

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/Simplici0/groentetuin/internal/db"
	"github.com/Simplici0/groentetuin/internal/harvest"
	"github.com/Simplici0/groentetuin/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database.DB, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return New(database)
}

func potato() harvest.Crop {
	return harvest.Crop{
		Name:       "potato",
		Yield:      4,
		Costs:      harvest.Amount(3),
		SalesPrice: harvest.Amount(5),
		Factors: harvest.Factors{
			harvest.Sun:  harvest.Levels{"low": -50, "medium": 0, "high": 50},
			harvest.Wind: harvest.Levels{"low": 10, "medium": -20, "high": -30},
			harvest.Soil: harvest.Levels{"sandy": 0, "clay": 0, "silt": 40},
		},
	}
}

func TestUpsertCropRoundTripsFactors(t *testing.T) {
	s := newTestStore(t)

	created, err := s.UpsertCrop(potato())
	if err != nil {
		t.Fatalf("UpsertCrop: %v", err)
	}
	if !created {
		t.Fatalf("expected first upsert to create")
	}

	got, err := s.GetCrop("potato")
	if err != nil {
		t.Fatalf("GetCrop: %v", err)
	}
	if got.Yield != 4 || *got.Costs != 3 || *got.SalesPrice != 5 {
		t.Fatalf("unexpected crop: %+v", got)
	}
	if got.Factors[harvest.Wind]["high"] != -30 || got.Factors[harvest.Soil]["silt"] != 40 {
		t.Fatalf("unexpected factors: %+v", got.Factors)
	}

	env := harvest.Environment{harvest.Sun: "low", harvest.Wind: "high", harvest.Soil: "silt"}
	if y := harvest.YieldForPlant(got, env); y != 1.9599999999999997 {
		t.Fatalf("yield from stored crop = %v", y)
	}
}

func TestUpsertCropReplacesDefinition(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.UpsertCrop(potato()); err != nil {
		t.Fatalf("UpsertCrop: %v", err)
	}

	updated := harvest.Crop{Name: "potato", Yield: 6, Factors: harvest.Factors{harvest.Sun: harvest.Levels{"high": 20}}}
	created, err := s.UpsertCrop(updated)
	if err != nil {
		t.Fatalf("UpsertCrop update: %v", err)
	}
	if created {
		t.Fatalf("expected second upsert to update")
	}

	got, err := s.GetCrop("potato")
	if err != nil {
		t.Fatalf("GetCrop: %v", err)
	}
	if got.Yield != 6 || got.Costs != nil || got.SalesPrice != nil {
		t.Fatalf("unexpected crop after update: %+v", got)
	}
	if len(got.Factors) != 1 || len(got.Factors[harvest.Sun]) != 1 {
		t.Fatalf("expected factor table to be replaced, got %+v", got.Factors)
	}
	if !math.IsNaN(harvest.CostsForBatch(harvest.Batch{Crop: got, NumCrops: 1})) {
		t.Fatalf("expected missing costs to stay missing")
	}
}

func TestUpsertCropRejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.UpsertCrop(harvest.Crop{Name: "ghost"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestGetCropNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetCrop("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCropsOrdersByName(t *testing.T) {
	s := newTestStore(t)

	for _, crop := range []harvest.Crop{potato(), {Name: "apple", Yield: 5}, {Name: "corn", Yield: 3}} {
		if _, err := s.UpsertCrop(crop); err != nil {
			t.Fatalf("UpsertCrop %s: %v", crop.Name, err)
		}
	}

	crops, err := s.ListCrops()
	if err != nil {
		t.Fatalf("ListCrops: %v", err)
	}
	if len(crops) != 3 || crops[0].Name != "apple" || crops[1].Name != "corn" || crops[2].Name != "potato" {
		t.Fatalf("unexpected crops: %+v", crops)
	}
	if crops[0].Factors != nil {
		t.Fatalf("expected apple without factors, got %+v", crops[0].Factors)
	}
	if crops[2].Factors[harvest.Sun]["high"] != 50 {
		t.Fatalf("expected potato factors, got %+v", crops[2].Factors)
	}
}

func TestCreateAndGetFarm(t *testing.T) {
	s := newTestStore(t)

	for _, crop := range []harvest.Crop{
		{Name: "corn", Yield: 3, Costs: harvest.Amount(1), SalesPrice: harvest.Amount(2)},
		{Name: "apple", Yield: 5, Costs: harvest.Amount(2), SalesPrice: harvest.Amount(3)},
		potato(),
	} {
		if _, err := s.UpsertCrop(crop); err != nil {
			t.Fatalf("UpsertCrop %s: %v", crop.Name, err)
		}
	}

	id, err := s.CreateFarm("moestuin", []BatchRef{{Crop: "corn", NumCrops: 5}, {Crop: "potato", NumCrops: 2}, {Crop: "apple", NumCrops: 10}})
	if err != nil {
		t.Fatalf("CreateFarm: %v", err)
	}

	summary, farm, err := s.GetFarm(id)
	if err != nil {
		t.Fatalf("GetFarm: %v", err)
	}
	if summary.Name != "moestuin" || summary.CreatedAt == "" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(farm.Crops) != 3 || farm.Crops[0].Crop.Name != "corn" || farm.Crops[2].Crop.Name != "apple" {
		t.Fatalf("unexpected batch order: %+v", farm.Crops)
	}
	if got := harvest.TotalProfit(farm, nil); got != 189 {
		t.Fatalf("TotalProfit = %v, want 189", got)
	}
	if farm.Crops[1].Crop.Factors[harvest.Wind]["low"] != 10 {
		t.Fatalf("expected potato factors on farm batch")
	}

	farms, err := s.ListFarms()
	if err != nil {
		t.Fatalf("ListFarms: %v", err)
	}
	if len(farms) != 1 || farms[0].ID != id {
		t.Fatalf("unexpected farms: %+v", farms)
	}
}

func TestCreateFarmUnknownCropRollsBack(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.UpsertCrop(potato()); err != nil {
		t.Fatalf("UpsertCrop: %v", err)
	}

	_, err := s.CreateFarm("broken", []BatchRef{{Crop: "potato", NumCrops: 1}, {Crop: "durian", NumCrops: 1}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	farms, err := s.ListFarms()
	if err != nil {
		t.Fatalf("ListFarms: %v", err)
	}
	if len(farms) != 0 {
		t.Fatalf("expected rollback, got %+v", farms)
	}
}

func TestGetFarmEmptyAndMissing(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateFarm("leeg", nil)
	if err != nil {
		t.Fatalf("CreateFarm: %v", err)
	}
	_, farm, err := s.GetFarm(id)
	if err != nil {
		t.Fatalf("GetFarm: %v", err)
	}
	if len(farm.Crops) != 0 || harvest.TotalYield(farm) != 0 {
		t.Fatalf("expected empty farm, got %+v", farm)
	}

	if _, _, err := s.GetFarm(id + 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateFarmDuplicateName(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateFarm("moestuin", nil); err != nil {
		t.Fatalf("CreateFarm: %v", err)
	}
	if _, err := s.CreateFarm("moestuin", nil); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
