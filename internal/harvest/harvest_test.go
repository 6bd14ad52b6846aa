package harvest

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func cornWithFactors() Crop {
	return Crop{
		Name:       "corn",
		Yield:      3,
		Costs:      Amount(1),
		SalesPrice: Amount(2),
		Factors: Factors{
			Sun:  Levels{"low": -50, "medium": 0, "high": 50},
			Wind: Levels{"low": 0, "medium": 0, "high": 0},
			Soil: Levels{"sandy": -20, "clay": 0, "silt": 40},
		},
	}
}

func potatoWithFactors() Crop {
	return Crop{
		Name:       "potato",
		Yield:      4,
		Costs:      Amount(3),
		SalesPrice: Amount(5),
		Factors: Factors{
			Sun:  Levels{"low": -50, "medium": 0, "high": 50},
			Wind: Levels{"low": 10, "medium": -20, "high": -30},
			Soil: Levels{"sandy": 0, "clay": 0, "silt": 40},
		},
	}
}

func appleWithFactors() Crop {
	return Crop{
		Name:       "apple",
		Yield:      5,
		Costs:      Amount(2),
		SalesPrice: Amount(3),
		Factors: Factors{
			Sun:  Levels{"low": -10, "medium": 0, "high": 40},
			Wind: Levels{"low": 10, "medium": -20, "high": -30},
			Soil: Levels{"sandy": 0, "clay": 0, "silt": 40},
		},
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Fatalf("expected %q to be valid", c)
		}
	}
	if Category("rain").Valid() {
		t.Fatalf("expected rain to be invalid")
	}
}

func TestCrop_Validate(t *testing.T) {
	if err := cornWithFactors().Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	cases := map[string]Crop{
		"missing name":     {Yield: 3},
		"zero yield":       {Name: "corn"},
		"negative yield":   {Name: "corn", Yield: -1},
		"NaN yield":        {Name: "corn", Yield: math.NaN()},
		"infinite yield":   {Name: "corn", Yield: math.Inf(1)},
		"NaN costs":        {Name: "corn", Yield: 3, Costs: Amount(math.NaN())},
		"infinite price":   {Name: "corn", Yield: 3, SalesPrice: Amount(math.Inf(-1))},
		"unknown category": {Name: "corn", Yield: 3, Factors: Factors{"rain": Levels{"heavy": 10}}},
	}
	for name, crop := range cases {
		if err := crop.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestMode_String(t *testing.T) {
	if got := Strict.String(); got != "strict" {
		t.Fatalf("Strict.String() = %q", got)
	}
	if got := Permissive.String(); got != "permissive" {
		t.Fatalf("Permissive.String() = %q", got)
	}
	if got := (Calculator{}).Mode(); got != Permissive {
		t.Fatalf("zero Calculator mode = %v, want permissive", got)
	}
}
