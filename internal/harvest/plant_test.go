package harvest

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestYieldForPlant_NoEnvironment(t *testing.T) {
	corn := Crop{Name: "corn", Yield: 30}

	if got := YieldForPlant(corn, nil); got != 30 {
		t.Fatalf("YieldForPlant = %v, want 30", got)
	}
}

func TestYieldForPlant_AllThreeFactors(t *testing.T) {
	env := Environment{Sun: "low", Wind: "high", Soil: "silt"}

	if got := YieldForPlant(potatoWithFactors(), env); got != 1.9599999999999997 {
		t.Fatalf("potato yield = %v, want 1.9599999999999997", got)
	}
	nearlyEqual(t, "corn yield", YieldForPlant(Crop{Name: "corn", Yield: 30, Factors: cornWithFactors().Factors}, env), 21)
}

func TestYieldForPlant_EveryCombination(t *testing.T) {
	potato := potatoWithFactors()
	const sun, wind, soil = 0.5, 0.7, 1.4

	cases := []struct {
		name string
		env  Environment
		want float64
	}{
		{"sun", Environment{Sun: "low"}, 4 * sun},
		{"wind", Environment{Wind: "high"}, 4 * wind},
		{"soil", Environment{Soil: "silt"}, 4 * soil},
		{"sun+wind", Environment{Sun: "low", Wind: "high"}, 4 * sun * wind},
		{"sun+soil", Environment{Sun: "low", Soil: "silt"}, 4 * sun * soil},
		{"wind+soil", Environment{Wind: "high", Soil: "silt"}, 4 * wind * soil},
		{"all", Environment{Sun: "low", Wind: "high", Soil: "silt"}, 4 * sun * wind * soil},
	}
	for _, tc := range cases {
		nearlyEqual(t, tc.name, YieldForPlant(potato, tc.env), tc.want)
	}
}

func TestYieldForPlant_SecondFactorMultipliesOneMoreTerm(t *testing.T) {
	potato := potatoWithFactors()

	one := YieldForPlant(potato, Environment{Sun: "high"})
	two := YieldForPlant(potato, Environment{Sun: "high", Soil: "silt"})

	nearlyEqual(t, "sun only", one, 6)
	nearlyEqual(t, "sun+soil", two, one*1.4)
}

func TestYieldForPlant_EmptyEnvironmentEqualsNoFactors(t *testing.T) {
	potato := potatoWithFactors()

	if got := YieldForPlant(potato, Environment{}); got != 4 {
		t.Fatalf("empty env yield = %v, want 4", got)
	}
	if got := YieldForPlant(potato, Environment{"rain": "heavy"}); got != 4 {
		t.Fatalf("unknown-category env yield = %v, want 4", got)
	}

	got, err := NewCalculator(Strict).YieldForPlant(potato, Environment{})
	if err != nil || got != 4 {
		t.Fatalf("strict empty env = %v, %v; want 4, nil", got, err)
	}
}

func TestYieldForPlant_MissingLevelIsNaNWhenPermissive(t *testing.T) {
	if got := YieldForPlant(potatoWithFactors(), Environment{Sun: "blazing"}); !math.IsNaN(got) {
		t.Fatalf("expected NaN for unknown level, got %v", got)
	}
	if got := YieldForPlant(Crop{Name: "bare", Yield: 2}, Environment{Wind: "low"}); !math.IsNaN(got) {
		t.Fatalf("expected NaN for missing factor table, got %v", got)
	}
}

func TestYieldForPlant_AbsentCategoryIsNotLookedUp(t *testing.T) {
	crop := Crop{Name: "leek", Yield: 2, Factors: Factors{Sun: Levels{"high": 50}}}

	nearlyEqual(t, "sun only", YieldForPlant(crop, Environment{Sun: "high"}), 3)
}

func TestYieldForPlant_StrictMissingLevel(t *testing.T) {
	calc := NewCalculator(Strict)

	_, err := calc.YieldForPlant(potatoWithFactors(), Environment{Sun: "hgh"})
	if !errors.Is(err, ErrMissingFactorDefinition) {
		t.Fatalf("expected ErrMissingFactorDefinition, got %v", err)
	}
	if !strings.Contains(err.Error(), `did you mean "high"`) {
		t.Fatalf("expected suggestion in %q", err.Error())
	}

	_, err = calc.YieldForPlant(potatoWithFactors(), Environment{Soil: "gravelly loam"})
	if !errors.Is(err, ErrMissingFactorDefinition) {
		t.Fatalf("expected ErrMissingFactorDefinition, got %v", err)
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("unexpected suggestion in %q", err.Error())
	}
}

func TestYieldForPlant_StrictMissingTable(t *testing.T) {
	_, err := NewCalculator(Strict).YieldForPlant(Crop{Name: "bare", Yield: 2}, Environment{Wind: "low"})
	if !errors.Is(err, ErrMissingFactorDefinition) {
		t.Fatalf("expected ErrMissingFactorDefinition, got %v", err)
	}
	if !strings.Contains(err.Error(), "no wind table") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
