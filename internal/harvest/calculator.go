package harvest

import "math"

// Mode controls how a Calculator handles missing definitions.
type Mode int

const (
	// Permissive propagates NaN for missing costs, prices or factor levels.
	Permissive Mode = iota
	// Strict fails with ErrMissingFactorDefinition or ErrMissingPriceOrCost.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "permissive"
}

// Calculator runs the yield and financial calculations in a given Mode.
// The zero value is a permissive calculator.
type Calculator struct {
	mode Mode
}

// NewCalculator returns a Calculator using mode.
func NewCalculator(mode Mode) Calculator {
	return Calculator{mode: mode}
}

// Mode returns the calculator's mode.
func (c Calculator) Mode() Mode {
	return c.mode
}

// undefined returns NaN in permissive mode and err in strict mode.
func (c Calculator) undefined(err error) (float64, error) {
	if c.mode == Strict {
		return 0, err
	}
	return math.NaN(), nil
}

var permissive = Calculator{mode: Permissive}

// YieldForPlant is the permissive form of Calculator.YieldForPlant.
func YieldForPlant(crop Crop, env Environment) float64 {
	v, _ := permissive.YieldForPlant(crop, env)
	return v
}

// YieldForBatch is the permissive form of Calculator.YieldForBatch.
func YieldForBatch(batch Batch, env Environment) float64 {
	v, _ := permissive.YieldForBatch(batch, env)
	return v
}

// CostsForBatch is the permissive form of Calculator.CostsForBatch.
func CostsForBatch(batch Batch) float64 {
	v, _ := permissive.CostsForBatch(batch)
	return v
}

// RevenueForBatch is the permissive form of Calculator.RevenueForBatch.
func RevenueForBatch(batch Batch, env Environment) float64 {
	v, _ := permissive.RevenueForBatch(batch, env)
	return v
}

// ProfitForBatch is the permissive form of Calculator.ProfitForBatch.
func ProfitForBatch(batch Batch, env Environment) float64 {
	v, _ := permissive.ProfitForBatch(batch, env)
	return v
}

// TotalYield is the permissive form of Calculator.TotalYield.
func TotalYield(farm Farm) float64 {
	v, _ := permissive.TotalYield(farm)
	return v
}

// TotalProfit is the permissive form of Calculator.TotalProfit.
func TotalProfit(farm Farm, env Environment) float64 {
	v, _ := permissive.TotalProfit(farm, env)
	return v
}
