package report

import (
	"github.com/Simplici0/groentetuin/internal/harvest"
)

// Line contains the per-batch values of a farm report.
type Line struct {
	Crop       string
	NumCrops   int
	PlantYield float64
	Yield      float64
	Costs      float64
	Revenue    float64
	Profit     float64
}

// Totals contains roll-up values across all batches.
type Totals struct {
	Yield   float64
	Costs   float64
	Revenue float64
	Profit  float64
}

// Result groups the full report, including per-batch lines and totals.
type Result struct {
	Environment harvest.Environment
	Lines       []Line
	Totals      Totals
}

// Calculate computes a line per batch and the farm totals under env.
// Totals.Yield applies env, unlike harvest.TotalYield.
func Calculate(calc harvest.Calculator, farm harvest.Farm, env harvest.Environment) (Result, error) {
	result := Result{Environment: env, Lines: make([]Line, 0, len(farm.Crops))}

	for _, batch := range farm.Crops {
		plantYield, err := calc.YieldForPlant(batch.Crop, env)
		if err != nil {
			return Result{}, err
		}
		yield, err := calc.YieldForBatch(batch, env)
		if err != nil {
			return Result{}, err
		}
		costs, err := calc.CostsForBatch(batch)
		if err != nil {
			return Result{}, err
		}
		revenue, err := calc.RevenueForBatch(batch, env)
		if err != nil {
			return Result{}, err
		}
		profit, err := calc.ProfitForBatch(batch, env)
		if err != nil {
			return Result{}, err
		}

		result.Lines = append(result.Lines, Line{
			Crop:       batch.Crop.Name,
			NumCrops:   batch.NumCrops,
			PlantYield: plantYield,
			Yield:      yield,
			Costs:      costs,
			Revenue:    revenue,
			Profit:     profit,
		})
		result.Totals.Yield += yield
		result.Totals.Costs += costs
		result.Totals.Revenue += revenue
		result.Totals.Profit += profit
	}

	return result, nil
}
