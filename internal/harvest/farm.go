package harvest

// TotalYield sums the yield of every batch on the farm. No environmental
// conditions are applied.
func (c Calculator) TotalYield(farm Farm) (float64, error) {
	total := 0.0
	for _, batch := range farm.Crops {
		yield, err := c.YieldForBatch(batch, nil)
		if err != nil {
			return 0, err
		}
		total += yield
	}
	return total, nil
}

// TotalProfit sums the profit of every batch, applying env to all of them.
func (c Calculator) TotalProfit(farm Farm, env Environment) (float64, error) {
	total := 0.0
	for _, batch := range farm.Crops {
		profit, err := c.ProfitForBatch(batch, env)
		if err != nil {
			return 0, err
		}
		total += profit
	}
	return total, nil
}
