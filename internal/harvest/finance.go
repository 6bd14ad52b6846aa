package harvest

// RevenueForBatch returns the batch yield multiplied by the sales price per kilogram.
func (c Calculator) RevenueForBatch(batch Batch, env Environment) (float64, error) {
	yield, err := c.YieldForBatch(batch, env)
	if err != nil {
		return 0, err
	}
	if batch.Crop.SalesPrice == nil {
		return c.undefined(missingAmountError(batch.Crop, "sales price"))
	}
	// Explicit conversion rounds the product; profit must equal revenue - costs exactly.
	return float64(yield * *batch.Crop.SalesPrice), nil
}

// ProfitForBatch returns revenue minus costs. A negative profit is a valid result.
func (c Calculator) ProfitForBatch(batch Batch, env Environment) (float64, error) {
	revenue, err := c.RevenueForBatch(batch, env)
	if err != nil {
		return 0, err
	}
	costs, err := c.CostsForBatch(batch)
	if err != nil {
		return 0, err
	}
	return revenue - costs, nil
}
