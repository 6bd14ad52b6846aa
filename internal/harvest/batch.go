package harvest

// YieldForBatch returns the plant yield multiplied by the number of plants.
func (c Calculator) YieldForBatch(batch Batch, env Environment) (float64, error) {
	perPlant, err := c.YieldForPlant(batch.Crop, env)
	if err != nil {
		return 0, err
	}
	return perPlant * float64(batch.NumCrops), nil
}

// CostsForBatch returns the cost per plant multiplied by the number of plants.
// Environmental conditions never affect costs.
func (c Calculator) CostsForBatch(batch Batch) (float64, error) {
	if batch.Crop.Costs == nil {
		return c.undefined(missingAmountError(batch.Crop, "costs"))
	}
	return float64(*batch.Crop.Costs * float64(batch.NumCrops)), nil
}
