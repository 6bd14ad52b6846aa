package harvest

// YieldForPlant returns the kilograms produced by one plant of crop. Each
// category present as a key in env multiplies the base yield by
// 1 + percentage/100, applied in the order sun, wind, soil. A nil or empty env
// returns crop.Yield unchanged.
func (c Calculator) YieldForPlant(crop Crop, env Environment) (float64, error) {
	result := crop.Yield
	for _, category := range Categories {
		level, present := env[category]
		if !present {
			continue
		}
		m, err := c.multiplier(crop, category, level)
		if err != nil {
			return 0, err
		}
		result *= m
	}
	return result, nil
}

func (c Calculator) multiplier(crop Crop, category Category, level string) (float64, error) {
	percent, ok := crop.Factors[category][level]
	if !ok {
		return c.undefined(missingFactorError(crop, category, level))
	}
	return float64(percent)/100 + 1, nil
}
