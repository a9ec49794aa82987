package utils

import (
	"math"
	"time"
)

type TrendConfig struct {
	Gravity        float64 // time decay exponent
	WeightFavorite float64
	WeightLike     float64
	WeightView     float64
	ScaleFactor    float64 // scales the score into a 0-100 "temperature"
}

var DefaultTrendConfig = TrendConfig{
	Gravity:        1.5,
	WeightFavorite: 3.0,
	WeightLike:     1.0,
	WeightView:     0.05,
	ScaleFactor:    100.0,
}

// CalculateTrendScore computes a bot's front-page temperature from its
// interactions. Views are orders of magnitude larger than likes, so they
// get a tiny weight before the log smoothing.
func CalculateTrendScore(createdAt time.Time, likes, favorites, views int) float64 {
	hours := time.Since(createdAt).Hours()

	weightedSum := (float64(likes) * DefaultTrendConfig.WeightLike) +
		(float64(favorites) * DefaultTrendConfig.WeightFavorite) +
		(float64(views) * DefaultTrendConfig.WeightView)

	if weightedSum < 0 {
		weightedSum = 0
	}

	// log10(sum + 1) keeps sum=0 at exactly 0
	logScore := math.Log10(weightedSum + 1)

	numerator := logScore * DefaultTrendConfig.ScaleFactor

	decay := math.Pow(hours+2, DefaultTrendConfig.Gravity)

	return numerator / decay
}
