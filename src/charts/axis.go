package charts

import (
	"fmt"
	"math"
)

// Tick is an axis tick position and its label.
type Tick struct {
	Value float64
	Label string
}

// paddedRange widens [min,max] by 5% on both sides, the way plot autoscaling leaves
// room around the outermost points. Non-negative data never gets a negative lower bound.
func paddedRange(min, max float64) (float64, float64) {
	if max <= min {
		max = min + 1
	}
	pad := (max - min) * 0.05
	a := min - pad
	if min >= 0 && a < 0 {
		a = 0
	}
	return a, max + pad
}

// niceTicks generates about n ticks covering [min, max] using 1, 2, 2.5, 5 × 10^k steps.
// The first tick is <= min and the last >= max, so the ticks double as the axis range.
func niceTicks(min, max float64, n int) []Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var ticks []Tick
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > end+bestStep/2 {
			break
		}
		ticks = append(ticks, Tick{Value: v, Label: formatTick(v, bestStep)})
		if len(ticks) > n+4 {
			break
		}
	}
	return ticks
}

// formatTick prints v with as many decimals as the tick step needs.
func formatTick(v, step float64) string {
	if math.Abs(v) < step*1e-9 {
		return "0"
	}
	decimals := 0
	for s := step; decimals < 6 && math.Abs(s-math.Round(s)) > 1e-9*math.Max(1, math.Abs(s)); s *= 10 {
		decimals++
	}
	return fmt.Sprintf("%.*f", decimals, v)
}
