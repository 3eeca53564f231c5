package skill

import "math"

// Below this the normal CDF is indistinguishable from zero and the tail
// asymptotes of v and w are used instead.
const minCDF = 2.222758749e-162

func pdf(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func cdf(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// vWin is the additive mean correction for a win with performance margin t.
func vWin(t float64) float64 {
	denom := cdf(t)
	if denom < minCDF {
		return -t
	}
	return pdf(t) / denom
}

// wWin is the multiplicative variance correction for a win with margin t.
// It always lies in [0, 1].
func wWin(t float64) float64 {
	denom := cdf(t)
	if denom < minCDF {
		if t < 0 {
			return 1
		}
		return 0
	}
	v := vWin(t)
	w := v * (v + t)
	return math.Min(math.Max(w, 0), 1)
}
