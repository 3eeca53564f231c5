package skill

// Engine computes updated beliefs for the four players of a decided doubles
// match. Implementations must be pure and deterministic.
type Engine interface {
	// Rate returns the updated teams in the same order and member order as given.
	Rate(a, b Team, winner Side) (Team, Team, error)
	// WinProbability returns the probability that team a beats team b.
	WinProbability(a, b Team) (float64, error)
}
