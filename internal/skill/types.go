package skill

import "errors"

const (
	// DefaultMu is the prior skill estimate of a player with no recorded games.
	DefaultMu = 500.0
	// DefaultSigma is the prior uncertainty of a player with no recorded games.
	DefaultSigma = 200.0
	// DefaultBeta is the per-player performance noise, half the prior sigma.
	DefaultBeta = DefaultSigma / 2
)

var (
	ErrInvalidSide   = errors.New("winner must be side A or side B")
	ErrInvalidRating = errors.New("rating must have a finite mu and a positive finite sigma")
	ErrInvalidParams = errors.New("beta must be positive and tau non-negative")
)

// Rating is a Gaussian belief N(Mu, Sigma²) about a player's skill.
type Rating struct {
	Mu    float64 `json:"mu" msgpack:"mu"`
	Sigma float64 `json:"sigma" msgpack:"sigma"`
}

// Prior returns the belief assigned to a player before their first game.
func Prior() Rating {
	return Rating{Mu: DefaultMu, Sigma: DefaultSigma}
}

// Team is a doubles pair of ratings. Member order carries no meaning.
type Team [2]Rating

// Side identifies one of the two teams in a match.
type Side int

const (
	SideA Side = iota + 1
	SideB
)

// Params tunes the TrueSkill update.
type Params struct {
	// Beta is the standard deviation of a single player's performance around
	// their skill.
	Beta float64
	// Tau is added to every sigma before the update. Keep it zero to
	// guarantee that an update never increases uncertainty.
	Tau float64
}

// DefaultParams returns the parameters used by the ledger.
func DefaultParams() Params {
	return Params{Beta: DefaultBeta, Tau: 0}
}
