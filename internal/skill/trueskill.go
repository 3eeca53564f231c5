package skill

import "math"

var _ Engine = (*TrueSkill)(nil)

// TrueSkill implements the closed-form two-team TrueSkill update without
// draws. A team's performance is the sum of its members' skills plus
// independent N(0, Beta²) noise per player; the observed outcome is that the
// winners' performance exceeded the losers'.
type TrueSkill struct {
	params Params
}

// NewTrueSkill returns an engine with the given parameters.
func NewTrueSkill(params Params) (*TrueSkill, error) {
	if !(params.Beta > 0) || math.IsInf(params.Beta, 0) || !(params.Tau >= 0) || math.IsInf(params.Tau, 0) {
		return nil, ErrInvalidParams
	}
	return &TrueSkill{params: params}, nil
}

// NewDefault returns an engine with DefaultParams.
func NewDefault() *TrueSkill {
	return &TrueSkill{params: DefaultParams()}
}

// Params returns the engine's parameters.
func (ts *TrueSkill) Params() Params {
	return ts.params
}

func (ts *TrueSkill) Rate(a, b Team, winner Side) (Team, Team, error) {
	if err := validateTeams(a, b); err != nil {
		return Team{}, Team{}, err
	}
	switch winner {
	case SideA:
		w, l := ts.rate(a, b)
		return w, l, nil
	case SideB:
		w, l := ts.rate(b, a)
		return l, w, nil
	default:
		return Team{}, Team{}, ErrInvalidSide
	}
}

func (ts *TrueSkill) WinProbability(a, b Team) (float64, error) {
	if err := validateTeams(a, b); err != nil {
		return 0, err
	}
	a, b = ts.dynamics(a), ts.dynamics(b)
	c := ts.c(a, b)
	return cdf((teamMu(a) - teamMu(b)) / c), nil
}

// rate applies the update for a decided match, winners first.
func (ts *TrueSkill) rate(winners, losers Team) (Team, Team) {
	winners, losers = ts.dynamics(winners), ts.dynamics(losers)
	c := ts.c(winners, losers)
	t := (teamMu(winners) - teamMu(losers)) / c
	v, w := vWin(t), wWin(t)

	update := func(r Rating, sign float64) Rating {
		variance := r.Sigma * r.Sigma
		mu := r.Mu + sign*variance/c*v
		variance *= 1 - variance/(c*c)*w
		return Rating{Mu: mu, Sigma: math.Sqrt(variance)}
	}

	var newWinners, newLosers Team
	for i := range winners {
		newWinners[i] = update(winners[i], 1)
		newLosers[i] = update(losers[i], -1)
	}
	return newWinners, newLosers
}

func (ts *TrueSkill) dynamics(t Team) Team {
	if ts.params.Tau == 0 {
		return t
	}
	tau2 := ts.params.Tau * ts.params.Tau
	for i := range t {
		t[i].Sigma = math.Sqrt(t[i].Sigma*t[i].Sigma + tau2)
	}
	return t
}

// c is the standard deviation of the performance difference.
func (ts *TrueSkill) c(a, b Team) float64 {
	sum := 4 * ts.params.Beta * ts.params.Beta
	for _, t := range []Team{a, b} {
		for _, r := range t {
			sum += r.Sigma * r.Sigma
		}
	}
	return math.Sqrt(sum)
}

func teamMu(t Team) float64 {
	return t[0].Mu + t[1].Mu
}

func validateTeams(a, b Team) error {
	for _, t := range []Team{a, b} {
		for _, r := range t {
			if math.IsNaN(r.Mu) || math.IsInf(r.Mu, 0) || !(r.Sigma > 0) || math.IsInf(r.Sigma, 0) {
				return ErrInvalidRating
			}
		}
	}
	return nil
}
