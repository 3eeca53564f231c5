package notifier

import (
	"github.com/mauv0809/doubles-ladder/internal/ledger"
)

// MatchResult is a committed match together with the display names of the
// players involved.
type MatchResult struct {
	ledger.MatchRecorded
	// Names maps player id to stored name.
	Names map[string]string
}

// Name returns the display name for a player id, falling back to the id.
func (r MatchResult) Name(playerID string) string {
	if name, ok := r.Names[playerID]; ok && name != "" {
		return ledger.DisplayName(name)
	}
	return playerID
}
