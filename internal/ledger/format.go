package ledger

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName title-cases a stored (lowercase) player name. A Caser keeps
// state between calls, so each call gets its own.
func DisplayName(name string) string {
	return cases.Title(language.Und).String(name)
}

// FormatStanding renders one leaderboard line, rank being 1-based:
//
//	1. Alice                610.50 (±150.00) 75.00% Win Rate
func FormatStanding(rank int, s Standing) string {
	return fmt.Sprintf("%d. %-20s %0.2f (±%0.2f) %0.2f%% Win Rate",
		rank, DisplayName(s.Player.Name), s.Mu, s.Sigma, s.WinPct)
}
