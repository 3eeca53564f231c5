package notifier

import "github.com/mauv0809/doubles-ladder/internal/ledger"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendMatchResult(result MatchResult, dryRun bool) error
	// For slash commands
	SendLeaderboard(standings []ledger.Standing, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(standings []ledger.Standing) (any, error)
	FormatPlayerSummaryResponse(summary *ledger.Summary) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
