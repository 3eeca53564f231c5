package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/metrics"
	"github.com/mauv0809/doubles-ladder/internal/notifier"
	"github.com/slack-go/slack"
)

// maxLeaderboardRows keeps leaderboard messages under Slack's 50 block limit.
const maxLeaderboardRows = 45

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(result notifier.MatchResult, dryRun bool) error {
	msg := s.formatMatchResult(result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(standings []ledger.Standing, dryRun bool) error {
	msg := s.formatLeaderboard(standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(standings []ledger.Standing) (any, error) {
	return s.formatLeaderboard(standings), nil
}

// FormatPlayerSummaryResponse formats a single player's rating for a slash command response.
func (s *Notifier) FormatPlayerSummaryResponse(summary *ledger.Summary) (any, error) {
	if summary == nil {
		return nil, fmt.Errorf("no player summary to format")
	}
	return s.formatPlayerSummary(summary), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatMatchResult creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatMatchResult(result notifier.MatchResult) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Match recorded! 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(result.Games) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No games in this result.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	g := result.Games[0]
	summary := fmt.Sprintf("%s beat %s", teamName(result, g.Winners), teamName(result, g.Losers))
	if result.Doubled {
		summary += " (counts double)"
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", summary, true, false), nil, nil))

	// The last snapshot per player is the rating after the whole match.
	latest := make(map[string]int)
	order := make([]string, 0, 4)
	for i, snap := range result.Snapshots {
		if _, seen := latest[snap.PlayerID]; !seen {
			order = append(order, snap.PlayerID)
		}
		latest[snap.PlayerID] = i
	}
	var fields []*slack.TextBlockObject
	for _, playerID := range order {
		snap := result.Snapshots[latest[playerID]]
		text := fmt.Sprintf("*%s*\n%0.2f (±%0.2f)", result.Name(playerID), snap.Mu, snap.Sigma)
		fields = append(fields, slack.NewTextBlockObject("mrkdwn", text, false, false))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*New ratings*", false, false), fields, nil))
	}

	played := g.Date.Format("Monday 02 Jan, 15:04 MST")
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", played, true, false)))

	return slack.NewBlockMessage(blocks...)
}

func teamName(result notifier.MatchResult, pair game.Pair) string {
	return result.Name(pair[0]) + " & " + result.Name(pair[1])
}

// formatLeaderboard creates a Slack message to display the ladder.
func (s *Notifier) formatLeaderboard(standings []ledger.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Ladder 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No games recorded yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	shown := standings
	if len(shown) > maxLeaderboardRows {
		shown = shown[:maxLeaderboardRows]
	}

	// Player Ranks
	for i, standing := range shown {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> %0.2f (±%0.2f) | %0.2f%% Win Rate (%d/%d)",
			rank,
			medal,
			ledger.DisplayName(standing.Player.Name),
			standing.Mu,
			standing.Sigma,
			standing.WinPct,
			standing.Wins,
			standing.Wins+standing.Losses,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	if hidden := len(standings) - len(shown); hidden > 0 {
		more := fmt.Sprintf("…and %d more", hidden)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", more, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerSummary creates a Slack message to display a single player's rating.
func (s *Notifier) formatPlayerSummary(summary *ledger.Summary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("📈 %s", ledger.DisplayName(summary.Player.Name))
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	lines := []string{
		fmt.Sprintf("> *Rating*: %0.2f (±%0.2f)", summary.Rating.Mu, summary.Rating.Sigma),
		fmt.Sprintf("> *Record*: %d-%d (%0.2f%% Win Rate)", summary.Wins, summary.Losses, summary.WinPct),
	}
	if summary.Rating.IsPrior() {
		lines = append(lines, "> _No games recorded yet_")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player cannot be resolved.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
