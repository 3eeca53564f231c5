package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/rating"
	"github.com/spf13/cobra"
)

var (
	team1     []string
	team2     []string
	winner    int
	doubled   bool
	create    bool
	prefix    string
	forPlayer string
	filter    string
)

func init() {
	recordCmd.Flags().StringSliceVar(&team1, "team1", nil, "The two players of team 1, comma separated")
	recordCmd.Flags().StringSliceVar(&team2, "team2", nil, "The two players of team 2, comma separated")
	recordCmd.Flags().IntVar(&winner, "winner", 0, "The winning team, 1 or 2")
	recordCmd.Flags().BoolVar(&doubled, "double", false, "Count the match twice")
	recordCmd.Flags().BoolVar(&create, "create", false, "Create players that do not exist yet")
	recordCmd.MarkFlagRequired("team1")
	recordCmd.MarkFlagRequired("team2")
	recordCmd.MarkFlagRequired("winner")

	playersCmd.Flags().StringVar(&prefix, "prefix", "", "Only list players whose name starts with this")
	gamesCmd.Flags().StringVar(&forPlayer, "player", "", "Only list games of this player (name prefix)")
	gamesCmd.Flags().StringVar(&filter, "filter", "any", "any, wins or losses")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a finished doubles match",
	Example: `  ladder-cli record --team1 ali,bo --team2 car,da --winner 1
  ladder-cli record --team1 ali,bo --team2 car,erin --winner 2 --double --create`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecord(cmd.OutOrStdout(), newAPIClient(host), team1, team2, winner, doubled, create)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the ladder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLeaderboard(cmd.OutOrStdout(), newAPIClient(host))
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newAPIClient(host)
		var query url.Values
		if prefix != "" {
			query = url.Values{"prefix": {prefix}}
		}
		var players []player.Player
		if err := c.getJSON("/players", query, &players); err != nil {
			return err
		}
		for _, p := range players {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", p.ID, ledger.DisplayName(p.Name))
		}
		return nil
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List recorded games",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newAPIClient(host)
		query := url.Values{"filter": {filter}}
		if forPlayer != "" {
			p, err := resolvePlayer(c, forPlayer, false)
			if err != nil {
				return err
			}
			query.Set("player", p.ID)
		}
		var games []game.Game
		if err := c.getJSON("/games", query, &games); err != nil {
			return err
		}
		var players []player.Player
		if err := c.getJSON("/players", nil, &players); err != nil {
			return err
		}
		names := make(map[string]string, len(players))
		for _, p := range players {
			names[p.ID] = ledger.DisplayName(p.Name)
		}
		for _, g := range games {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s & %s beat %s & %s\n",
				g.Date.Local().Format("2006-01-02 15:04"),
				names[g.Winners[0]], names[g.Winners[1]], names[g.Losers[0]], names[g.Losers[1]])
		}
		return nil
	},
}

func runRecord(out io.Writer, c *apiClient, team1, team2 []string, winner int, doubled, create bool) error {
	if winner != 1 && winner != 2 {
		return fmt.Errorf("--winner must be 1 or 2, got %d", winner)
	}
	players, err := resolveTeams(c, team1, team2, create)
	if err != nil {
		return err
	}

	winners, losers := players[:2], players[2:]
	if winner == 2 {
		winners, losers = losers, winners
	}
	req := map[string]any{
		"winners": []string{winners[0].ID, winners[1].ID},
		"losers":  []string{losers[0].ID, losers[1].ID},
		"doubled": doubled,
	}
	var resp struct {
		Snapshots []rating.Snapshot `json:"snapshots"`
	}
	if err := c.postJSON("/matches", req, &resp); err != nil {
		return err
	}

	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = ledger.DisplayName(p.Name)
	}
	fmt.Fprintf(out, "%s & %s beat %s & %s\n",
		names[winners[0].ID], names[winners[1].ID], names[losers[0].ID], names[losers[1].ID])
	for _, snap := range resp.Snapshots {
		fmt.Fprintf(out, "  %-20s %0.2f (±%0.2f)\n", names[snap.PlayerID], snap.Mu, snap.Sigma)
	}
	return nil
}

func runLeaderboard(out io.Writer, c *apiClient) error {
	var standings []ledger.Standing
	if err := c.getJSON("/leaderboard", nil, &standings); err != nil {
		return err
	}
	fmt.Fprintln(out, "==== RATINGS ====")
	for i, s := range standings {
		fmt.Fprintln(out, ledger.FormatStanding(i+1, s))
	}
	return nil
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
