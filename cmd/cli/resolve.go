package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/player"
)

var (
	errNoMatch   = errors.New("no player matches")
	errAmbiguous = errors.New("several players match")
	errDuplicate = errors.New("the same player was entered twice")
)

// choosePlayer picks the player a typed name refers to: the only prefix
// match, or the one candidate whose full name equals the query.
func choosePlayer(query string, candidates []player.Player) (player.Player, error) {
	switch len(candidates) {
	case 0:
		return player.Player{}, fmt.Errorf("%w %q", errNoMatch, query)
	case 1:
		return candidates[0], nil
	}

	normalized := player.NormalizeName(query)
	var exact []player.Player
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, ledger.DisplayName(c.Name))
		if c.Name == normalized {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}
	return player.Player{}, fmt.Errorf("%w %q: %s", errAmbiguous, query, strings.Join(names, ", "))
}

// resolvePlayer looks a name up on the server. With create set, an unknown
// name is registered as a new player.
func resolvePlayer(c *apiClient, query string, create bool) (player.Player, error) {
	if strings.TrimSpace(query) == "" {
		return player.Player{}, fmt.Errorf("%w: empty name", errNoMatch)
	}
	var candidates []player.Player
	if err := c.getJSON("/players", url.Values{"prefix": {query}}, &candidates); err != nil {
		return player.Player{}, err
	}

	p, err := choosePlayer(query, candidates)
	if errors.Is(err, errNoMatch) && create {
		var created player.Player
		if err := c.postJSON("/players", map[string]string{"name": query}, &created); err != nil {
			return player.Player{}, fmt.Errorf("failed to create player %q: %w", query, err)
		}
		fmt.Printf("Created player %s\n", ledger.DisplayName(created.Name))
		return created, nil
	}
	return p, err
}

// resolveTeams resolves all four names and checks nobody appears twice.
func resolveTeams(c *apiClient, team1, team2 []string, create bool) ([]player.Player, error) {
	if len(team1) != 2 || len(team2) != 2 {
		return nil, fmt.Errorf("each team needs exactly two players")
	}
	names := append(append([]string{}, team1...), team2...)
	resolved := make([]player.Player, 0, len(names))
	seen := make(map[string]string)
	for _, name := range names {
		p, err := resolvePlayer(c, name, create)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %q and %q are both %s", errDuplicate, prev, name, ledger.DisplayName(p.Name))
		}
		seen[p.ID] = name
		resolved = append(resolved, p)
	}
	return resolved, nil
}
