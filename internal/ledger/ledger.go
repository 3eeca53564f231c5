package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/doubles-ladder/internal/database"
	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/metrics"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/pubsub"
	"github.com/mauv0809/doubles-ladder/internal/rating"
	"github.com/mauv0809/doubles-ladder/internal/skill"
)

var _ Service = (*Ledger)(nil)

// WithPublisher makes the ledger publish a MatchRecorded event after every
// committed match.
func WithPublisher(p pubsub.PubSubClient) Option {
	return func(l *Ledger) {
		l.publisher = p
	}
}

// WithClock overrides the time source used for game dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func New(db *sql.DB, engine skill.Engine, m metrics.Metrics, opts ...Option) *Ledger {
	l := &Ledger{
		db:      db,
		engine:  engine,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) RecordMatch(ctx context.Context, winners, losers game.Pair, doubled bool) ([]rating.Snapshot, error) {
	if err := validateTeams(winners, losers); err != nil {
		l.metrics.IncRecordFailures()
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	passes := 1
	if doubled {
		passes = 2
	}

	games := make([]game.Game, 0, passes)
	snaps := make([]rating.Snapshot, 0, 4*passes)
	for pass := 1; pass <= passes; pass++ {
		g, passSnaps, err := l.recordPass(ctx, winners, losers)
		if err != nil {
			l.metrics.IncRecordFailures()
			log.Error("Failed to record match", "pass", pass, "winners", winners, "losers", losers, "error", err)
			if len(games) == 0 {
				return nil, err
			}
			// The first game of a doubled match is already committed.
			l.publish(ctx, games, snaps, doubled)
			return snaps, fmt.Errorf("second game of doubled match: %w", err)
		}
		l.metrics.IncGamesRecorded()
		games = append(games, *g)
		snaps = append(snaps, passSnaps...)
	}

	l.metrics.IncMatchesRecorded()
	l.metrics.ObserveRecordDuration(time.Since(start).Seconds())
	log.Info("Recorded match", "winners", winners, "losers", losers, "doubled", doubled, "games", len(games))

	l.publish(ctx, games, snaps, doubled)
	return snaps, nil
}

// recordPass stores one game and its four snapshots as a single transaction.
// Every read and write goes through the transaction.
func (l *Ledger) recordPass(ctx context.Context, winners, losers game.Pair) (*game.Game, []rating.Snapshot, error) {
	ids := []string{winners[0], winners[1], losers[0], losers[1]}

	var (
		recorded *game.Game
		snaps    []rating.Snapshot
	)
	err := database.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		players := player.New(tx)
		for _, id := range ids {
			if _, err := players.Get(ctx, id); err != nil {
				if errors.Is(err, player.ErrNotFound) {
					return fmt.Errorf("%w: %w", ErrNotFound, err)
				}
				return err
			}
		}

		ratings := rating.New(tx)
		current := make([]skill.Rating, len(ids))
		for i, id := range ids {
			snap, err := ratings.Latest(ctx, id)
			if err != nil {
				return err
			}
			current[i] = snap.Rating()
		}

		newWinners, newLosers, err := l.engine.Rate(
			skill.Team{current[0], current[1]},
			skill.Team{current[2], current[3]},
			skill.SideA,
		)
		if err != nil {
			return fmt.Errorf("failed to rate match: %w", err)
		}

		recorded, err = game.New(tx).Append(ctx, winners, losers, l.now())
		if err != nil {
			return err
		}

		snaps, err = ratings.Insert(ctx, recorded.ID, []rating.Entry{
			{PlayerID: ids[0], Rating: newWinners[0]},
			{PlayerID: ids[1], Rating: newWinners[1]},
			{PlayerID: ids[2], Rating: newLosers[0]},
			{PlayerID: ids[3], Rating: newLosers[1]},
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return recorded, snaps, nil
}

// publish announces committed games. Failures are logged and counted; the
// games stay recorded.
func (l *Ledger) publish(ctx context.Context, games []game.Game, snaps []rating.Snapshot, doubled bool) {
	if l.publisher == nil {
		return
	}
	event := MatchRecorded{
		Games:      games,
		Snapshots:  snaps,
		Doubled:    doubled,
		RecordedAt: l.now().Unix(),
	}
	if err := l.publisher.SendMessage(context.WithoutCancel(ctx), pubsub.EventMatchRecorded, event); err != nil {
		l.metrics.IncEventPublishFailures()
		log.Warn("Failed to publish match event", "error", err)
	}
}

func (l *Ledger) Leaderboard(ctx context.Context) ([]Standing, error) {
	latest, err := rating.New(l.db).LatestAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	players, err := player.New(l.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	records, err := game.New(l.db).Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	standings := make([]Standing, 0, len(latest))
	for _, snap := range latest {
		rec, played := records[snap.PlayerID]
		if !played || rec.Wins+rec.Losses == 0 {
			continue
		}
		standings = append(standings, Standing{
			Player: byID[snap.PlayerID],
			Mu:     snap.Mu,
			Sigma:  snap.Sigma,
			Wins:   rec.Wins,
			Losses: rec.Losses,
			WinPct: winPct(rec.Wins, rec.Losses),
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Mu != standings[j].Mu {
			return standings[i].Mu > standings[j].Mu
		}
		if standings[i].Player.Name != standings[j].Player.Name {
			return standings[i].Player.Name < standings[j].Player.Name
		}
		return standings[i].Player.ID < standings[j].Player.ID
	})

	l.metrics.SetRatedPlayers(len(standings))
	return standings, nil
}

func (l *Ledger) PlayerSummary(ctx context.Context, playerID string) (*Summary, error) {
	p, err := player.New(l.db).Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, player.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	ratings := rating.New(l.db)
	current, err := ratings.Latest(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	history, err := ratings.ListForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	games, err := game.New(l.db).ListForPlayer(ctx, playerID, game.FilterAny)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s := &Summary{
		Player:  *p,
		Rating:  current,
		History: history,
		Games:   games,
	}
	for _, g := range games {
		if g.Winners.Contains(playerID) {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	s.WinPct = winPct(s.Wins, s.Losses)
	return s, nil
}

func (l *Ledger) Predict(ctx context.Context, teamA, teamB game.Pair) (*Prediction, error) {
	if err := validateTeams(teamA, teamB); err != nil {
		return nil, err
	}

	players := player.New(l.db)
	ratings := rating.New(l.db)
	ids := []string{teamA[0], teamA[1], teamB[0], teamB[1]}
	current := make([]skill.Rating, len(ids))
	for i, id := range ids {
		if _, err := players.Get(ctx, id); err != nil {
			if errors.Is(err, player.ErrNotFound) {
				return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
			}
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		snap, err := ratings.Latest(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		current[i] = snap.Rating()
	}

	pA, err := l.engine.WinProbability(skill.Team{current[0], current[1]}, skill.Team{current[2], current[3]})
	if err != nil {
		return nil, fmt.Errorf("failed to predict match: %w", err)
	}
	return &Prediction{TeamA: teamA, TeamB: teamB, ProbabilityA: pA, ProbabilityB: 1 - pA}, nil
}

func validateTeams(a, b game.Pair) error {
	ids := []string{a[0], a[1], b[0], b[1]}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: empty player id", ErrInvalidOutcome)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: player %s appears twice", ErrInvalidOutcome, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func winPct(wins, losses int) float64 {
	if wins+losses == 0 {
		return 0
	}
	return 100 * float64(wins) / float64(wins+losses)
}
