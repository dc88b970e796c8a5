package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"judgement/internal/engine"
)

// Postgres records committed actions to two tables: a per-player running
// score upsert and an append-only per-round result log.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return &Postgres{db: pool}, nil
}

func (p *Postgres) Close() {
	p.db.Close()
}

func (p *Postgres) Record(ctx context.Context, rec Record) error {
	g := rec.Snapshot
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, player := range g.Players {
		_, err := tx.Exec(ctx,
			`INSERT INTO players (game_id, email, display_name, score)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (game_id, email) DO UPDATE SET score = EXCLUDED.score`,
			g.ID, player.Email, player.Name, player.Score,
		)
		if err != nil {
			return err
		}
	}

	for _, round := range g.Rounds {
		if round.State != engine.StateCompleted {
			continue
		}
		for email, outcome := range round.Outcomes {
			tricks := -1
			if outcome.Tricks != nil {
				tricks = *outcome.Tricks
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO round_results (game_id, round, email, bid, tricks, made, recorded_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)
				 ON CONFLICT (game_id, round, email) DO UPDATE
				   SET bid = EXCLUDED.bid, tricks = EXCLUDED.tricks, made = EXCLUDED.made, recorded_at = EXCLUDED.recorded_at`,
				g.ID, round.Index, email, round.Bids[email], tricks, outcome.Made, rec.At,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
