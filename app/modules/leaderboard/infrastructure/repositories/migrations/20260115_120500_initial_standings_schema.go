package leaderboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().
			Model((*leaderboarddb.StandingsRecord)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create standings_rows table: %w", err)
		}

		if _, err := db.NewCreateTable().
			Model((*leaderboarddb.MergedRound)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create merged_rounds table: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().
			Model((*leaderboarddb.MergedRound)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop merged_rounds table: %w", err)
		}

		if _, err := db.NewDropTable().
			Model((*leaderboarddb.StandingsRecord)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop standings_rows table: %w", err)
		}

		return nil
	})
}
