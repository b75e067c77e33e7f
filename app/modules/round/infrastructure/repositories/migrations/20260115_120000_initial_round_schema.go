package roundmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rounddb "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().
			Model((*rounddb.RoundRecord)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create rounds table: %w", err)
		}

		if _, err := db.NewCreateTable().
			Model((*rounddb.EntryRecord)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create round_entries table: %w", err)
		}

		// Audit queries always filter by round.
		if _, err := db.NewCreateIndex().
			Model((*rounddb.EntryRecord)(nil)).
			Index("round_entries_round_idx").
			Column("round").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create round_entries index: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().
			Model((*rounddb.EntryRecord)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop round_entries table: %w", err)
		}

		if _, err := db.NewDropTable().
			Model((*rounddb.RoundRecord)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop rounds table: %w", err)
		}

		return nil
	})
}
